package config

type WorkerKeyStruct struct {
	SummaryRefreshQueue string
}

var WorkerKey = &WorkerKeyStruct{
	SummaryRefreshQueue: "summary_refresh_queue",
}
