package worker

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	summaryBatchSize    = 50
	summaryBatchTimeout = 2 * time.Second
	summaryPollTimeout  = 1 * time.Second
)

// SummaryWorker drains the summary refresh queue and recomputes class
// summary caches. Jobs are "<class_id>:<semester_id>" strings; a batch is
// deduplicated so a burst of submissions in one class costs one recompute.
type SummaryWorker struct {
	rdb               *redis.Client
	evaluationService *service.EvaluationService
	log               zerolog.Logger
}

// NewSummaryWorker creates a new SummaryWorker.
func NewSummaryWorker(rdb *redis.Client, evaluationService *service.EvaluationService, log zerolog.Logger) *SummaryWorker {
	return &SummaryWorker{
		rdb:               rdb,
		evaluationService: evaluationService,
		log:               log.With().Str("component", "summary_worker").Logger(),
	}
}

type summaryJob struct {
	classID    int
	semesterID int
}

// Start runs the worker loop until ctx is cancelled. The remaining batch is
// flushed before returning.
func (w *SummaryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("SummaryWorker started")

	batch := make(map[summaryJob]bool, summaryBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= summaryBatchSize || time.Since(lastFlush) >= summaryBatchTimeout) {

			w.flush(ctx, batch)
			batch = make(map[summaryJob]bool, summaryBatchSize)
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flush(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, summaryPollTimeout, config.WorkerKey.SummaryRefreshQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			job, ok := parseSummaryJob(item[1])
			if !ok {
				w.log.Error().Str("job", item[1]).Msg("Invalid job payload")
				continue
			}
			batch[job] = true
		}
	}
}

func (w *SummaryWorker) flush(ctx context.Context, batch map[summaryJob]bool) {
	for job := range batch {
		if _, err := w.evaluationService.RefreshClassSummary(ctx, job.classID, job.semesterID); err != nil {
			w.log.Warn().Err(err).
				Int("class_id", job.classID).
				Int("semester_id", job.semesterID).
				Msg("summary refresh failed")
		}
	}
}

// parseSummaryJob parses "<class_id>:<semester_id>".
func parseSummaryJob(raw string) (summaryJob, bool) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return summaryJob{}, false
	}
	classID, err1 := strconv.Atoi(parts[0])
	semesterID, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return summaryJob{}, false
	}
	return summaryJob{classID: classID, semesterID: semesterID}, true
}
