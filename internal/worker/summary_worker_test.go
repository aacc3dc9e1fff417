package worker

import "testing"

func TestParseSummaryJob(t *testing.T) {
	tests := []struct {
		raw    string
		want   summaryJob
		wantOK bool
	}{
		{raw: "7:3", want: summaryJob{classID: 7, semesterID: 3}, wantOK: true},
		{raw: "12:1", want: summaryJob{classID: 12, semesterID: 1}, wantOK: true},
		{raw: "7", wantOK: false},
		{raw: "a:3", wantOK: false},
		{raw: "7:b", wantOK: false},
		{raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseSummaryJob(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
