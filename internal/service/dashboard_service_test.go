package service

import (
	"testing"

	"github.com/dnc-edu/conduct-backend/internal/repository"
)

func TestBuildDistribution(t *testing.T) {
	lines := []repository.SemesterLine{
		// student 1: 90 → Xuất sắc
		{StudentID: 1, AnswerID: 1, Amount: 1, Score: intPtr(90)},
		// student 2: 80 + (-10*2) = 60 → Trung bình
		{StudentID: 2, AnswerID: 1, Amount: 1, Score: intPtr(80)},
		{StudentID: 2, AnswerID: 2, Amount: 2, Score: intPtr(-10)},
		// student 3: overflows past 100, clamps into the top band
		{StudentID: 3, AnswerID: 1, Amount: 1, Score: intPtr(90)},
		{StudentID: 3, AnswerID: 3, Amount: 1, Score: intPtr(50)},
		// student 4: only a removed answer left, counts as 0 → Kém
		{StudentID: 4, AnswerID: 9, Amount: 1, Score: nil},
	}

	buckets := buildDistribution(lines)

	want := map[string]int{
		"Xuất sắc":   2,
		"Tốt":        0,
		"Khá":        0,
		"Trung bình": 1,
		"Yếu":        0,
		"Kém":        1,
	}
	total := 0
	for _, b := range buckets {
		if b.Count != want[b.Label] {
			t.Errorf("bucket %q: got %d, want %d", b.Label, b.Count, want[b.Label])
		}
		total += b.Count
	}
	if total != 4 {
		t.Errorf("expected 4 students counted, got %d", total)
	}
}

func TestBuildDistributionEmpty(t *testing.T) {
	buckets := buildDistribution(nil)
	if len(buckets) != len(scoreBands) {
		t.Fatalf("expected %d bands, got %d", len(scoreBands), len(buckets))
	}
	for _, b := range buckets {
		if b.Count != 0 {
			t.Errorf("bucket %q should be empty, got %d", b.Label, b.Count)
		}
	}
}
