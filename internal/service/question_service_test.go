package service

import (
	"testing"

	"github.com/dnc-edu/conduct-backend/internal/model"
)

func TestDedupeAnswers(t *testing.T) {
	answers := []model.Answer{
		{ID: 1, Content: "Tham gia đầy đủ", Score: 10},
		{ID: 2, Content: "Vắng không phép", Score: -5},
		{ID: 3, Content: "Tham gia đầy đủ", Score: 10},
		{ID: 4, Content: "Vắng không phép", Score: -5},
		{ID: 5, Content: "Đi trễ", Score: -2},
	}

	got := dedupeAnswers(answers)
	if len(got) != 3 {
		t.Fatalf("got %d answers, want 3", len(got))
	}
	wantIDs := []int{1, 2, 5}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("answer %d: got id %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestDedupeAnswersEmpty(t *testing.T) {
	if got := dedupeAnswers(nil); len(got) != 0 {
		t.Fatalf("got %d answers, want 0", len(got))
	}
}
