package scoring

import "testing"

func TestTotal(t *testing.T) {
	scores := map[int]int{
		1: 10,  // merit
		2: -20, // demerit
		3: 3,
		4: -5,
	}

	tests := []struct {
		name       string
		selections []Selection
		want       int
	}{
		{
			name: "single merit",
			selections: []Selection{
				{AnswerID: 1, Amount: 1},
			},
			want: 10,
		},
		{
			name: "merit amount is ignored",
			selections: []Selection{
				{AnswerID: 1, Amount: 3},
			},
			want: 10,
		},
		{
			name: "demerit amount multiplies",
			selections: []Selection{
				{AnswerID: 4, Amount: 5},
			},
			want: -25,
		},
		{
			name: "mixed sum clamps to lower bound",
			selections: []Selection{
				{AnswerID: 1, Amount: 1},
				{AnswerID: 2, Amount: 6}, // 10 + (-20*6) = -110
			},
			want: -100,
		},
		{
			name: "clamps to upper bound",
			selections: []Selection{
				{AnswerID: 1, Amount: 1}, {AnswerID: 1, Amount: 1},
				{AnswerID: 1, Amount: 1}, {AnswerID: 1, Amount: 1},
				{AnswerID: 1, Amount: 1}, {AnswerID: 1, Amount: 1},
				{AnswerID: 1, Amount: 1}, {AnswerID: 1, Amount: 1},
				{AnswerID: 1, Amount: 1}, {AnswerID: 1, Amount: 1},
				{AnswerID: 3, Amount: 1}, // 103
			},
			want: 100,
		},
		{
			name: "unknown answer contributes zero",
			selections: []Selection{
				{AnswerID: 999, Amount: 50},
				{AnswerID: 1, Amount: 1},
			},
			want: 10,
		},
		{
			name: "zero amount treated as one",
			selections: []Selection{
				{AnswerID: 2, Amount: 0},
			},
			want: -20,
		},
		{
			name:       "empty selection",
			selections: nil,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Total(tt.selections, scores); got != tt.want {
				t.Errorf("Total() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTotalIdempotent(t *testing.T) {
	scores := map[int]int{1: 7, 2: -9}
	selections := []Selection{
		{AnswerID: 1, Amount: 1},
		{AnswerID: 2, Amount: 4},
	}

	first := Total(selections, scores)
	second := Total(selections, scores)
	if first != second {
		t.Fatalf("Total not idempotent: %d then %d", first, second)
	}
	if first != -29 {
		t.Fatalf("Total() = %d, want -29", first)
	}
}

func TestTotalBoundedForAllInputs(t *testing.T) {
	scores := map[int]int{1: 100, 2: -100}

	extremes := [][]Selection{
		{{AnswerID: 2, Amount: 100}, {AnswerID: 2, Amount: 100}},
		{{AnswerID: 1, Amount: 1}, {AnswerID: 1, Amount: 1}, {AnswerID: 1, Amount: 1}},
	}

	for _, sel := range extremes {
		got := Total(sel, scores)
		if got < MinTotal || got > MaxTotal {
			t.Errorf("Total(%v) = %d, outside [%d, %d]", sel, got, MinTotal, MaxTotal)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-110, -100},
		{-100, -100},
		{-99, -99},
		{0, 0},
		{99, 99},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
