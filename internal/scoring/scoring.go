// Package scoring computes the bounded conduct total for one
// (student, semester) pair from the student's selected answers.
package scoring

// Conduct totals are clamped to this closed interval regardless of the raw
// sum's magnitude.
const (
	MinTotal = -100
	MaxTotal = 100
)

// Selection references one chosen answer and how many times it was recorded.
// Amount below 1 is treated as 1.
type Selection struct {
	AnswerID int
	Amount   int
}

// Total sums the signed scores of the selections and clamps the result to
// [MinTotal, MaxTotal].
//
// The amount multiplies the contribution only for demerit answers (score
// below zero); a merit answer contributes its score exactly once no matter
// the amount. A selection whose answer is missing from scores contributes
// zero — stale references must not break history rendering.
//
// Total is pure: same inputs, same result, no side effects.
func Total(selections []Selection, scores map[int]int) int {
	total := 0
	for _, sel := range selections {
		score, ok := scores[sel.AnswerID]
		if !ok {
			continue
		}
		if sel.Amount > 1 && score < 0 {
			total += score * sel.Amount
		} else {
			total += score
		}
	}
	return Clamp(total)
}

// Clamp bounds a raw sum to [MinTotal, MaxTotal].
func Clamp(total int) int {
	if total < MinTotal {
		return MinTotal
	}
	if total > MaxTotal {
		return MaxTotal
	}
	return total
}
