package compare

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/cleared-dev/recon/internal/model"
)

// Suggestion pairs a bank row with an app row booked on the same date with a
// similar note but a different amount, most often a mistyped amount.
type Suggestion struct {
	Bank       model.Transaction
	App        model.Transaction
	Similarity float64
}

// Suggest pairs rows of two mismatch extractions. Each app row is used at most
// once; bank rows are matched in order to their most similar candidate.
// Suggestions are advisory and do not affect the mismatch counts.
func Suggest(bank, app model.Table, minSimilarity float64) []Suggestion {
	used := make([]bool, len(app.Rows))

	var out []Suggestion
	for _, b := range bank.Rows {
		best, bestScore := -1, 0.0
		for i, a := range app.Rows {
			if used[i] || a.Date() != b.Date() || a.Amount.Equal(b.Amount) {
				continue
			}
			score := NoteSimilarity(a.Note(), b.Note())
			if score < minSimilarity {
				continue
			}
			if best == -1 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best == -1 {
			continue
		}
		used[best] = true
		out = append(out, Suggestion{Bank: b, App: app.Rows[best], Similarity: bestScore})
	}
	return out
}

// NoteSimilarity returns 1 - editDistance/maxLen over upper-cased notes,
// so 1 means identical and 0 means nothing in common. Two empty notes score 0.
func NoteSimilarity(a, b string) float64 {
	a, b = strings.ToUpper(strings.TrimSpace(a)), strings.ToUpper(strings.TrimSpace(b))
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
