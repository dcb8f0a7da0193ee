// Package scoring ranks finite candidate sets for the three suggestion
// panels: substitute teachers, exam supervisors and reschedule slots. All
// three share one weighted-feature core; candidates breaking a hard
// constraint are excluded outright, never merely penalised.
package scoring

import "sort"

// Reason strings surfaced verbatim in the host's suggestion panels.
const (
	ReasonSameSubject   = "同教科"
	ReasonAvailable     = "対応可能"
	ReasonPreferredSlot = "希望時間帯"
	ReasonCurrentLoad   = "現在の負荷"
	ReasonRecentCover   = "直近の代講"
	ReasonGradeMatch    = "学年担当"
	ReasonSubjectStaff  = "教科担当"
	ReasonAssignedCount = "監督割当数"
	ReasonFreeSlot      = "空きコマ"
	ReasonCompaction    = "空き時間の削減"
)

// ScoredCandidate is one ranked suggestion with the reasons behind its score.
type ScoredCandidate struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Feasible bool     `json:"feasible"`
	Reasons  []string `json:"reasons"`
}

// FeatureWeights tunes the graded feature contributions shared by the three
// ranking flavors.
type FeatureWeights struct {
	SubjectMatch float64 `json:"subjectMatch"`
	Availability float64 `json:"availability"`
	Load         float64 `json:"currentLoad"`
	Recency      float64 `json:"recency"`
	GradeMatch   float64 `json:"gradeMatch"`
}

// DefaultFeatureWeights returns the stock suggestion tuning.
func DefaultFeatureWeights() FeatureWeights {
	return FeatureWeights{
		SubjectMatch: 10.0,
		Availability: 2.0,
		Load:         1.0,
		Recency:      3.0,
		GradeMatch:   2.0,
	}
}

// feature is one graded contribution with its panel reason.
type feature struct {
	reason string
	value  float64
}

// compose sums feature values and collects the reasons of those that fired.
func compose(features []feature) (float64, []string) {
	score := 0.0
	var reasons []string
	for _, f := range features {
		if f.value == 0 {
			continue
		}
		score += f.value
		reasons = append(reasons, f.reason)
	}
	return score, reasons
}

// order sorts by score descending with candidate id as the deterministic
// tie-break, then truncates to topK (0 means unlimited).
func order(candidates []ScoredCandidate, topK int) []ScoredCandidate {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})
	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}
