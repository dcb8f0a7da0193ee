package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/noah-isme/jikanwari-engine/internal/engine/constraint"
	"github.com/noah-isme/jikanwari-engine/internal/models"
)

// ErrInvalidInput marks configuration rejected before any search work.
var ErrInvalidInput = errors.New("invalid solver input")

// ErrInfeasible means no assignment satisfied all hard constraints within the
// search budget. Retrying identical inputs cannot help; the caller may relax
// constraints and resubmit.
var ErrInfeasible = errors.New("no feasible timetable within budget")

// staleRestartLimit stops the restart loop once this many consecutive
// restarts fail to add a distinct candidate.
const staleRestartLimit = 16

// Config enumerates the solver knobs surfaced to the host UI.
type Config struct {
	Timeout     time.Duration
	MaxPatterns int
	RandomSeed  int64
	Weights     models.SoftWeights
}

// Candidate is one complete hard-feasible timetable with its soft score.
type Candidate struct {
	Placements []models.Placement
	Penalty    float64
	Diversity  int
	signature  string
}

// Result is the anytime output of a solve run: the ranked candidates found so
// far plus degraded-confidence flags.
type Result struct {
	Candidates []Candidate
	TimedOut   bool
	Cancelled  bool
	Restarts   int
	Nodes      int64
}

// Solve assigns every lesson block to a slot via most-constrained-first
// chronological backtracking, then collects additional distinct candidates
// through reseeded restarts until MaxPatterns are found or the budget runs
// out. Identical inputs and seed yield an identical ranked result.
func Solve(ctx context.Context, snap *models.Snapshot, blocks []models.LessonBlock, rules []models.ConstraintRule, cfg Config) (*Result, error) {
	if err := validate(snap, blocks, cfg); err != nil {
		return nil, err
	}
	if overCapacity(snap, blocks) {
		return nil, ErrInfeasible
	}
	eval, err := constraint.NewEvaluator(snap, blocks, rules, cfg.Weights)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	ordered := make([]models.LessonBlock, len(blocks))
	copy(ordered, blocks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	result := &Result{}
	seen := make(map[string]bool)
	stale := 0
	for restart := 0; len(result.Candidates) < cfg.MaxPatterns && stale < staleRestartLimit; restart++ {
		if ctx.Err() != nil {
			break
		}
		result.Restarts = restart + 1
		s := &search{
			ctx:   ctx,
			snap:  snap,
			eval:  eval,
			board: constraint.NewBoard(snap.Calendar),
			rng:   rand.New(rand.NewSource(cfg.RandomSeed + int64(restart))),
		}
		ok := s.run(ordered)
		result.Nodes += s.nodes
		if !ok {
			if s.aborted {
				break
			}
			// Deterministic exhaustion: no restart can succeed either.
			if restart == 0 {
				break
			}
			stale++
			continue
		}
		cand := Candidate{
			Placements: s.board.Placements(),
			Penalty:    eval.Penalty(s.board),
		}
		cand.signature = signature(cand.Placements)
		if seen[cand.signature] {
			stale++
			continue
		}
		seen[cand.signature] = true
		stale = 0
		result.Candidates = append(result.Candidates, cand)
	}

	switch ctx.Err() {
	case context.DeadlineExceeded:
		result.TimedOut = true
	case context.Canceled:
		result.Cancelled = true
	}

	if len(result.Candidates) == 0 {
		if result.Cancelled {
			return result, nil
		}
		return nil, ErrInfeasible
	}
	rank(result.Candidates)
	return result, nil
}

func validate(snap *models.Snapshot, blocks []models.LessonBlock, cfg Config) error {
	if snap == nil {
		return fmt.Errorf("%w: snapshot is required", ErrInvalidInput)
	}
	if !snap.Calendar.Valid() {
		return fmt.Errorf("%w: calendar %dx%d out of bounds", ErrInvalidInput, snap.Calendar.DaysPerWeek, snap.Calendar.PeriodsPerDay)
	}
	if len(blocks) == 0 {
		return fmt.Errorf("%w: no lesson blocks to place", ErrInvalidInput)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidInput)
	}
	if cfg.MaxPatterns < 1 {
		return fmt.Errorf("%w: maxPatterns must be >= 1", ErrInvalidInput)
	}
	if err := snap.ValidateBlocks(blocks); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// overCapacity reports whether some class demands more periods than the week
// holds. Such input can never be placed, so no search is attempted.
func overCapacity(snap *models.Snapshot, blocks []models.LessonBlock) bool {
	demand := make(map[string]int)
	for _, b := range blocks {
		for _, classID := range b.ClassIDs {
			demand[classID] += b.Span()
		}
	}
	for _, periods := range demand {
		if periods > snap.Calendar.SlotCount() {
			return true
		}
	}
	return false
}

// signature identifies a candidate by its placement set.
func signature(placements []models.Placement) string {
	sig := make([]byte, 0, len(placements)*8)
	for _, p := range placements {
		sig = append(sig, p.BlockID...)
		sig = append(sig, '@', byte('0'+p.At.Day), ':', byte('0'+p.At.Period), ';')
	}
	return string(sig)
}

// rank orders candidates by penalty ascending; inside equal-penalty groups a
// greedy pass prefers the candidate most different from those already ranked,
// so the top-K are not near-duplicates.
func rank(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Penalty != candidates[j].Penalty {
			return candidates[i].Penalty < candidates[j].Penalty
		}
		return candidates[i].signature < candidates[j].signature
	})
	for start := 0; start < len(candidates); {
		end := start + 1
		for end < len(candidates) && candidates[end].Penalty == candidates[start].Penalty {
			end++
		}
		if end-start > 1 && start > 0 {
			group := candidates[start:end]
			for i := range group {
				group[i].Diversity = minDifference(group[i], candidates[:start])
			}
			sort.SliceStable(group, func(i, j int) bool {
				return group[i].Diversity > group[j].Diversity
			})
		}
		// Within the ranked prefix, later candidates record their distance to
		// the ones above them.
		for i := start; i < end; i++ {
			if i > 0 {
				candidates[i].Diversity = minDifference(candidates[i], candidates[:i])
			}
		}
		start = end
	}
}

// minDifference is the smallest pairwise placement difference between the
// candidate and any already-ranked candidate.
func minDifference(c Candidate, ranked []Candidate) int {
	min := -1
	for _, other := range ranked {
		d := difference(c.Placements, other.Placements)
		if min < 0 || d < min {
			min = d
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// difference counts blocks placed at different slots in two candidates.
func difference(a, b []models.Placement) int {
	at := make(map[string]models.Slot, len(a))
	for _, p := range a {
		at[p.BlockID] = p.At
	}
	diff := 0
	for _, p := range b {
		if slot, ok := at[p.BlockID]; !ok || slot != p.At {
			diff++
		}
	}
	return diff
}
