// Package elective partitions students into subject groups according to their
// ranked choices, subject capacities and the number of elective periods.
package elective

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks grouping input rejected before any work.
var ErrInvalidInput = errors.New("invalid elective input")

// Student carries a submission-ordered list of subject choices, most
// preferred first.
type Student struct {
	ID      string   `json:"id"`
	Choices []string `json:"choices"`
}

// SubjectCapacity states the maximum group size for one elective subject and
// an optional teacher for the formed group.
type SubjectCapacity struct {
	SubjectID string `json:"subject_id"`
	Capacity  int    `json:"capacity"`
	TeacherID string `json:"teacher_id,omitempty"`
}

// Group is one formed elective group.
type Group struct {
	SubjectID  string   `json:"subject_id"`
	Period     int      `json:"period"`
	TeacherID  string   `json:"teacher_id,omitempty"`
	StudentIDs []string `json:"student_ids"`
}

// Result is the grouping outcome: the formed groups, students no choice could
// admit, and the overall satisfaction score.
type Result struct {
	Groups       []Group  `json:"groups"`
	Unassigned   []string `json:"unassigned"`
	Satisfaction float64  `json:"satisfaction"`
}

// Config bounds the local reoptimisation and prices unmet students.
type Config struct {
	SwapPasses        int
	UnassignedPenalty float64
}

// DefaultConfig mirrors the host's stock tuning.
func DefaultConfig() Config {
	return Config{SwapPasses: 3, UnassignedPenalty: 1.0}
}

// Partition assigns each student to the highest-ranked choice with remaining
// capacity, then runs bounded swap passes moving lower-satisfaction members
// out of full groups to admit unmet students with a higher-priority claim.
// All ties break by submission order, so identical input yields identical
// output.
func Partition(students []Student, capacities []SubjectCapacity, periodCount int, cfg Config) (*Result, error) {
	if periodCount < 1 {
		return nil, fmt.Errorf("%w: periodCount must be >= 1", ErrInvalidInput)
	}
	if len(capacities) == 0 {
		return nil, fmt.Errorf("%w: no elective subjects", ErrInvalidInput)
	}
	capacity := make(map[string]int, len(capacities))
	subjectOrder := make([]string, 0, len(capacities))
	for _, c := range capacities {
		if c.Capacity < 0 {
			return nil, fmt.Errorf("%w: negative capacity for subject %s", ErrInvalidInput, c.SubjectID)
		}
		if _, dup := capacity[c.SubjectID]; dup {
			return nil, fmt.Errorf("%w: duplicate subject %s", ErrInvalidInput, c.SubjectID)
		}
		capacity[c.SubjectID] = c.Capacity
		subjectOrder = append(subjectOrder, c.SubjectID)
	}
	for _, s := range students {
		if len(s.Choices) == 0 {
			return nil, fmt.Errorf("%w: student %s submitted no choices", ErrInvalidInput, s.ID)
		}
		for _, choice := range s.Choices {
			if _, ok := capacity[choice]; !ok {
				return nil, fmt.Errorf("%w: student %s chose unknown subject %s", ErrInvalidInput, s.ID, choice)
			}
		}
	}

	st := newState(students, capacity)
	st.greedyPass()
	for pass := 0; pass < cfg.SwapPasses && len(st.deferred) > 0; pass++ {
		if !st.swapPass() {
			break
		}
	}
	return st.result(students, capacities, subjectOrder, periodCount, cfg), nil
}

type state struct {
	students map[string]Student
	order    []string
	capacity map[string]int
	members  map[string][]string
	assigned map[string]int // student -> choice rank index
	deferred []string
}

func newState(students []Student, capacity map[string]int) *state {
	st := &state{
		students: make(map[string]Student, len(students)),
		order:    make([]string, 0, len(students)),
		capacity: capacity,
		members:  make(map[string][]string),
		assigned: make(map[string]int),
	}
	for _, s := range students {
		st.students[s.ID] = s
		st.order = append(st.order, s.ID)
	}
	return st
}

// greedyPass admits each student, in submission order, to their best open
// choice.
func (st *state) greedyPass() {
	for _, id := range st.order {
		if !st.admitBest(id, len(st.students[id].Choices)) {
			st.deferred = append(st.deferred, id)
		}
	}
}

// admitBest admits the student to the highest-ranked choice with spare
// capacity among their first maxRank choices.
func (st *state) admitBest(id string, maxRank int) bool {
	s := st.students[id]
	for rank, choice := range s.Choices {
		if rank >= maxRank {
			break
		}
		if len(st.members[choice]) < st.capacity[choice] {
			st.members[choice] = append(st.members[choice], id)
			st.assigned[id] = rank
			return true
		}
	}
	return false
}

// swapPass tries to admit deferred students by moving out a member who holds
// the seat at a worse preference rank and has another open choice to go to.
// Returns whether any student was admitted.
func (st *state) swapPass() bool {
	progressed := false
	var still []string
	for _, id := range st.deferred {
		if st.tryAdmitWithSwap(id) {
			progressed = true
		} else {
			still = append(still, id)
		}
	}
	st.deferred = still
	return progressed
}

func (st *state) tryAdmitWithSwap(id string) bool {
	s := st.students[id]
	for rank, choice := range s.Choices {
		for _, memberID := range st.members[choice] {
			if st.assigned[memberID] <= rank {
				continue
			}
			// Move the lower-satisfaction member elsewhere before admitting.
			if !st.relocate(memberID, choice) {
				continue
			}
			st.members[choice] = append(st.members[choice], id)
			st.assigned[id] = rank
			return true
		}
	}
	return false
}

// relocate moves the student out of fromSubject into some other open choice
// of theirs. Fails without side effects when no seat exists.
func (st *state) relocate(id, fromSubject string) bool {
	s := st.students[id]
	for rank, choice := range s.Choices {
		if choice == fromSubject {
			continue
		}
		if len(st.members[choice]) < st.capacity[choice] {
			st.removeMember(fromSubject, id)
			st.members[choice] = append(st.members[choice], id)
			st.assigned[id] = rank
			return true
		}
	}
	return false
}

func (st *state) removeMember(subject, id string) {
	members := st.members[subject]
	for i, memberID := range members {
		if memberID == id {
			st.members[subject] = append(members[:i:i], members[i+1:]...)
			return
		}
	}
}

// result freezes the state into the output record. Satisfaction is the mean
// of 1/rank over assigned students minus a per-unassigned penalty share.
func (st *state) result(students []Student, capacities []SubjectCapacity, subjectOrder []string, periodCount int, cfg Config) *Result {
	res := &Result{}
	teacherOf := make(map[string]string, len(capacities))
	for _, c := range capacities {
		teacherOf[c.SubjectID] = c.TeacherID
	}
	for i, subjectID := range subjectOrder {
		members := st.members[subjectID]
		group := Group{
			SubjectID:  subjectID,
			Period:     i % periodCount,
			TeacherID:  teacherOf[subjectID],
			StudentIDs: make([]string, 0, len(members)),
		}
		// Preserve submission order inside the group.
		for _, id := range st.order {
			for _, memberID := range members {
				if memberID == id {
					group.StudentIDs = append(group.StudentIDs, id)
					break
				}
			}
		}
		res.Groups = append(res.Groups, group)
	}
	for _, id := range st.order {
		if _, ok := st.assigned[id]; !ok {
			res.Unassigned = append(res.Unassigned, id)
		}
	}
	if len(students) > 0 {
		sum := 0.0
		for _, rank := range st.assigned {
			sum += 1.0 / float64(rank+1)
		}
		sum -= cfg.UnassignedPenalty * float64(len(res.Unassigned))
		res.Satisfaction = sum / float64(len(students))
	}
	return res
}
