package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshotRejectsBadCalendar(t *testing.T) {
	_, err := NewSnapshot(Calendar{DaysPerWeek: 9, PeriodsPerDay: 6}, nil, nil, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar out of bounds")
}

func TestNewSnapshotRejectsUnknownGradeReference(t *testing.T) {
	_, err := NewSnapshot(
		Calendar{DaysPerWeek: 5, PeriodsPerDay: 6},
		nil, nil, nil,
		[]Class{{ID: "c1", GradeID: "g9"}},
		[]Grade{{ID: "g1"}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown grade")
}

func TestValidateBlocks(t *testing.T) {
	snap, err := NewSnapshot(
		Calendar{DaysPerWeek: 5, PeriodsPerDay: 6},
		[]Subject{{ID: "math"}},
		[]Teacher{{ID: "t1"}},
		[]Room{{ID: "r1"}},
		[]Class{{ID: "c1"}},
		nil,
	)
	require.NoError(t, err)

	valid := LessonBlock{
		ID: "b1", SubjectID: "math", ClassIDs: []string{"c1"},
		Teachers: []BlockTeacher{{TeacherID: "t1", Role: RoleMain}},
		RoomIDs:  []string{"r1"},
	}
	require.NoError(t, snap.ValidateBlocks([]LessonBlock{valid}))

	cases := []struct {
		name  string
		block LessonBlock
		want  string
	}{
		{"missing id", LessonBlock{SubjectID: "math", ClassIDs: []string{"c1"}}, "without id"},
		{"unknown subject", LessonBlock{ID: "b2", SubjectID: "art", ClassIDs: []string{"c1"}}, "unknown subject"},
		{"unknown class", LessonBlock{ID: "b2", SubjectID: "math", ClassIDs: []string{"c9"}}, "unknown class"},
		{"unknown teacher", LessonBlock{ID: "b2", SubjectID: "math", ClassIDs: []string{"c1"},
			Teachers: []BlockTeacher{{TeacherID: "t9"}}}, "unknown teacher"},
		{"no class", LessonBlock{ID: "b2", SubjectID: "math"}, "no participating class"},
		{"span too long", LessonBlock{ID: "b2", SubjectID: "math", ClassIDs: []string{"c1"},
			Kind: BlockConsecutive, Length: 7}, "spans"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := snap.ValidateBlocks([]LessonBlock{tc.block})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	err = snap.ValidateBlocks([]LessonBlock{valid, valid})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
