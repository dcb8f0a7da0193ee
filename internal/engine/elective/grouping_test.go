package elective

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionRespectsCapacity(t *testing.T) {
	// Ten students all rank subject X first; X holds five. Exactly five get
	// X and the overflow lands in their second choice.
	var students []Student
	for i := 0; i < 10; i++ {
		students = append(students, Student{
			ID:      fmt.Sprintf("s%02d", i),
			Choices: []string{"x", "y"},
		})
	}
	capacities := []SubjectCapacity{
		{SubjectID: "x", Capacity: 5},
		{SubjectID: "y", Capacity: 5},
	}

	result, err := Partition(students, capacities, 1, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, result.Groups, 2)

	byID := groupsBySubject(result)
	assert.Len(t, byID["x"].StudentIDs, 5)
	assert.Len(t, byID["y"].StudentIDs, 5)
	assert.Empty(t, result.Unassigned)

	// First-come wins on ties: the first five submissions hold X.
	assert.Equal(t, []string{"s00", "s01", "s02", "s03", "s04"}, byID["x"].StudentIDs)
}

func TestPartitionIsDeterministic(t *testing.T) {
	students := []Student{
		{ID: "s1", Choices: []string{"a", "b"}},
		{ID: "s2", Choices: []string{"a", "c"}},
		{ID: "s3", Choices: []string{"b", "a"}},
		{ID: "s4", Choices: []string{"c", "b"}},
	}
	capacities := []SubjectCapacity{
		{SubjectID: "a", Capacity: 1},
		{SubjectID: "b", Capacity: 2},
		{SubjectID: "c", Capacity: 2},
	}

	first, err := Partition(students, capacities, 2, DefaultConfig())
	require.NoError(t, err)
	second, err := Partition(students, capacities, 2, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPartitionSwapAdmitsDeferredStudent(t *testing.T) {
	// Greedy: s1 takes x, s2 falls back to y (rank 1), s3's only choice y is
	// then full. One swap relocates s2 to z so s3 gets y.
	students := []Student{
		{ID: "s1", Choices: []string{"x", "z"}},
		{ID: "s2", Choices: []string{"x", "y", "z"}},
		{ID: "s3", Choices: []string{"y"}},
	}
	capacities := []SubjectCapacity{
		{SubjectID: "x", Capacity: 1},
		{SubjectID: "y", Capacity: 1},
		{SubjectID: "z", Capacity: 1},
	}

	result, err := Partition(students, capacities, 3, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, result.Unassigned)

	byID := groupsBySubject(result)
	assert.Equal(t, []string{"s1"}, byID["x"].StudentIDs)
	assert.Equal(t, []string{"s3"}, byID["y"].StudentIDs)
	assert.Equal(t, []string{"s2"}, byID["z"].StudentIDs)
}

func TestPartitionReportsUnassigned(t *testing.T) {
	students := []Student{
		{ID: "s1", Choices: []string{"x"}},
		{ID: "s2", Choices: []string{"x"}},
	}
	capacities := []SubjectCapacity{{SubjectID: "x", Capacity: 1}}

	result, err := Partition(students, capacities, 1, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, result.Unassigned)
	assert.Less(t, result.Satisfaction, 1.0)
}

func TestPartitionSatisfactionScore(t *testing.T) {
	students := []Student{
		{ID: "s1", Choices: []string{"x"}},
		{ID: "s2", Choices: []string{"x", "y"}},
	}
	capacities := []SubjectCapacity{
		{SubjectID: "x", Capacity: 1},
		{SubjectID: "y", Capacity: 1},
	}

	result, err := Partition(students, capacities, 1, DefaultConfig())
	require.NoError(t, err)
	// s1 at first choice, s2 at second: (1 + 1/2) / 2.
	assert.InDelta(t, 0.75, result.Satisfaction, 1e-9)
}

func TestPartitionAssignsPeriodsRoundRobin(t *testing.T) {
	students := []Student{{ID: "s1", Choices: []string{"a", "b", "c"}}}
	capacities := []SubjectCapacity{
		{SubjectID: "a", Capacity: 1, TeacherID: "t1"},
		{SubjectID: "b", Capacity: 1},
		{SubjectID: "c", Capacity: 1},
	}

	result, err := Partition(students, capacities, 2, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, result.Groups, 3)
	assert.Equal(t, 0, result.Groups[0].Period)
	assert.Equal(t, 1, result.Groups[1].Period)
	assert.Equal(t, 0, result.Groups[2].Period)
	assert.Equal(t, "t1", result.Groups[0].TeacherID)
}

func TestPartitionValidatesInput(t *testing.T) {
	students := []Student{{ID: "s1", Choices: []string{"x"}}}
	capacities := []SubjectCapacity{{SubjectID: "x", Capacity: 1}}

	_, err := Partition(students, capacities, 0, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Partition(students, nil, 1, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Partition([]Student{{ID: "s1"}}, capacities, 1, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Partition([]Student{{ID: "s1", Choices: []string{"ghost"}}}, capacities, 1, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	dup := []SubjectCapacity{{SubjectID: "x", Capacity: 1}, {SubjectID: "x", Capacity: 2}}
	_, err = Partition(students, dup, 1, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func groupsBySubject(result *Result) map[string]Group {
	byID := make(map[string]Group, len(result.Groups))
	for _, g := range result.Groups {
		byID[g.SubjectID] = g
	}
	return byID
}
