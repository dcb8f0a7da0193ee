package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
)

func TestSuggestionServiceSubstitutes(t *testing.T) {
	service := NewSuggestionService(nil, nil, nil, SuggestionServiceConfig{})

	resp, err := service.Substitutes(dto.SubstituteRequest{
		Snapshot:        snapshotFixture(),
		Day:             0,
		Period:          1,
		SubjectID:       "math",
		ClassIDs:        []string{"c1"},
		AbsentTeacherID: "t1",
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "t2", resp.Candidates[0].ID)
	assert.True(t, resp.Candidates[0].Feasible)
	assert.NotEmpty(t, resp.Candidates[0].Reasons)
}

func TestSuggestionServiceSubstitutesValidation(t *testing.T) {
	service := NewSuggestionService(nil, nil, nil, SuggestionServiceConfig{})

	_, err := service.Substitutes(dto.SubstituteRequest{Snapshot: snapshotFixture()})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidInput.Code, appErrors.FromError(err).Code)
}

func TestSuggestionServiceSupervisors(t *testing.T) {
	service := NewSuggestionService(nil, nil, nil, SuggestionServiceConfig{})

	resp, err := service.Supervisors(dto.SupervisorRequest{
		Snapshot:       snapshotFixture(),
		Day:            1,
		Period:         0,
		SubjectID:      "math",
		AssignedCounts: map[string]int{"t1": 3},
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	// t1 teaches math but carries three assignments already.
	assert.Equal(t, "t1", resp.Candidates[0].ID)
}

func TestSuggestionServiceRescheduleSlots(t *testing.T) {
	service := NewSuggestionService(nil, nil, nil, SuggestionServiceConfig{})

	resp, err := service.RescheduleSlots(dto.RescheduleRequest{
		Snapshot: snapshotFixture(),
		Blocks: []dto.LessonBlockPayload{
			{ID: "b1", SubjectID: "math", ClassIDs: []string{"c1"},
				Teachers: []dto.BlockTeacherPayload{{TeacherID: "t1", Role: "main"}}},
		},
		Placements: []dto.PlacementPayload{{BlockID: "b1", Day: 0, Period: 0}},
		BlockID:    "b1",
		FromDay:    0,
		FromPeriod: 0,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Candidates)
	for _, cand := range resp.Candidates {
		assert.NotEqual(t, "0-0", cand.ID)
	}
}

func TestSuggestionServiceTopKFallsBackToConfig(t *testing.T) {
	service := NewSuggestionService(nil, nil, nil, SuggestionServiceConfig{TopK: 1})

	resp, err := service.Supervisors(dto.SupervisorRequest{
		Snapshot:  snapshotFixture(),
		Day:       1,
		Period:    0,
		SubjectID: "math",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Candidates, 1)
}
