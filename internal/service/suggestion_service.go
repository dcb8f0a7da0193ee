package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/engine/scoring"
	"github.com/noah-isme/jikanwari-engine/internal/models"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
)

// SuggestionServiceConfig bounds the suggestion panels.
type SuggestionServiceConfig struct {
	TopK int
}

// SuggestionService serves the three ranking flavors behind the suggestion
// panels: substitute teachers, exam supervisors and reschedule slots.
type SuggestionService struct {
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       SuggestionServiceConfig
}

// NewSuggestionService wires the suggestion dependencies.
func NewSuggestionService(validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg SuggestionServiceConfig) *SuggestionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 10
	}
	return &SuggestionService{validator: validate, logger: logger, metrics: metrics, cfg: cfg}
}

// Substitutes ranks available teachers for covering a cancelled occurrence.
func (s *SuggestionService) Substitutes(req dto.SubstituteRequest) (*dto.SuggestionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid substitute payload")
	}
	snap, err := req.Snapshot.ToModel()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid domain snapshot")
	}
	weights := scoring.DefaultFeatureWeights()
	if req.Weights != nil {
		weights = featureWeights(*req.Weights)
	}
	ranked, err := scoring.RankSubstitutes(snap, scoring.SubstituteRequest{
		At:              models.Slot{Day: req.Day, Period: req.Period},
		SubjectID:       req.SubjectID,
		ClassIDs:        req.ClassIDs,
		AbsentTeacherID: req.AbsentTeacherID,
		Current:         placements(req.Placements),
		Blocks:          blocks(req.Blocks),
		RecentCoverDays: req.RecentCoverDays,
		Weights:         weights,
		TopK:            s.topK(req.TopK),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "substitute ranking failed")
	}
	s.observe("substitute")
	return suggestionResponse(ranked), nil
}

// Supervisors ranks teachers for an exam supervision slot.
func (s *SuggestionService) Supervisors(req dto.SupervisorRequest) (*dto.SuggestionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid supervisor payload")
	}
	snap, err := req.Snapshot.ToModel()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid domain snapshot")
	}
	weights := scoring.DefaultFeatureWeights()
	if req.Weights != nil {
		weights = featureWeights(*req.Weights)
	}
	ranked, err := scoring.RankSupervisors(snap, scoring.SupervisorRequest{
		At:             models.Slot{Day: req.Day, Period: req.Period},
		SubjectID:      req.SubjectID,
		AssignedCounts: req.AssignedCounts,
		Current:        placements(req.Placements),
		Blocks:         blocks(req.Blocks),
		Weights:        weights,
		TopK:           s.topK(req.TopK),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "supervisor ranking failed")
	}
	s.observe("supervisor")
	return suggestionResponse(ranked), nil
}

// RescheduleSlots ranks destination slots for moving a cancelled lesson.
func (s *SuggestionService) RescheduleSlots(req dto.RescheduleRequest) (*dto.SuggestionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid reschedule payload")
	}
	snap, err := req.Snapshot.ToModel()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid domain snapshot")
	}
	weights := models.DefaultSoftWeights()
	if req.Weights != nil {
		weights = req.Weights.ToModel()
	}
	rules := make([]models.ConstraintRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		rules = append(rules, r.ToModel())
	}
	ranked, err := scoring.RankRescheduleSlots(snap, scoring.RescheduleRequest{
		BlockID: req.BlockID,
		From:    models.Slot{Day: req.FromDay, Period: req.FromPeriod},
		Current: placements(req.Placements),
		Blocks:  blocks(req.Blocks),
		Rules:   rules,
		Weights: weights,
		TopK:    s.topK(req.TopK),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "reschedule ranking failed")
	}
	s.observe("reschedule")
	return suggestionResponse(ranked), nil
}

func (s *SuggestionService) topK(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.cfg.TopK
}

func (s *SuggestionService) observe(flavor string) {
	if s.metrics != nil {
		s.metrics.ObserveSuggestion(flavor)
	}
}

func featureWeights(p dto.FeatureWeightsPayload) scoring.FeatureWeights {
	return scoring.FeatureWeights{
		SubjectMatch: p.SubjectMatch,
		Availability: p.Availability,
		Load:         p.CurrentLoad,
		Recency:      p.Recency,
		GradeMatch:   p.GradeMatch,
	}
}

func placements(payloads []dto.PlacementPayload) []models.Placement {
	out := make([]models.Placement, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.ToModel())
	}
	return out
}

func blocks(payloads []dto.LessonBlockPayload) []models.LessonBlock {
	out := make([]models.LessonBlock, 0, len(payloads))
	for _, b := range payloads {
		out = append(out, b.ToModel())
	}
	return out
}

func suggestionResponse(ranked []scoring.ScoredCandidate) *dto.SuggestionResponse {
	resp := &dto.SuggestionResponse{Candidates: make([]dto.ScoredCandidatePayload, 0, len(ranked))}
	for _, c := range ranked {
		resp.Candidates = append(resp.Candidates, dto.ScoredCandidatePayload{
			ID:       c.ID,
			Score:    c.Score,
			Feasible: c.Feasible,
			Reasons:  c.Reasons,
		})
	}
	return resp
}
