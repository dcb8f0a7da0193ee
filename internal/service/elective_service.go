package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/engine/elective"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
)

// ElectiveServiceConfig tunes the grouping optimiser.
type ElectiveServiceConfig struct {
	SwapPasses        int
	UnassignedPenalty float64
}

// ElectiveService partitions students into elective subject groups.
type ElectiveService struct {
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       ElectiveServiceConfig
}

// NewElectiveService wires the grouping dependencies.
func NewElectiveService(validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg ElectiveServiceConfig) *ElectiveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SwapPasses <= 0 {
		cfg.SwapPasses = elective.DefaultConfig().SwapPasses
	}
	if cfg.UnassignedPenalty <= 0 {
		cfg.UnassignedPenalty = elective.DefaultConfig().UnassignedPenalty
	}
	return &ElectiveService{validator: validate, logger: logger, metrics: metrics, cfg: cfg}
}

// Group runs the partition and reports the satisfaction score.
func (s *ElectiveService) Group(req dto.ElectiveGroupingRequest) (*dto.ElectiveGroupingResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid elective grouping payload")
	}
	students := make([]elective.Student, 0, len(req.Students))
	for _, st := range req.Students {
		students = append(students, elective.Student{ID: st.ID, Choices: st.Choices})
	}
	capacities := make([]elective.SubjectCapacity, 0, len(req.Capacities))
	for _, c := range req.Capacities {
		capacities = append(capacities, elective.SubjectCapacity{
			SubjectID: c.SubjectID, Capacity: c.Capacity, TeacherID: c.TeacherID,
		})
	}

	result, err := elective.Partition(students, capacities, req.PeriodCount, elective.Config{
		SwapPasses:        s.cfg.SwapPasses,
		UnassignedPenalty: s.cfg.UnassignedPenalty,
	})
	if err != nil {
		if errors.Is(err, elective.ErrInvalidInput) {
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid elective grouping input")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "elective grouping failed")
	}
	if s.metrics != nil {
		s.metrics.ObserveGrouping()
	}
	s.logger.Info("elective_grouping_completed",
		zap.Int("students", len(students)),
		zap.Int("groups", len(result.Groups)),
		zap.Int("unassigned", len(result.Unassigned)),
		zap.Float64("satisfaction", result.Satisfaction),
	)

	resp := &dto.ElectiveGroupingResponse{
		Groups:       make([]dto.ElectiveGroupPayload, 0, len(result.Groups)),
		Unassigned:   result.Unassigned,
		Satisfaction: result.Satisfaction,
	}
	for _, g := range result.Groups {
		resp.Groups = append(resp.Groups, dto.ElectiveGroupPayload{
			SubjectID:  g.SubjectID,
			Period:     g.Period,
			TeacherID:  g.TeacherID,
			StudentIDs: g.StudentIDs,
		})
	}
	return resp, nil
}
