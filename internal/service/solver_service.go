package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/engine/solver"
	"github.com/noah-isme/jikanwari-engine/internal/models"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
)

// SolverServiceConfig governs solver defaults a request may override.
type SolverServiceConfig struct {
	DefaultTimeout     time.Duration
	DefaultMaxPatterns int
	PatternTTL         time.Duration
	MaxLessonBlocks    int
}

// SolverService runs timetable solves and keeps the resulting pattern sets
// retrievable for the host's comparison view.
type SolverService struct {
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	store     *patternStore
	cfg       SolverServiceConfig
}

// NewSolverService wires the solver dependencies.
func NewSolverService(validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg SolverServiceConfig) *SolverService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 10 * time.Second
	}
	if cfg.DefaultMaxPatterns <= 0 {
		cfg.DefaultMaxPatterns = 5
	}
	if cfg.PatternTTL <= 0 {
		cfg.PatternTTL = 30 * time.Minute
	}
	if cfg.MaxLessonBlocks <= 0 {
		cfg.MaxLessonBlocks = 512
	}
	return &SolverService{
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		store:     newPatternStore(cfg.PatternTTL),
		cfg:       cfg,
	}
}

// Solve validates the request, runs the search and stores the ranked result.
func (s *SolverService) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid solve payload")
	}
	if len(req.Blocks) > s.cfg.MaxLessonBlocks {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, fmt.Sprintf("lessonBlocks exceeds supported limit (%d)", s.cfg.MaxLessonBlocks))
	}
	snap, err := req.Snapshot.ToModel()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid domain snapshot")
	}

	blocks := make([]models.LessonBlock, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		blocks = append(blocks, b.ToModel())
	}
	rules := make([]models.ConstraintRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		rules = append(rules, r.ToModel())
	}
	weights := models.DefaultSoftWeights()
	if req.Weights != nil {
		weights = req.Weights.ToModel()
	}

	cfg := solver.Config{
		Timeout:     s.cfg.DefaultTimeout,
		MaxPatterns: s.cfg.DefaultMaxPatterns,
		RandomSeed:  req.RandomSeed,
		Weights:     weights,
	}
	if req.TimeoutMs > 0 {
		cfg.Timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	if req.MaxPatterns > 0 {
		cfg.MaxPatterns = req.MaxPatterns
	}

	start := time.Now()
	result, err := solver.Solve(ctx, snap, blocks, rules, cfg)
	elapsed := time.Since(start)
	if err != nil {
		switch {
		case errors.Is(err, solver.ErrInfeasible):
			s.observeSolve(elapsed, 0, "infeasible")
			return nil, appErrors.Wrap(err, appErrors.ErrInfeasible.Code, appErrors.ErrInfeasible.Status, "no feasible timetable within the search budget")
		case errors.Is(err, solver.ErrInvalidInput):
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid solve input")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "solver failed")
		}
	}

	resp := dto.SolveResponse{
		PatternSetID: uuid.NewString(),
		Candidates:   make([]dto.TimetableCandidatePayload, 0, len(result.Candidates)),
		TimedOut:     result.TimedOut,
		Cancelled:    result.Cancelled,
		Restarts:     result.Restarts,
	}
	for _, cand := range result.Candidates {
		placements := make([]dto.PlacementPayload, 0, len(cand.Placements))
		for _, p := range cand.Placements {
			placements = append(placements, dto.FromPlacement(p))
		}
		resp.Candidates = append(resp.Candidates, dto.TimetableCandidatePayload{
			Placements: placements,
			Penalty:    cand.Penalty,
			Diversity:  cand.Diversity,
		})
	}
	s.store.Save(resp.PatternSetID, resp)

	outcome := "ok"
	if result.TimedOut {
		outcome = "timeout"
	} else if result.Cancelled {
		outcome = "cancelled"
	}
	s.observeSolve(elapsed, len(resp.Candidates), outcome)
	s.logger.Info("solve_completed",
		zap.String("pattern_set_id", resp.PatternSetID),
		zap.Int("patterns", len(resp.Candidates)),
		zap.Int("restarts", result.Restarts),
		zap.Int64("nodes", result.Nodes),
		zap.Duration("elapsed", elapsed),
		zap.Bool("timed_out", result.TimedOut),
		zap.Bool("cancelled", result.Cancelled),
	)
	return &resp, nil
}

// GetPatternSet re-fetches a stored solve result.
func (s *SolverService) GetPatternSet(id string) (*dto.SolveResponse, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, "pattern set id is required")
	}
	resp, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "pattern set not found or expired")
	}
	return &resp, nil
}

func (s *SolverService) observeSolve(elapsed time.Duration, patterns int, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveSolve(elapsed, patterns, outcome)
	}
}
