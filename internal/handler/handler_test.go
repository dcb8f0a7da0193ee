package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
	"github.com/noah-isme/jikanwari-engine/pkg/response"
)

func TestSolverHandlerSolve(t *testing.T) {
	stub := &solverStub{
		solveResp: &dto.SolveResponse{PatternSetID: "set-1", Restarts: 1},
	}
	router := newRouter()
	h := &SolverHandler{service: stub}
	router.POST("/timetable/solve", h.Solve)

	body := map[string]any{"lessonBlocks": []any{}}
	w := doJSON(t, router, http.MethodPost, "/timetable/solve", body)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.SolveResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "set-1", envelope.Data.PatternSetID)
}

func TestSolverHandlerSolveBadJSON(t *testing.T) {
	router := newRouter()
	h := &SolverHandler{service: &solverStub{}}
	router.POST("/timetable/solve", h.Solve)

	req := httptest.NewRequest(http.MethodPost, "/timetable/solve", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInvalidInput.Code, envelope.Error.Code)
}

func TestSolverHandlerSolveServiceError(t *testing.T) {
	stub := &solverStub{
		solveErr: appErrors.Clone(appErrors.ErrInfeasible, ""),
	}
	router := newRouter()
	h := &SolverHandler{service: stub}
	router.POST("/timetable/solve", h.Solve)

	w := doJSON(t, router, http.MethodPost, "/timetable/solve", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSolverHandlerPatterns(t *testing.T) {
	stub := &solverStub{
		patterns: map[string]*dto.SolveResponse{
			"set-1": {PatternSetID: "set-1"},
		},
	}
	router := newRouter()
	h := &SolverHandler{service: stub}
	router.GET("/timetable/patterns/:id", h.Patterns)

	w := doJSON(t, router, http.MethodGet, "/timetable/patterns/set-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/timetable/patterns/expired", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEvaluationHandlerEvaluate(t *testing.T) {
	stub := &evaluatorStub{resp: &dto.EvaluateResponse{Feasible: true}}
	router := newRouter()
	h := &EvaluationHandler{service: stub}
	router.POST("/timetable/evaluate", h.Evaluate)

	w := doJSON(t, router, http.MethodPost, "/timetable/evaluate", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.EvaluateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Feasible)
}

func TestSuggestionHandlerRoutes(t *testing.T) {
	stub := &suggesterStub{resp: &dto.SuggestionResponse{
		Candidates: []dto.ScoredCandidatePayload{{ID: "t1", Feasible: true}},
	}}
	router := newRouter()
	h := &SuggestionHandler{service: stub}
	router.POST("/suggestions/substitute", h.Substitutes)
	router.POST("/suggestions/supervisor", h.Supervisors)
	router.POST("/suggestions/reschedule", h.Reschedule)

	for _, path := range []string{
		"/suggestions/substitute",
		"/suggestions/supervisor",
		"/suggestions/reschedule",
	} {
		w := doJSON(t, router, http.MethodPost, path, map[string]any{})
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestElectiveHandlerGroup(t *testing.T) {
	stub := &grouperStub{resp: &dto.ElectiveGroupingResponse{Satisfaction: 1.0}}
	router := newRouter()
	h := &ElectiveHandler{service: stub}
	router.POST("/electives/grouping", h.Group)

	w := doJSON(t, router, http.MethodPost, "/electives/grouping", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.ElectiveGroupingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.InDelta(t, 1.0, envelope.Data.Satisfaction, 1e-9)
}

// --- Fixtures ---

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type solverStub struct {
	solveResp *dto.SolveResponse
	solveErr  error
	patterns  map[string]*dto.SolveResponse
}

func (s *solverStub) Solve(_ context.Context, _ dto.SolveRequest) (*dto.SolveResponse, error) {
	return s.solveResp, s.solveErr
}

func (s *solverStub) GetPatternSet(id string) (*dto.SolveResponse, error) {
	if resp, ok := s.patterns[id]; ok {
		return resp, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "pattern set not found or expired")
}

type evaluatorStub struct {
	resp *dto.EvaluateResponse
	err  error
}

func (s *evaluatorStub) Evaluate(_ dto.EvaluateRequest) (*dto.EvaluateResponse, error) {
	return s.resp, s.err
}

type suggesterStub struct {
	resp *dto.SuggestionResponse
	err  error
}

func (s *suggesterStub) Substitutes(_ dto.SubstituteRequest) (*dto.SuggestionResponse, error) {
	return s.resp, s.err
}

func (s *suggesterStub) Supervisors(_ dto.SupervisorRequest) (*dto.SuggestionResponse, error) {
	return s.resp, s.err
}

func (s *suggesterStub) RescheduleSlots(_ dto.RescheduleRequest) (*dto.SuggestionResponse, error) {
	return s.resp, s.err
}

type grouperStub struct {
	resp *dto.ElectiveGroupingResponse
	err  error
}

func (s *grouperStub) Group(_ dto.ElectiveGroupingRequest) (*dto.ElectiveGroupingResponse, error) {
	return s.resp, s.err
}
