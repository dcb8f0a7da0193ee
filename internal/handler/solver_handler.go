package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/service"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
	"github.com/noah-isme/jikanwari-engine/pkg/response"
)

type timetableSolver interface {
	Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error)
	GetPatternSet(id string) (*dto.SolveResponse, error)
}

// SolverHandler exposes the timetable solve contract.
type SolverHandler struct {
	service timetableSolver
}

// NewSolverHandler constructs the handler.
func NewSolverHandler(svc *service.SolverService) *SolverHandler {
	return &SolverHandler{service: svc}
}

// Solve generates ranked timetable candidates for the posted snapshot.
func (h *SolverHandler) Solve(c *gin.Context) {
	var req dto.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, http.StatusBadRequest, "invalid solve payload"))
		return
	}
	result, err := h.service.Solve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Patterns re-fetches a stored pattern set for the comparison view.
func (h *SolverHandler) Patterns(c *gin.Context) {
	result, err := h.service.GetPatternSet(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
