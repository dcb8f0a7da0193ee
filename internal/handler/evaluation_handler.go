package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/service"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
	"github.com/noah-isme/jikanwari-engine/pkg/response"
)

type timetableEvaluator interface {
	Evaluate(req dto.EvaluateRequest) (*dto.EvaluateResponse, error)
}

// EvaluationHandler exposes standalone constraint evaluation.
type EvaluationHandler struct {
	service timetableEvaluator
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(svc *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{service: svc}
}

// Evaluate reports all violations and the soft penalty of a posted assignment.
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req dto.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, http.StatusBadRequest, "invalid evaluate payload"))
		return
	}
	result, err := h.service.Evaluate(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
