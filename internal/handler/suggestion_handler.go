package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/service"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
	"github.com/noah-isme/jikanwari-engine/pkg/response"
)

type suggester interface {
	Substitutes(req dto.SubstituteRequest) (*dto.SuggestionResponse, error)
	Supervisors(req dto.SupervisorRequest) (*dto.SuggestionResponse, error)
	RescheduleSlots(req dto.RescheduleRequest) (*dto.SuggestionResponse, error)
}

// SuggestionHandler exposes the candidate ranking endpoints.
type SuggestionHandler struct {
	service suggester
}

// NewSuggestionHandler constructs the handler.
func NewSuggestionHandler(svc *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: svc}
}

// Substitutes ranks replacement teachers for an absence.
func (h *SuggestionHandler) Substitutes(c *gin.Context) {
	var req dto.SubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, http.StatusBadRequest, "invalid substitute payload"))
		return
	}
	result, err := h.service.Substitutes(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Supervisors ranks exam supervision candidates.
func (h *SuggestionHandler) Supervisors(c *gin.Context) {
	var req dto.SupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, http.StatusBadRequest, "invalid supervisor payload"))
		return
	}
	result, err := h.service.Supervisors(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Reschedule ranks destination slots for moving a lesson block.
func (h *SuggestionHandler) Reschedule(c *gin.Context) {
	var req dto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, http.StatusBadRequest, "invalid reschedule payload"))
		return
	}
	result, err := h.service.RescheduleSlots(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
