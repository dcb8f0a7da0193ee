package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jikanwari-engine/internal/dto"
	"github.com/noah-isme/jikanwari-engine/internal/service"
	appErrors "github.com/noah-isme/jikanwari-engine/pkg/errors"
	"github.com/noah-isme/jikanwari-engine/pkg/response"
)

type electiveGrouper interface {
	Group(req dto.ElectiveGroupingRequest) (*dto.ElectiveGroupingResponse, error)
}

// ElectiveHandler exposes elective group optimisation.
type ElectiveHandler struct {
	service electiveGrouper
}

// NewElectiveHandler constructs the handler.
func NewElectiveHandler(svc *service.ElectiveService) *ElectiveHandler {
	return &ElectiveHandler{service: svc}
}

// Group partitions students into elective groups from their preference lists.
func (h *ElectiveHandler) Group(c *gin.Context) {
	var req dto.ElectiveGroupingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, http.StatusBadRequest, "invalid grouping payload"))
		return
	}
	result, err := h.service.Group(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
