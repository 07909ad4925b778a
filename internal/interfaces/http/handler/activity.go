package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/stocktrack/backend/internal/application/audit"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// ActivityHandler exposes the audit trail read API
type ActivityHandler struct {
	BaseHandler
	activityService *auditapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *auditapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ActivityListQuery filters the audit trail listing
type ActivityListQuery struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List handles GET /activities
func (h *ActivityHandler) List(c *gin.Context) {
	var query ActivityListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	filter.Keyword = query.Keyword
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}

	result, err := h.activityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
