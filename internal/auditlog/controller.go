package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	GetAll(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filters := ListFilters{
		MemberID: c.Query("member_id"),
		Action:   c.Query("action"),
		Limit:    limit,
		Offset:   offset,
	}

	entries, total, err := ctrl.service.GetAll(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get audit log", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Audit log retrieved successfully", gin.H{
		"entries": entries,
		"total":   total,
	})
}
