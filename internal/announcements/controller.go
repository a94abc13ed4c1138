package announcements

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	GetDigest(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDigest(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	digest, err := ctrl.service.GetDigest(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Digest retrieved successfully", digest)
}
