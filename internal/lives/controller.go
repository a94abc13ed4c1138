package lives

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	CreateLive(c *gin.Context)
	GetLive(c *gin.Context)
	UpdateLive(c *gin.Context)
	DeleteLive(c *gin.Context)
	GetAllLives(c *gin.Context)
	GetUpcomingLives(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateLive(c *gin.Context) {
	var req CreateLiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	adminID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Admin not authenticated", nil)
		return
	}

	live, err := ctrl.service.CreateLive(adminID, req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Live created successfully", live)
}

func (ctrl *controller) GetLive(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	live, err := ctrl.service.GetLiveByID(liveID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLiveNotFound) {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Live retrieved successfully", live)
}

func (ctrl *controller) UpdateLive(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	var req UpdateLiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	adminID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Admin not authenticated", nil)
		return
	}

	live, err := ctrl.service.UpdateLive(liveID, adminID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrLiveNotFound) {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Live updated successfully", live)
}

func (ctrl *controller) DeleteLive(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	if err := ctrl.service.DeleteLive(liveID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrLiveNotFound) {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Live deleted successfully", nil)
}

func (ctrl *controller) GetAllLives(c *gin.Context) {
	var query LiveListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	lives, err := ctrl.service.GetAllLives(query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Lives retrieved successfully", lives)
}

func (ctrl *controller) GetUpcomingLives(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	lives, err := ctrl.service.GetUpcomingLives(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Upcoming lives retrieved successfully", lives)
}
