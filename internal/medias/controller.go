package medias

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	CreateMedia(c *gin.Context)
	GetMedia(c *gin.Context)
	DeleteMedia(c *gin.Context)
	GetAllMedias(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateMedia(c *gin.Context) {
	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	adminID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Admin not authenticated", nil)
		return
	}

	media, err := ctrl.service.CreateMedia(adminID, req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Media created successfully", media)
}

func (ctrl *controller) GetMedia(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("mediaId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid media ID", err.Error())
		return
	}

	media, err := ctrl.service.GetMediaByID(mediaID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "media not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Media retrieved successfully", media)
}

func (ctrl *controller) DeleteMedia(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("mediaId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid media ID", err.Error())
		return
	}

	if err := ctrl.service.DeleteMedia(mediaID); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "media not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Media deleted successfully", nil)
}

func (ctrl *controller) GetAllMedias(c *gin.Context) {
	var query MediaListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	medias, err := ctrl.service.GetAllMedias(query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Medias retrieved successfully", medias)
}
