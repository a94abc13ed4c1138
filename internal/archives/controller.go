package archives

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	ArchiveLive(c *gin.Context)
	GetArchive(c *gin.Context)
	GetAllArchives(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ArchiveLive(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	adminID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	archive, err := ctrl.service.ArchiveLive(c.Request.Context(), liveID, adminID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			response.Error(c, http.StatusNotFound, "Live not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to archive live", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Live archived successfully", archive)
}

func (ctrl *controller) GetArchive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("archiveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid archive ID", err.Error())
		return
	}

	archive, err := ctrl.service.GetArchive(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrArchiveNotFound) {
			response.Error(c, http.StatusNotFound, "Archive not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get archive", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Archive retrieved successfully", archive)
}

func (ctrl *controller) GetAllArchives(c *gin.Context) {
	archives, err := ctrl.service.GetAllArchives(c.Request.Context(), c.Query("kind"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get archives", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Archives retrieved successfully", gin.H{
		"archives": archives,
		"count":    len(archives),
	})
}
