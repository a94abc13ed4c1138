package scores

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	CreateScore(c *gin.Context)
	GetScore(c *gin.Context)
	UpdateScore(c *gin.Context)
	DeleteScore(c *gin.Context)
	GetAllScores(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateScore(c *gin.Context) {
	var req CreateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	adminID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Admin not authenticated", nil)
		return
	}

	score, err := ctrl.service.CreateScore(adminID, req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Score created successfully", score)
}

func (ctrl *controller) GetScore(c *gin.Context) {
	scoreID, err := uuid.Parse(c.Param("scoreId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid score ID", err.Error())
		return
	}

	score, err := ctrl.service.GetScoreByID(scoreID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "score not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Score retrieved successfully", score)
}

func (ctrl *controller) UpdateScore(c *gin.Context) {
	scoreID, err := uuid.Parse(c.Param("scoreId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid score ID", err.Error())
		return
	}

	var req UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	score, err := ctrl.service.UpdateScore(scoreID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "score not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Score updated successfully", score)
}

func (ctrl *controller) DeleteScore(c *gin.Context) {
	scoreID, err := uuid.Parse(c.Param("scoreId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid score ID", err.Error())
		return
	}

	if err := ctrl.service.DeleteScore(scoreID); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "score not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Score deleted successfully", nil)
}

func (ctrl *controller) GetAllScores(c *gin.Context) {
	var query ScoreListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	scores, err := ctrl.service.GetAllScores(query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Scores retrieved successfully", scores)
}
