package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	StartLogin(c *gin.Context)
	Callback(c *gin.Context)
	Refresh(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) StartLogin(c *gin.Context) {
	result, err := ctrl.service.StartLogin(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to start login", nil)
		return
	}

	response.Success(c, http.StatusOK, "Login started", result)
}

func (ctrl *controller) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := ctrl.service.HandleCallback(c.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusUnauthorized
		if errors.Is(err, ErrInvalidState) {
			statusCode = http.StatusBadRequest
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

func (ctrl *controller) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	tokenPair, err := ctrl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", tokenPair)
}
