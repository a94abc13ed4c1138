package members

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	GetMe(c *gin.Context)
	UpdateMe(c *gin.Context)
	Consent(c *gin.Context)
	GetAllMembers(c *gin.Context)
	SetRole(c *gin.Context)
	DeleteMember(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetMe(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	member, err := ctrl.service.GetMember(memberID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "member not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Member retrieved successfully", member)
}

func (ctrl *controller) UpdateMe(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	member, err := ctrl.service.UpdateProfile(memberID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "member not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Member updated successfully", member)
}

func (ctrl *controller) Consent(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	member, err := ctrl.service.RecordConsent(memberID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "member not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Consent recorded", member)
}

func (ctrl *controller) GetAllMembers(c *gin.Context) {
	members, err := ctrl.service.GetAllMembers()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Members retrieved successfully", members)
}

func (ctrl *controller) SetRole(c *gin.Context) {
	memberID := c.Param("memberId")

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	member, err := ctrl.service.SetRole(memberID, Role(req.Role))
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "member not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Role updated successfully", member)
}

func (ctrl *controller) DeleteMember(c *gin.Context) {
	memberID := c.Param("memberId")

	if err := ctrl.service.DeleteMember(memberID); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "member not found" {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Member deleted successfully", nil)
}
