package votes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	CreateVote(c *gin.Context)
	GetVote(c *gin.Context)
	GetAllVotes(c *gin.Context)
	CloseVote(c *gin.Context)
	DeleteVote(c *gin.Context)
	CastVote(c *gin.Context)
	WithdrawVote(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrVoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrVoteClosed):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidChoice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) CreateVote(c *gin.Context) {
	var req CreateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	adminID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Admin not authenticated", nil)
		return
	}

	vote, err := ctrl.service.CreateVote(c.Request.Context(), adminID, req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Vote created successfully", vote)
}

func (ctrl *controller) GetVote(c *gin.Context) {
	voteID, err := uuid.Parse(c.Param("voteId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid vote ID", err.Error())
		return
	}

	memberID, _ := middleware.MemberID(c)

	vote, err := ctrl.service.GetVote(c.Request.Context(), voteID, memberID)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Vote retrieved successfully", vote)
}

func (ctrl *controller) GetAllVotes(c *gin.Context) {
	memberID, _ := middleware.MemberID(c)

	votes, err := ctrl.service.GetAllVotes(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Votes retrieved successfully", votes)
}

func (ctrl *controller) CloseVote(c *gin.Context) {
	voteID, err := uuid.Parse(c.Param("voteId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid vote ID", err.Error())
		return
	}

	if err := ctrl.service.CloseVote(c.Request.Context(), voteID); err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Vote closed successfully", nil)
}

func (ctrl *controller) DeleteVote(c *gin.Context) {
	voteID, err := uuid.Parse(c.Param("voteId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid vote ID", err.Error())
		return
	}

	if err := ctrl.service.DeleteVote(c.Request.Context(), voteID); err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Vote deleted successfully", nil)
}

func (ctrl *controller) CastVote(c *gin.Context) {
	voteID, err := uuid.Parse(c.Param("voteId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid vote ID", err.Error())
		return
	}

	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	vote, err := ctrl.service.CastVote(c.Request.Context(), voteID, memberID, req)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Vote cast successfully", vote)
}

func (ctrl *controller) WithdrawVote(c *gin.Context) {
	voteID, err := uuid.Parse(c.Param("voteId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid vote ID", err.Error())
		return
	}

	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	if err := ctrl.service.WithdrawVote(c.Request.Context(), voteID, memberID); err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Vote withdrawn successfully", nil)
}
