package tickets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"streakconnect/internal/shared/middleware"
	"streakconnect/internal/shared/utils/response"
)

type Controller interface {
	UpsertReservation(c *gin.Context)
	CancelReservation(c *gin.Context)
	GetMyTicket(c *gin.Context)
	GetMyTickets(c *gin.Context)
	GetTicketQR(c *gin.Context)
	GetRemainingStock(c *gin.Context)
	GetLiveTickets(c *gin.Context)
	GetSummary(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// statusForError maps the reservation error taxonomy onto HTTP codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrLiveNotFound), errors.Is(err, ErrTicketNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoSeatsRequested), errors.Is(err, ErrTooManyCompanions),
		errors.Is(err, ErrInvalidResType), errors.Is(err, ErrRepresentativeRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrOutsideWindow):
		return http.StatusForbidden
	case errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) UpsertReservation(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	var req UpsertReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	displayName := ""
	if v, exists := c.Get(middleware.CtxDisplayName); exists {
		if name, isString := v.(string); isString {
			displayName = name
		}
	}

	ticket, err := ctrl.service.UpsertReservation(c.Request.Context(), liveID, memberID, displayName, req)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Reservation confirmed", ticket)
}

func (ctrl *controller) CancelReservation(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	released, err := ctrl.service.CancelReservation(c.Request.Context(), liveID, memberID)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Reservation cancelled", gin.H{
		"released_seats": released,
	})
}

func (ctrl *controller) GetMyTicket(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	ticket, err := ctrl.service.GetMyTicket(c.Request.Context(), liveID, memberID)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Ticket retrieved successfully", ticket)
}

func (ctrl *controller) GetMyTickets(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	tickets, err := ctrl.service.GetMyTickets(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Tickets retrieved successfully", tickets)
}

func (ctrl *controller) GetTicketQR(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Member not authenticated", nil)
		return
	}

	png, err := ctrl.service.GenerateTicketQR(c.Request.Context(), liveID, memberID)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (ctrl *controller) GetRemainingStock(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	remaining, err := ctrl.service.RemainingStock(c.Request.Context(), liveID)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Remaining stock retrieved successfully", gin.H{
		"live_id":   liveID.String(),
		"remaining": remaining,
	})
}

func (ctrl *controller) GetLiveTickets(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	var query TicketListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	tickets, err := ctrl.service.GetLiveTickets(c.Request.Context(), liveID, query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Tickets retrieved successfully", tickets)
}

func (ctrl *controller) GetSummary(c *gin.Context) {
	liveID, err := uuid.Parse(c.Param("liveId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid live ID", err.Error())
		return
	}

	summary, err := ctrl.service.GetSummary(c.Request.Context(), liveID)
	if err != nil {
		response.Error(c, statusForError(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Summary retrieved successfully", summary)
}
