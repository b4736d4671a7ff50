package api

import (
	"errors"
	"net/http"

	reqdto "carpool-api/internal/handler/dto/request"
	resdto "carpool-api/internal/handler/dto/response"
	"carpool-api/internal/handler/httperr"
	"carpool-api/internal/usecase/commands"
	"carpool-api/internal/usecase/queries"
	"carpool-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands     commands.BookingCommands
	availabilityQueries queries.AvailabilityQueries
	bookingQueries      queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	availabilityQueries queries.AvailabilityQueries,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands:     bookingCommands,
		availabilityQueries: availabilityQueries,
		bookingQueries:      bookingQueries,
	}
}

// @Summary Check availability for multiple cars
// @Description Compute one availability verdict per car for a single window
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CheckAvailabilityRequest true "Cars and window to check"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/check-multiple [post]
func (h *BookingHandler) CheckMultiple(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			httperr.CodeInvalidRequest, "Invalid request format", nil)
		return
	}

	verdicts, err := h.availabilityQueries.CheckBatch(c.Request.Context(), req.CarIDs, req.StartAt, req.EndAt)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidWindow):
			httperr.AbortWithError(c, http.StatusBadRequest, err,
				httperr.CodeInvalidWindow, "End must be after start", nil)
		case errors.Is(err, queries.ErrCarNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err,
				httperr.CodeCarNotFound, "Car not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				httperr.CodeInternal, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse(verdicts))
}

// @Summary Create booking
// @Description Book a car for a window; rejected if the window overlaps an active booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/create [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			httperr.CodeInvalidRequest, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), commands.CreateBookingRequest{
		CarID:        req.CarID,
		UserID:       req.UserID,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Purpose:      req.Purpose,
		Notes:        req.Notes,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
	})
	if err != nil {
		h.abortCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) abortCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			httperr.CodeInvalidWindow, "End must be after start", nil)
	case errors.Is(err, commands.ErrCarNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err,
			httperr.CodeCarNotFound, "Car not found", nil)
	case errors.Is(err, commands.ErrCarUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err,
			httperr.CodeResourceUnavailable, "Car is not available for booking", nil)
	case errors.Is(err, commands.ErrBookingConflict):
		var conflict *commands.ConflictError
		var detail any
		if errors.As(err, &conflict) && len(conflict.BusySlots) > 0 {
			detail = gin.H{"busySlots": conflict.BusySlots}
		}
		httperr.AbortWithError(c, http.StatusConflict, err,
			httperr.CodeOverlap, "Requested window overlaps an existing booking", detail)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			httperr.CodeInternal, "Internal server error", nil)
	}
}

// @Summary Cancel booking
// @Description Cancel a booking; permitted for the booking owner and admins
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Caller identity"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			httperr.CodeInvalidRequest, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CancelBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr,
			httperr.CodeInvalidRequest, "Invalid request format", nil)
		return
	}

	actor := shared.Actor{ID: req.UserID, Role: req.Role}
	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id, actor); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err,
				httperr.CodeNotFound, "Booking not found", nil)
		case errors.Is(err, commands.ErrCancelForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err,
				httperr.CodeForbidden, "Not allowed to cancel this booking", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				httperr.CodeInternal, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get booking
// @Description Get one booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			httperr.CodeInvalidRequest, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err,
				httperr.CodeNotFound, "Booking not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				httperr.CodeInternal, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List all bookings
// @Description List every booking across the fleet
// @Tags bookings
// @Produce json
// @Success 200 {array} resdto.BookingResponse
// @Router /bookings/all [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	views, err := h.bookingQueries.ListAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			httperr.CodeInternal, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary List bookings of a user
// @Description List bookings made by one user
// @Tags bookings
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/user/{id} [get]
func (h *BookingHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			httperr.CodeInvalidRequest, "Invalid user ID format", nil)
		return
	}

	views, err := h.bookingQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err,
			httperr.CodeInternal, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}
