//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"carpool-api/internal/handler/api"
	resdto "carpool-api/internal/handler/dto/response"
	"carpool-api/internal/handler/httperr"
	"carpool-api/internal/pkg/errs"
	"carpool-api/internal/usecase/commands"
	"carpool-api/internal/usecase/queries"
	"carpool-api/tests/common/httptest"
	commandsmock "carpool-api/tests/mock/commands"
	queriesmock "carpool-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var base = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type BookingHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockBookingCommands
	mockAvailability *queriesmock.MockAvailabilityQueries
	mockQueries      *queriesmock.MockBookingQueries
	handler          *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockAvailability, s.mockQueries)

	s.router.POST("/api/bookings/check-multiple", s.handler.CheckMultiple)
	s.router.POST("/api/bookings/create", s.handler.Create)
	s.router.POST("/api/bookings/:id/cancel", s.handler.Cancel)
	s.router.GET("/api/bookings/all", s.handler.ListAll)
	s.router.GET("/api/bookings/user/:id", s.handler.ListByUser)
	s.router.GET("/api/bookings/:id", s.handler.Get)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func sampleView(carID, userID uuid.UUID) *queries.BookingView {
	return &queries.BookingView{
		ID:         uuid.New(),
		CarID:      carID,
		CarName:    "Corolla 3",
		BranchID:   uuid.New(),
		BranchName: "Downtown",
		UserID:     userID,
		StartAt:    base,
		EndAt:      base.Add(2 * time.Hour),
		Status:     "active",
		CreatedAt:  base,
	}
}

// ================================================================================
// TestCheckMultiple
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckMultiple() {
	url := "/api/bookings/check-multiple"
	carID := uuid.New()
	reqBody := map[string]any{
		"carIds":  []string{carID.String()},
		"startAt": base.Format(time.RFC3339),
		"endAt":   base.Add(time.Hour).Format(time.RFC3339),
	}

	s.Run("success: returns verdict per car", func() {
		verdicts := map[uuid.UUID]queries.Verdict{
			carID: {
				Status:    queries.AvailabilityUnavailable,
				BusySlots: []queries.BusySlot{{StartAt: base, EndAt: base.Add(2 * time.Hour)}},
			},
		}
		s.mockAvailability.EXPECT().CheckBatch(gomock.Any(), []uuid.UUID{carID}, gomock.Any(), gomock.Any()).
			Return(verdicts, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var got map[string]queries.Verdict
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Len(got, 1)
		s.Equal(queries.AvailabilityUnavailable, got[carID.String()].Status)
		s.Len(got[carID.String()].BusySlots, 1)
	})

	s.Run("error: 400 on empty carIds", func() {
		body := map[string]any{
			"carIds":  []string{},
			"startAt": base.Format(time.RFC3339),
			"endAt":   base.Add(time.Hour).Format(time.RFC3339),
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})

	s.Run("error: 400 on inverted window", func() {
		s.mockAvailability.EXPECT().CheckBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidWindow).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeInvalidWindow)
	})

	s.Run("error: 404 on unknown car", func() {
		s.mockAvailability.EXPECT().CheckBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrCarNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, httperr.CodeCarNotFound)
	})
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings/create"
	carID := uuid.New()
	userID := uuid.New()
	reqBody := map[string]any{
		"carId":   carID.String(),
		"userId":  userID.String(),
		"startAt": base.Format(time.RFC3339),
		"endAt":   base.Add(2 * time.Hour).Format(time.RFC3339),
		"purpose": "client visit",
	}

	s.Run("success: returns 201 with booking view", func() {
		view := sampleView(carID, userID)
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("Corolla 3", body.CarName)
		s.Equal("active", body.Status)
	})

	s.Run("error: 400 on missing carId", func() {
		body := map[string]any{
			"userId":  userID.String(),
			"startAt": base.Format(time.RFC3339),
			"endAt":   base.Add(2 * time.Hour).Format(time.RFC3339),
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})

	s.Run("error: 409 with busy slots on overlap", func() {
		conflict := &commands.ConflictError{
			BusySlots: []queries.BusySlot{{StartAt: base, EndAt: base.Add(2 * time.Hour)}},
		}
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(conflict, commands.ErrBookingConflict)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, httperr.CodeOverlap)

		var body struct {
			Detail struct {
				BusySlots []queries.BusySlot `json:"busySlots"`
			} `json:"detail"`
		}
		httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Len(body.Detail.BusySlots, 1)
	})

	s.Run("error: 409 on unavailable car", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrCarUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, httperr.CodeResourceUnavailable)
	})

	s.Run("error: 404 on unknown car", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrCarNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, httperr.CodeCarNotFound)
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	userID := uuid.New()
	url := "/api/bookings/" + bookingID.String() + "/cancel"
	reqBody := map[string]any{"userId": userID.String()}

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on malformed booking ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/not-a-uuid/cancel", reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})

	s.Run("error: 403 when forbidden", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(commands.ErrCancelForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, httperr.CodeForbidden)
	})

	s.Run("error: 404 on unknown booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/api/bookings/" + bookingID.String()

	s.Run("success: returns booking", func() {
		view := sampleView(uuid.New(), uuid.New())
		view.ID = bookingID
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(bookingID, body.ID)
	})

	s.Run("error: 404 on unknown booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestListAll() {
	s.Run("success: returns all bookings", func() {
		views := []*queries.BookingView{sampleView(uuid.New(), uuid.New()), sampleView(uuid.New(), uuid.New())}
		s.mockQueries.EXPECT().ListAll(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/all", nil)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
	})
}

func (s *BookingHandlerTestSuite) TestListByUser() {
	userID := uuid.New()

	s.Run("success: returns user bookings", func() {
		views := []*queries.BookingView{sampleView(uuid.New(), userID)}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/user/"+userID.String(), nil)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal(userID, body[0].UserID)
	})

	s.Run("error: 400 on malformed user ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/user/nope", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})
}
