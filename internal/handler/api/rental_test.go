//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/domain/rental"
	"bookride-api/internal/handler/api"
	"bookride-api/internal/handler/middleware"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/usecase"
	"bookride-api/internal/usecase/commands"
	"bookride-api/tests/common/httptest"
	commandsmock "bookride-api/tests/mock/commands"
	queriesmock "bookride-api/tests/mock/queries"
	usecasemock "bookride-api/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RentalHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRentalCommands
	mockAuth     *usecasemock.MockAuthenticator
}

func (s *RentalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRentalCommands(s.mockCtrl)
	s.mockAuth = usecasemock.NewMockAuthenticator(s.mockCtrl)
	authMiddleware := middleware.NewAuthMiddleware(s.mockAuth, queriesmock.NewMockUserQueries(s.mockCtrl), config.NewTestConfig())
	handler := api.NewRentalHandler(s.mockCommands)

	requireActor := authMiddleware.RequireActor(auth.ScopeRentalsWrite)
	s.router.POST("/rentals/start", requireActor, handler.Start)
	s.router.POST("/rentals/stop", requireActor, handler.Stop)
}

func (s *RentalHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRentalHandlerSuite(t *testing.T) {
	suite.Run(t, new(RentalHandlerTestSuite))
}

var partner = auth.APIKeyPrincipal("service-a")

func (s *RentalHandlerTestSuite) expectAPIKey() {
	s.mockAuth.EXPECT().
		ResolveActor(gomock.Any(), usecase.Credentials{APIKey: "k-123"}, []string{auth.ScopeRentalsWrite}).
		Return(partner, nil).Times(1)
}

func (s *RentalHandlerTestSuite) TestStart() {
	headers := jsonHeaders("X-API-Key", "k-123")

	s.Run("成功: APIキーの利用者でレンタルを開始する", func() {
		startedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		s.expectAPIKey()
		s.mockCommands.EXPECT().Start(gomock.Any(), partner, "bike-1").
			Return(&commands.StartRentalResult{RentalID: 11, StartedAt: startedAt}, nil).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/start", []byte(`{"bike_id":"bike-1"}`), headers)

		var got map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(float64(11), got["rental_id"])
		s.Equal("2024-05-01T08:00:00Z", got["started_at"])
	})

	s.Run("成功: Bearerトークンを優先して検証する", func() {
		token := "tok"
		bearerUser := auth.TokenPrincipal("5", []string{auth.ScopeRentalsWrite}, "", "")
		s.mockAuth.EXPECT().
			ResolveActor(gomock.Any(), usecase.Credentials{Bearer: &token, APIKey: "k-123"}, []string{auth.ScopeRentalsWrite}).
			Return(bearerUser, nil).Times(1)
		s.mockCommands.EXPECT().Start(gomock.Any(), bearerUser, "bike-1").
			Return(&commands.StartRentalResult{RentalID: 12, StartedAt: time.Now().UTC()}, nil).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/start", []byte(`{"bike_id":"bike-1"}`),
			jsonHeaders("X-API-Key", "k-123", "Authorization", "Bearer tok"))
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("エラー: bike_idが空なら422", func() {
		s.expectAPIKey()

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/start", []byte(`{"bike_id":""}`), headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid request body")
	})

	s.Run("エラー: 資格情報なしは401", func() {
		s.mockAuth.EXPECT().
			ResolveActor(gomock.Any(), usecase.Credentials{}, []string{auth.ScopeRentalsWrite}).
			Return(auth.Principal{}, auth.NewError(auth.CredentialRequired, "Authorization header or API key required")).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/start", []byte(`{"bike_id":"bike-1"}`), jsonHeaders())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authorization header or API key required")
		s.Equal("Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	s.Run("エラー: スコープ不足は403", func() {
		s.mockAuth.EXPECT().ResolveActor(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.Principal{}, auth.NewInsufficientScope([]string{auth.ScopeRentalsWrite})).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/start", []byte(`{"bike_id":"bike-1"}`),
			jsonHeaders("Authorization", "Bearer tok"))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Missing scopes: ['rentals:write']")
	})
}

func (s *RentalHandlerTestSuite) TestStop() {
	headers := jsonHeaders("X-API-Key", "k-123")

	s.Run("成功: 所要時間と料金を返す", func() {
		s.expectAPIKey()
		s.mockCommands.EXPECT().Stop(gomock.Any(), partner, int64(11)).
			Return(&commands.StopRentalResult{DurationMin: 30, PriceEUR: 4.5}, nil).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/stop", []byte(`{"rental_id":11}`), headers)

		var got map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(float64(30), got["duration_min"])
		s.Equal(4.5, got["price_eur"])
	})

	s.Run("エラー: ユースケースのエラーを適切なステータスに変換する", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "停止済み", commandsError: errs.Mark(rental.ErrAlreadyStopped, errs.ErrRentalAlreadyStopped), expectedStatus: http.StatusBadRequest, expectedMsg: "Rental already stopped"},
			{name: "他人のレンタル", commandsError: errs.ErrRentalNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Rental not found"},
			{name: "DB障害", commandsError: errs.Mark(errs.New("timeout"), errs.ErrDatabaseOperationFailed), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.expectAPIKey()
				s.mockCommands.EXPECT().Stop(gomock.Any(), partner, int64(11)).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/stop", []byte(`{"rental_id":11}`), headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("エラー: rental_idが0なら422", func() {
		s.expectAPIKey()

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/rentals/stop", []byte(`{"rental_id":0}`), headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid request body")
	})
}
