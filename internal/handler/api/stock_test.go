//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"account-shop/internal/handler/api"
	"account-shop/internal/infra"
	"account-shop/internal/usecase/queries"
	queriesmock "account-shop/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type APIHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockStock   *queriesmock.MockStockQueries
	mockOrders  *queriesmock.MockOrderQueries
}

func (s *APIHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockStock = queriesmock.NewMockStockQueries(s.mockCtrl)
	s.mockOrders = queriesmock.NewMockOrderQueries(s.mockCtrl)

	stockHandler := api.NewStockHandler(s.mockStock)
	orderHandler := api.NewOrderHandler(s.mockOrders)

	s.router.GET("/api/stock", stockHandler.GetStock)
	s.router.GET("/api/orders/:id", orderHandler.GetOrder)
}

func (s *APIHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAPIHandlerSuite(t *testing.T) {
	suite.Run(t, new(APIHandlerTestSuite))
}

func (s *APIHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APIHandlerTestSuite) TestGetStock() {
	s.Run("returns the four counters", func() {
		s.mockStock.EXPECT().Current(gomock.Any()).Return(&queries.StockView{
			Total: 10, Consumed: 4, Reserved: 2, Available: 4,
		}, nil)

		rec := s.get("/api/stock")
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]int64
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(int64(10), body["total"])
		s.Equal(int64(4), body["consumed"])
		s.Equal(int64(2), body["reserved"])
		s.Equal(int64(4), body["available"])
	})

	s.Run("store failure maps to 500", func() {
		s.mockStock.EXPECT().Current(gomock.Any()).Return(nil, errors.New("connection lost"))

		rec := s.get("/api/stock")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *APIHandlerTestSuite) TestGetOrder() {
	orderID := uuid.New()

	s.Run("returns the order view", func() {
		s.mockOrders.EXPECT().GetByID(gomock.Any(), orderID).Return(&queries.OrderView{
			ID:              orderID,
			BuyerID:         "200000000000000001",
			BuyerName:       "buyer",
			Quantity:        3,
			TotalPriceCents: 150,
			CardType:        "amazon",
			Status:          "pending",
			CreatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}, nil)

		rec := s.get("/api/orders/" + orderID.String())
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(orderID.String(), body["id"])
		s.Equal("pending", body["status"])
		s.Equal(float64(150), body["totalPriceCents"])
	})

	s.Run("unknown order maps to 404", func() {
		s.mockOrders.EXPECT().GetByID(gomock.Any(), orderID).
			Return(nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound))

		rec := s.get("/api/orders/" + orderID.String())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed id maps to 400", func() {
		rec := s.get("/api/orders/not-a-uuid")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
