package api

import (
	"net/http"

	resdto "account-shop/internal/handler/dto/response"
	"account-shop/internal/handler/httperr"
	"account-shop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockQueries queries.StockQueries
}

func NewStockHandler(stockQueries queries.StockQueries) *StockHandler {
	return &StockHandler{
		stockQueries: stockQueries,
	}
}

func (h *StockHandler) GetStock(c *gin.Context) {
	view, err := h.stockQueries.Current(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load stock", nil)
		return
	}

	resp, err := resdto.FromStockView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
