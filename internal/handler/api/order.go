package api

import (
	"net/http"

	resdto "account-shop/internal/handler/dto/response"
	"account-shop/internal/handler/httperr"
	"account-shop/internal/infra"
	"account-shop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderQueries queries.OrderQueries
}

func NewOrderHandler(orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderQueries: orderQueries,
	}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}
