package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/pkg/httpx"
)

// orderDTO — заказ в ответе API; сумма строкой с двумя знаками.
type orderDTO struct {
	ID         int64     `json:"id"`
	Total      string    `json:"total"`
	ItemsCount int       `json:"items_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toOrderDTO(o *domain.Order) orderDTO {
	return orderDTO{
		ID:         o.ID,
		Total:      o.Total.StringFixed(2),
		ItemsCount: o.ItemsCount,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// getOrderByID — GET /orders/:id.
func (h *Handler) getOrderByID(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.GetOrder(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTO(order))
}

// listOrders — GET /orders?limit=&offset=, новые первыми.
func (h *Handler) listOrders(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, defaultListLimit, maxListLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	c.JSON(http.StatusOK, out)
}
