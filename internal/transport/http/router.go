package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/order_rules/internal/ports"
	"github.com/Gunvolt24/order_rules/pkg/httpx"
)

// Пагинация списка заказов.
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handler — HTTP-слой поверх прикладных сервисов.
type Handler struct {
	rules   ports.RuleCheckService
	orders  ports.OrderReadService
	log     ports.Logger
	timeout time.Duration // таймаут на обработку одного запроса; 0 — без таймаута
}

func NewHandler(rules ports.RuleCheckService, orders ports.OrderReadService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{rules: rules, orders: orders, log: log, timeout: timeout}
}

// NewRouter — gin.Engine со всеми маршрутами и middleware.
// otelServiceName пустой — без трассировки HTTP.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// маршруты доступны и со слешем на конце, и без него
	for _, p := range []string{"/rules", "/rules/"} {
		r.GET(p, h.listRules)
	}
	for _, p := range []string{"/rules/check", "/rules/check/"} {
		r.POST(p, h.checkRules)
	}

	r.GET("/orders", h.listOrders)
	r.GET("/orders/:id", h.getOrderByID)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

// requestContext — контекст запроса с таймаутом обработчика.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
