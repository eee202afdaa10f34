package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/models"
	"storefront/internal/upstream"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	msgProductsFailed = "Error retrieving products"
	msgOrderFailed    = "Error sending order"
	msgInvalidOrder   = "Invalid order payload"
)

// Forwarder sends a request to one upstream service
type Forwarder interface {
	Do(ctx context.Context, method string, body []byte, header http.Header) (*upstream.Response, error)
	URL() string
}

// OrderEventPublisher records what happened to forwarded orders
type OrderEventPublisher interface {
	PublishOrderForwarded(ctx context.Context, event *models.OrderForwardedEvent) error
	PublishOrderForwardFailed(ctx context.Context, event *models.OrderForwardFailedEvent) error
}

// Handler contains HTTP handlers
type Handler struct {
	products  Forwarder
	orders    Forwarder
	events    OrderEventPublisher
	staticDir string
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler. events may be nil.
func NewHandler(products, orders Forwarder, events OrderEventPublisher, staticDir string) *Handler {
	return &Handler{
		products:  products,
		orders:    orders,
		events:    events,
		staticDir: staticDir,
		logger:    util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(corsMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.POST("/orders", h.createOrder)
	}

	if h.staticDir != "" {
		files := http.FileServer(http.Dir(h.staticDir))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"products": h.products.URL(),
		"orders":   h.orders.URL(),
		"time":     time.Now().Unix(),
	})
}

// listProducts proxies GET /api/products to the product service
func (h *Handler) listProducts(c *gin.Context) {
	resp, err := h.products.Do(c.Request.Context(), http.MethodGet, nil, http.Header{"Accept": {"application/json"}})
	if err != nil {
		h.logger.Error("Error proxying /api/products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgProductsFailed})
		return
	}

	if !json.Valid(resp.Body) {
		h.logger.Error("Error proxying /api/products: upstream body is not JSON",
			zap.Int("upstream_status", resp.StatusCode))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgProductsFailed})
		return
	}

	c.Data(resp.StatusCode, "application/json; charset=utf-8", resp.Body)
}

// createOrder proxies POST /api/orders to the order service
func (h *Handler) createOrder(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidOrder})
		return
	}

	var summary orderSummary
	_ = json.Unmarshal(body, &summary)

	header := http.Header{"Content-Type": {"application/json"}}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		header.Set("Idempotency-Key", key)
	}

	resp, err := h.orders.Do(c.Request.Context(), http.MethodPost, body, header)
	if err != nil {
		util.OrdersForwardedTotal.WithLabelValues("unreachable").Inc()
		h.logger.Error("Error proxying /api/orders", zap.Error(err))
		h.publishFailed(c.Request.Context(), summary, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgOrderFailed})
		return
	}

	outcome := "accepted"
	if !resp.OK() {
		outcome = "rejected"
	}
	util.OrdersForwardedTotal.WithLabelValues(outcome).Inc()
	h.publishForwarded(c.Request.Context(), summary, resp.StatusCode)

	if json.Valid(resp.Body) {
		c.Data(resp.StatusCode, "application/json; charset=utf-8", resp.Body)
		return
	}
	c.Data(resp.StatusCode, "text/plain; charset=utf-8", resp.Body)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

// corsMiddleware allows the storefront page to be served from any origin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
