package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
	"go.uber.org/zap"
)

const (
	ServiceVersion      = "1.0.0"
	ServiceName         = "lotsize"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// Sizer is the engine surface the API needs.
type Sizer interface {
	Calculate(in risk.Inputs) (risk.Result, error)
	PipValue(p market.Pair, account market.Currency, lots float64) (float64, error)
	Convert(amount float64, from, to market.Currency) (float64, error)
}

// RateReader exposes the current rate snapshot.
type RateReader interface {
	Snapshot() *market.RateTable
}

// Handler serves the sizing engine over HTTP.
type Handler struct {
	sizer      Sizer
	rates      RateReader
	journal    journal.Journal
	staleAfter time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

type Options struct {
	Journal    journal.Journal // nil disables history
	StaleAfter time.Duration
	Now        func() time.Time
}

func NewHandler(sizer Sizer, rates RateReader, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		sizer:      sizer,
		rates:      rates,
		journal:    opts.Journal,
		staleAfter: opts.StaleAfter,
		now:        opts.Now,
		logger:     logger,
	}
}

// Routes configures all API routes
func (h *Handler) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(zapLoggerMiddleware(h.logger))
	router.Use(gin.Recovery())

	v1 := router.Group("/v1")
	v1.POST("/calculate", h.Calculate)
	v1.GET("/rates", h.Rates)
	v1.GET("/pip-value", h.PipValue)
	v1.GET("/convert", h.Convert)

	router.GET("/health", h.HealthCheck)
	return router
}

// Server wraps the routes in an http.Server with sane timeouts.
func (h *Handler) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}
