package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

type DashboardServer struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Service   interfaces.IDashboardService
	engine    *gin.Engine
	startedAt time.Time
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *models.MConfig, svc interfaces.IDashboardService, log *logger.Logger) *DashboardServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:    cfg,
		Logger:    log,
		Service:   svc,
		engine:    gin.Default(),
		startedAt: time.Now(),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	// Single-page dashboard
	s.engine.GET("/", s.getIndex)

	// REST API endpoints
	s.engine.GET("/api/dashboard", s.getDashboard)
	s.engine.GET("/api/export", s.getExport)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/health", s.getHealth)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *DashboardServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)
	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

// Engine exposes the router for tests.
func (s *DashboardServer) Engine() *gin.Engine {
	return s.engine
}

// -----------------------------------------------------------------------------
// Query Parsing
// -----------------------------------------------------------------------------

func (s *DashboardServer) parseQuery(c *gin.Context) (models.MQuery, error) {
	q := models.MQuery{
		Symbol:     c.Query("symbol"),
		Interval:   c.Query("interval"),
		PriceField: c.Query("price"),
	}

	var err error
	if v := c.Query("start"); v != "" {
		if q.Start, err = time.Parse("2006-01-02", v); err != nil {
			return q, helpers.NewValidationError("invalid start date %q (want YYYY-MM-DD)", v)
		}
	}
	if v := c.Query("end"); v != "" {
		if q.End, err = time.Parse("2006-01-02", v); err != nil {
			return q, helpers.NewValidationError("invalid end date %q (want YYYY-MM-DD)", v)
		}
		// Make the end date inclusive
		q.End = q.End.Add(24*time.Hour - time.Second)
	}
	if v := c.Query("ma_short"); v != "" {
		if q.MAShort, err = strconv.Atoi(v); err != nil {
			return q, helpers.NewValidationError("invalid ma_short %q", v)
		}
	}
	if v := c.Query("ma_long"); v != "" {
		if q.MALong, err = strconv.Atoi(v); err != nil {
			return q, helpers.NewValidationError("invalid ma_long %q", v)
		}
	}

	return q, nil
}

// -----------------------------------------------------------------------------
// Error Mapping
// -----------------------------------------------------------------------------

func (s *DashboardServer) respondError(c *gin.Context, err error) {
	var validationErr *helpers.ValidationError
	var networkErr *helpers.NetworkError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, helpers.ErrUnknownSymbol):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, helpers.ErrNoData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &networkErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "market data provider unavailable"})
		s.Logger.Error("Provider failure: %v", err)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		s.Logger.Error("Unhandled error: %v", err)
	}
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getDashboard(c *gin.Context) {
	q, err := s.parseQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	dashboard, err := s.Service.BuildDashboard(c.Request.Context(), q)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getExport(c *gin.Context) {
	q, err := s.parseQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(q.Symbol))
	if symbol == "" {
		symbol = s.Config.Dashboard.DefaultSymbol
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_data.csv", symbol))

	if err := s.Service.ExportCSV(c.Request.Context(), q, c.Writer); err != nil {
		// Headers may already be out; log and reset if still possible
		if !c.Writer.Written() {
			c.Header("Content-Type", "application/json")
			c.Header("Content-Disposition", "")
			s.respondError(c, err)
			return
		}
		s.Logger.Error("CSV export aborted: %v", err)
	}
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	d := s.Config.Dashboard
	c.JSON(http.StatusOK, gin.H{
		"default_symbol":   d.DefaultSymbol,
		"default_interval": d.DefaultInterval,
		"intervals":        []string{models.IntervalDaily, models.IntervalWeekly, models.IntervalMonthly},
		"price_fields":     []string{models.PriceFieldAdjClose, models.PriceFieldClose, models.PriceFieldOpen},
		"ma_short":         gin.H{"default": d.MAShortDefault, "min": d.MAShortMin, "max": d.MAShortMax},
		"ma_long":          gin.H{"default": d.MALongDefault, "min": d.MALongMin, "max": d.MALongMax},
		"histogram_bins":   d.HistogramBins,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	})
}
