// Package server exposes the tracker over HTTP as a JSON API.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mholloway/cadence/internal/catalog"
	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/export"
	"github.com/mholloway/cadence/internal/ledger"
	"github.com/mholloway/cadence/internal/logger"
	"github.com/mholloway/cadence/internal/metrics"
	"github.com/mholloway/cadence/internal/reading"
	"github.com/mholloway/cadence/internal/review"
	"github.com/mholloway/cadence/internal/storage"
)

type Server struct {
	store   storage.Provider
	catalog *catalog.Service
	ledger  *ledger.Service
	metrics *metrics.Service
	reading *reading.Service
	review  *review.Service
	export  *export.Service

	engine *gin.Engine
}

func New(store storage.Provider) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		store:   store,
		catalog: catalog.New(store),
		ledger:  ledger.New(store),
		metrics: metrics.New(store),
		reading: reading.New(store),
		review:  review.New(store),
		export:  export.New(store),
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLog())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/dashboard", s.handleDashboard)

	day := api.Group("/day/:date")
	day.GET("", s.handleDay)
	day.POST("/tasks/:taskID/start", s.handleStart)
	day.POST("/tasks/:taskID/complete", s.handleComplete)
	day.POST("/tasks/:taskID/skip", s.handleSkip)
	day.POST("/tasks/:taskID/postpone", s.handlePostpone)
	day.PATCH("/tasks/:taskID", s.handleUpdateCompletion)
	day.POST("/bulk", s.handleBulkUpdate)
	day.GET("/log", s.handleGetLog)
	day.PATCH("/log", s.handlePatchLog)

	api.GET("/categories", s.handleListCategories)
	api.POST("/categories", s.handleCreateCategory)

	tasks := api.Group("/tasks")
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTask)
	tasks.GET("/:id", s.handleGetTask)
	tasks.PUT("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)
	tasks.POST("/:id/restore", s.handleRestoreTask)

	books := api.Group("/books")
	books.GET("", s.handleListBooks)
	books.POST("", s.handleCreateBook)
	books.GET("/:id", s.handleGetBook)
	books.PUT("/:id", s.handleUpdateBook)
	books.POST("/:id/progress", s.handleBookProgress)
	books.POST("/:id/start", s.handleStartBook)
	books.POST("/:id/complete", s.handleCompleteBook)
	books.POST("/:id/sessions", s.handleLogSession)
	books.GET("/:id/pace", s.handleBookPace)
	books.GET("/:id/streak", s.handleBookStreak)
	api.POST("/reading/quick", s.handleQuickLog)
	api.GET("/reading/streak", s.handleReadingStreak)

	api.GET("/analytics/daily/:date", s.handleDailyAnalytics)
	api.GET("/analytics/range", s.handleRangeAnalytics)

	reviews := api.Group("/reviews")
	reviews.GET("", s.handleListReviews)
	reviews.POST("/generate", s.handleGenerateReview)
	reviews.GET("/:year/:week", s.handleGetReview)
	reviews.PUT("/:year/:week/notes", s.handleReviewNotes)

	api.GET("/export", s.handleExport)
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (s *Server) respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := envelope{Success: false, Error: err.Error()}

	var ve *errors.ValidationError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsConflict(err):
		status = http.StatusConflict
	case stderrors.As(err, &ve):
		status = http.StatusUnprocessableEntity
		body.Fields = ve.Fields
	default:
		logger.Error("request failed", "err", err)
	}

	c.AbortWithStatusJSON(status, body)
}

func (s *Server) decode(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.fail(c, errors.Validation("body", "invalid JSON: "+err.Error()))
		return false
	}
	return true
}
