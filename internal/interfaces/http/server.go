// Package http exposes the local admin surface: health, job submission
// and job history. It binds to loopback by default and carries no
// authentication of its own.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/application/reconcile"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/tracking"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/scheduler"
)

// Response is the standard API envelope.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func success(data any) Response {
	return Response{Success: true, Data: data}
}

func failure(code, message string) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

// Server is the admin HTTP server.
type Server struct {
	runner     *scheduler.Runner
	reconciler *reconcile.Service
	ledger     tracking.Ledger
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer builds the admin server on the given listen address.
func NewServer(addr string, runner *scheduler.Runner, reconciler *reconcile.Service, ledger tracking.Ledger, logger *zap.Logger) *Server {
	s := &Server{
		runner:     runner,
		reconciler: reconciler,
		ledger:     ledger,
		logger:     logger.Named("admin"),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.healthz)
	admin := router.Group("/admin")
	{
		admin.POST("/reconcile", s.submitReconcile)
		admin.GET("/jobs", s.listJobs)
		admin.POST("/reprocess", s.reprocess)
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Admin server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, success(gin.H{
		"status":     "ok",
		"ledger_len": s.ledger.Size(),
	}))
}

// submitReconcile queues an async reconciliation job.
func (s *Server) submitReconcile(c *gin.Context) {
	job := scheduler.NewJob("admin")
	if err := s.runner.Submit(job); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrQueueFull):
			c.JSON(http.StatusTooManyRequests, failure("QUEUE_FULL", "job queue is full"))
		case errors.Is(err, scheduler.ErrNotRunning):
			c.JSON(http.StatusServiceUnavailable, failure("NOT_RUNNING", "runner is not running"))
		default:
			c.JSON(http.StatusInternalServerError, failure("SUBMIT_FAILED", err.Error()))
		}
		return
	}
	c.JSON(http.StatusAccepted, success(gin.H{"job_id": job.ID.String()}))
}

// jobView is the wire shape of a job history entry.
type jobView struct {
	ID          string     `json:"id"`
	Trigger     string     `json:"trigger"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Records     int        `json:"records"`
	Skipped     int        `json:"skipped"`
	NewIDs      int        `json:"new_ids"`
	Actions     []string   `json:"actions,omitempty"`
	LedgerLen   int        `json:"ledger_len"`
}

func (s *Server) listJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	jobs := s.runner.History(limit)
	views := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, jobView{
			ID:          j.ID.String(),
			Trigger:     j.Trigger,
			Status:      string(j.Status),
			Error:       j.Error,
			SubmittedAt: j.SubmittedAt,
			StartedAt:   j.StartedAt,
			CompletedAt: j.CompletedAt,
			Records:     j.Records,
			Skipped:     j.Skipped,
			NewIDs:      j.NewIDs,
			Actions:     j.Actions,
			LedgerLen:   j.LedgerLen,
		})
	}
	c.JSON(http.StatusOK, success(views))
}

// reprocessRequest identifies one feed record to re-run outside the
// ledger filter.
type reprocessRequest struct {
	TrackingID string `json:"trackingId" binding:"required"`
	OrderName  string `json:"orderName" binding:"required"`
	Status     string `json:"status"`
}

// reprocess runs one record synchronously, bypassing the ledger.
func (s *Server) reprocess(c *gin.Context) {
	var req reprocessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("INVALID_REQUEST", err.Error()))
		return
	}

	actions := s.reconciler.ReconcileOne(c.Request.Context(), tracking.Record{
		TrackingID: req.TrackingID,
		OrderName:  req.OrderName,
		Status:     req.Status,
	})
	c.JSON(http.StatusOK, success(gin.H{"actions": actions}))
}
