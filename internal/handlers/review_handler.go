package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/promo"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"github.com/pastryvapors/promohub/backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Admin dashboard is served from a separate origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ReviewHandler handles the admin review queue
type ReviewHandler struct {
	submissionRepository repositories.SubmissionRepository
	userRepository       repositories.UserRepository
	hub                  *ws.Hub
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	submissionRepo repositories.SubmissionRepository,
	userRepo repositories.UserRepository,
	hub *ws.Hub,
) *ReviewHandler {
	return &ReviewHandler{
		submissionRepository: submissionRepo,
		userRepository:       userRepo,
		hub:                  hub,
	}
}

// RegisterReviewRoutes registers admin review routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group) {
	g.GET("/submissions", h.GetSubmissions)
	g.GET("/submissions/:id", h.GetSubmission)
	g.POST("/submissions/:id/approve", h.ApproveSubmission)
	g.POST("/submissions/:id/reject", h.RejectSubmission)
	g.GET("/ws", h.ServeWS)
}

// GetSubmissions lists the review queue, optionally filtered by status
func (h *ReviewHandler) GetSubmissions(c echo.Context) error {
	status := c.QueryParam("status")

	var (
		subs []models.Submission
		err  error
	)
	if status == "" {
		subs, err = h.submissionRepository.GetAll(c.Request().Context())
	} else {
		if status != models.StatusPending && status != models.StatusApproved && status != models.StatusRejected {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown status filter")
		}
		subs, err = h.submissionRepository.GetByStatus(c.Request().Context(), status)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"submissions": subs,
	})
}

// GetSubmission returns one submission with its review policy bounds
func (h *ReviewHandler) GetSubmission(c echo.Context) error {
	sub, err := h.submissionRepository.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	taskType := promo.TaskType(sub.TaskType)
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"submission":       sub,
		"suggested_points": promo.SuggestedPoints(taskType, len(sub.Screenshots)),
		"max_points":       promo.MaxPoints(taskType, len(sub.Screenshots)),
	})
}

// ApproveSubmission marks a pending submission approved and credits the
// promoter. The status flip is guarded so a submission credits at most once;
// if the credit fails the submission is reverted to pending.
func (h *ReviewHandler) ApproveSubmission(c echo.Context) error {
	id := c.Param("id")

	var req models.ApproveSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	sub, err := h.submissionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	taskType := promo.TaskType(sub.TaskType)
	var points int
	if req.Points != nil {
		points = *req.Points
	} else {
		points = promo.SuggestedPoints(taskType, len(sub.Screenshots))
	}
	if err := promo.ValidateAward(taskType, len(sub.Screenshots), points); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := time.Now()
	if err := h.submissionRepository.MarkReviewed(ctx, id, models.StatusApproved, points, now); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyReviewed):
			return echo.NewHTTPError(http.StatusConflict, "Submission has already been reviewed")
		case errors.Is(err, repositories.ErrSubmissionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err := h.userRepository.CreditApproval(sub.UserID, points); err != nil {
		// The approval only counts once the points land, so undo it
		if revErr := h.submissionRepository.Revert(ctx, id); revErr != nil {
			c.Logger().Errorf("failed to revert submission %s after credit failure: %v", id, revErr)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to credit points")
	}

	h.hub.BroadcastJSON(echo.Map{
		"type":          "submission_reviewed",
		"submission_id": id,
		"status":        models.StatusApproved,
		"points":        points,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Submission approved",
		"points":  points,
	})
}

// RejectSubmission marks a pending submission rejected. No points move.
func (h *ReviewHandler) RejectSubmission(c echo.Context) error {
	id := c.Param("id")

	err := h.submissionRepository.MarkReviewed(c.Request().Context(), id, models.StatusRejected, 0, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyReviewed):
			return echo.NewHTTPError(http.StatusConflict, "Submission has already been reviewed")
		case errors.Is(err, repositories.ErrSubmissionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	h.hub.BroadcastJSON(echo.Map{
		"type":          "submission_reviewed",
		"submission_id": id,
		"status":        models.StatusRejected,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Submission rejected",
	})
}

// ServeWS upgrades the connection and attaches it to the review-queue hub
func (h *ReviewHandler) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	h.hub.Serve(conn)
	return nil
}
