package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/promo"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"github.com/pastryvapors/promohub/backend/internal/ws"
)

// SubmissionHandler handles promoter-facing submission requests
type SubmissionHandler struct {
	submissionRepository   repositories.SubmissionRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	hub                    *ws.Hub
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(
	submissionRepo repositories.SubmissionRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	hub *ws.Hub,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionRepository:   submissionRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
		hub:                    hub,
	}
}

// RegisterSubmissionRoutes registers promoter submission routes
func (h *SubmissionHandler) RegisterSubmissionRoutes(g *echo.Group) {
	g.POST("/submissions", h.CreateSubmission)
	g.GET("/submissions", h.GetMySubmissions)
	g.GET("/submissions/schedule", h.GetSchedule)
}

// CreateSubmission accepts task proof from a promoter. Validation happens
// before any write; on the success path the submission and its review-queue
// notification are created as a pair.
func (h *SubmissionHandler) CreateSubmission(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	now := time.Now()
	if user.SuspensionExpired(now) {
		// Lazy expiry: stale flags are cleared on the next read
		if err := h.userRepository.ClearSuspension(user.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		user.Suspended = false
		user.SuspendedUntil = nil
	}
	if user.SuspensionActive(now) {
		return echo.NewHTTPError(http.StatusForbidden,
			"Account suspended until "+user.SuspendedUntil.Format(time.RFC1123))
	}
	if !user.ProfileComplete() {
		return echo.NewHTTPError(http.StatusForbidden, "Please complete your profile before submitting posts")
	}

	var req models.CreateSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	taskType := promo.TaskType(req.TaskType)
	platform := promo.Platform(req.Platform)
	if err := promo.ValidateIntake(taskType, platform, req.PostURL, req.Screenshots); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub := &models.Submission{
		UserID:    user.ID,
		UserName:  user.DisplayName(),
		UserEmail: user.Email,
		Platform:  req.Platform,
		TaskType:  req.TaskType,
	}
	// Only the proof relevant to the task type is stored
	if taskType.RequiresURL() {
		sub.PostURL = req.PostURL
	} else {
		sub.Screenshots = req.Screenshots
	}

	if err := h.submissionRepository.Create(c.Request().Context(), sub); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notification := &models.Notification{
		Type:         models.NotificationTypeNewSubmission,
		UserID:       user.ID,
		SubmissionID: sub.ID.Hex(),
		UserName:     sub.UserName,
		UserEmail:    sub.UserEmail,
		Platform:     sub.Platform,
		TaskType:     sub.TaskType,
		PostURL:      sub.PostURL,
	}
	if err := h.notificationRepository.Create(notification); err != nil {
		// Keep the pair atomic: drop the submission instead of leaving it
		// in the queue without a notification
		if delErr := h.submissionRepository.Delete(c.Request().Context(), sub.ID.Hex()); delErr != nil {
			c.Logger().Errorf("failed to roll back submission %s: %v", sub.ID.Hex(), delErr)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit post")
	}

	h.hub.BroadcastJSON(echo.Map{
		"type":       models.NotificationTypeNewSubmission,
		"submission": sub,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"submission":       sub,
		"suggested_points": promo.SuggestedPoints(taskType, len(sub.Screenshots)),
	})
}

// GetMySubmissions returns the promoter's history, newest first, with stats
func (h *SubmissionHandler) GetMySubmissions(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	subs, err := h.submissionRepository.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var totalPoints, approved, pending int
	submittedAt := make([]time.Time, 0, len(subs))
	for _, s := range subs {
		submittedAt = append(submittedAt, s.CreatedAt)
		switch s.Status {
		case models.StatusApproved:
			approved++
			totalPoints += s.Points
		case models.StatusPending:
			pending++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"submissions": subs,
			"stats": echo.Map{
				"total_points":   totalPoints,
				"approved_posts": approved,
				"pending_posts":  pending,
				"streak":         promo.Streak(submittedAt, time.Now()),
			},
		},
	})
}

// GetSchedule returns the promoter's posting-day reminder
func (h *SubmissionHandler) GetSchedule(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	now := time.Now()
	days := promo.PostingDays(user.Rank)
	dayNames := make([]string, 0, len(days))
	for _, d := range days {
		dayNames = append(dayNames, d.String())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"rank":             user.Rank,
			"posting_days":     dayNames,
			"is_posting_day":   promo.IsPostingDay(user.Rank, now),
			"next_posting_day": promo.NextPostingDay(user.Rank, now).Format("2006-01-02"),
		},
	})
}
