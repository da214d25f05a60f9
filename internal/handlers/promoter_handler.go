package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/promo"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"github.com/pastryvapors/promohub/backend/pkg/firebase"
)

// PromoterHandler handles admin promoter management
type PromoterHandler struct {
	userRepository       repositories.UserRepository
	submissionRepository repositories.SubmissionRepository
	firebaseApp          *firebase.App
}

// NewPromoterHandler creates a new PromoterHandler. firebaseApp may be nil
// when Firebase is not configured; kicks then skip the auth delete.
func NewPromoterHandler(
	userRepo repositories.UserRepository,
	submissionRepo repositories.SubmissionRepository,
	firebaseApp *firebase.App,
) *PromoterHandler {
	return &PromoterHandler{
		userRepository:       userRepo,
		submissionRepository: submissionRepo,
		firebaseApp:          firebaseApp,
	}
}

// RegisterPromoterRoutes registers admin promoter-management routes
func (h *PromoterHandler) RegisterPromoterRoutes(g *echo.Group) {
	g.GET("/promoters", h.GetPromoters)
	g.GET("/promoters/inactive-royals", h.GetInactiveRoyals)
	g.POST("/promoters/:id/warn", h.WarnPromoter)
	g.POST("/promoters/bulk-warn", h.BulkWarn)
	g.POST("/promoters/:id/suspend", h.SuspendPromoter)
	g.POST("/promoters/:id/unsuspend", h.UnsuspendPromoter)
	g.DELETE("/promoters/:id", h.KickPromoter)
}

type promoterSummary struct {
	models.User
	TotalPosts int64 `json:"total_posts"`
}

// GetPromoters lists all promoters with their submission counts. Expired
// suspensions encountered here are cleared before the list is returned.
func (h *PromoterHandler) GetPromoters(c echo.Context) error {
	promoters, err := h.userRepository.GetPromoters()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	now := time.Now()
	out := make([]promoterSummary, 0, len(promoters))
	for i := range promoters {
		p := promoters[i]
		if p.SuspensionExpired(now) {
			if err := h.userRepository.ClearSuspension(p.ID); err != nil {
				c.Logger().Errorf("failed to clear expired suspension for user %d: %v", p.ID, err)
			} else {
				p.Suspended = false
				p.SuspendedUntil = nil
			}
		}
		count, err := h.submissionRepository.CountByUserID(ctx, p.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		out = append(out, promoterSummary{User: p, TotalPosts: count})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"promoters": out,
	})
}

// GetInactiveRoyals lists Queens and Kings without a submission in the
// current local midnight-to-midnight window
func (h *PromoterHandler) GetInactiveRoyals(c echo.Context) error {
	royals, err := h.userRepository.GetPromotersByRanks([]string{models.RankQueen, models.RankKing})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	start, end := promo.DayWindow(time.Now())
	active, err := h.submissionRepository.UserIDsBetween(c.Request().Context(), start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	inactive := make([]models.User, 0)
	for _, r := range royals {
		if !active[r.ID] {
			inactive = append(inactive, r)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"promoters": inactive,
	})
}

// WarnPromoter increments the warning count and records the message
func (h *PromoterHandler) WarnPromoter(c echo.Context) error {
	userID, err := h.promoterParam(c)
	if err != nil {
		return err
	}

	var req models.WarnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.AddWarning(userID, req.Message, time.Now()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Warning recorded",
	})
}

// BulkWarn applies one warning message to several promoters. Failures are
// reported per id; any success still counts.
func (h *PromoterHandler) BulkWarn(c echo.Context) error {
	var req models.BulkWarnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := time.Now()
	warned := make([]uint, 0, len(req.UserIDs))
	failed := make([]uint, 0)
	for _, id := range req.UserIDs {
		user, err := h.userRepository.GetUserByID(id)
		if err != nil || user.IsAdmin {
			failed = append(failed, id)
			continue
		}
		if err := h.userRepository.AddWarning(id, req.Message, now); err != nil {
			failed = append(failed, id)
			continue
		}
		warned = append(warned, id)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": len(failed) == 0,
		"warned":  warned,
		"failed":  failed,
	})
}

// SuspendPromoter blocks submissions for the given number of days
func (h *PromoterHandler) SuspendPromoter(c echo.Context) error {
	userID, err := h.promoterParam(c)
	if err != nil {
		return err
	}

	var req models.SuspendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	until := time.Now().AddDate(0, 0, req.Days)
	if err := h.userRepository.Suspend(userID, until); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"message":         "Promoter suspended",
		"suspended_until": until,
	})
}

// UnsuspendPromoter lifts a suspension early
func (h *PromoterHandler) UnsuspendPromoter(c echo.Context) error {
	userID, err := h.promoterParam(c)
	if err != nil {
		return err
	}

	if err := h.userRepository.ClearSuspension(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Suspension lifted",
	})
}

// KickPromoter permanently removes a promoter and everything they own.
// Mongo submissions go first, then the Postgres rows in one transaction,
// then the Firebase auth record on a best-effort basis.
func (h *PromoterHandler) KickPromoter(c echo.Context) error {
	userID, err := h.promoterParam(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Promoter not found")
	}

	ctx := c.Request().Context()
	if _, err := h.submissionRepository.DeleteByUserID(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete submissions")
	}

	if err := h.userRepository.KickUser(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.firebaseApp != nil && user.FirebaseUID != "" {
		if err := h.firebaseApp.DeleteAuthUser(ctx, user.FirebaseUID); err != nil {
			c.Logger().Errorf("failed to delete firebase auth user %s: %v", user.FirebaseUID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Promoter removed",
	})
}

// promoterParam parses the :id param and rejects admin targets.
// Moderation never applies to admin accounts.
func (h *PromoterHandler) promoterParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid promoter ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Promoter not found")
	}
	if user.IsAdmin {
		return 0, echo.NewHTTPError(http.StatusForbidden, "Cannot moderate an admin account")
	}
	return user.ID, nil
}
