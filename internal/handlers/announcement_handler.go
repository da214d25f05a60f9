package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"gorm.io/gorm"
)

// AnnouncementHandler handles announcement reads and admin CRUD
type AnnouncementHandler struct {
	announcementRepository repositories.AnnouncementRepository
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementRepo repositories.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{announcementRepository: announcementRepo}
}

// RegisterAnnouncementRoutes registers promoter-facing announcement routes
func (h *AnnouncementHandler) RegisterAnnouncementRoutes(g *echo.Group) {
	g.GET("/announcements", h.GetActiveAnnouncements)
}

// RegisterAdminAnnouncementRoutes registers admin announcement routes
func (h *AnnouncementHandler) RegisterAdminAnnouncementRoutes(g *echo.Group) {
	g.GET("/announcements", h.GetAllAnnouncements)
	g.POST("/announcements", h.CreateAnnouncement)
	g.PUT("/announcements/:id", h.UpdateAnnouncement)
	g.DELETE("/announcements/:id", h.DeactivateAnnouncement)
}

// GetActiveAnnouncements lists active announcements, urgent first and
// newest first within a priority
func (h *AnnouncementHandler) GetActiveAnnouncements(c echo.Context) error {
	announcements, err := h.announcementRepository.GetActive()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sort.SliceStable(announcements, func(i, j int) bool {
		wi, wj := announcements[i].PriorityWeight(), announcements[j].PriorityWeight()
		if wi != wj {
			return wi > wj
		}
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"announcements": announcements,
	})
}

// GetAllAnnouncements lists every announcement, active or not
func (h *AnnouncementHandler) GetAllAnnouncements(c echo.Context) error {
	announcements, err := h.announcementRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"announcements": announcements,
	})
}

// CreateAnnouncement publishes a new announcement
func (h *AnnouncementHandler) CreateAnnouncement(c echo.Context) error {
	var req models.CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	announcement := &models.Announcement{
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
		Active:   true,
	}
	if err := h.announcementRepository.Create(announcement); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":      true,
		"announcement": announcement,
	})
}

// UpdateAnnouncement edits title, message, priority or the active flag
func (h *AnnouncementHandler) UpdateAnnouncement(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid announcement ID")
	}

	var req models.UpdateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	announcement, err := h.announcementRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Announcement not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Title != "" {
		announcement.Title = req.Title
	}
	if req.Message != "" {
		announcement.Message = req.Message
	}
	if req.Priority != "" {
		announcement.Priority = req.Priority
	}
	if req.Active != nil {
		announcement.Active = *req.Active
	}

	if err := h.announcementRepository.Update(announcement); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"announcement": announcement,
	})
}

// DeactivateAnnouncement hides an announcement without destroying history
func (h *AnnouncementHandler) DeactivateAnnouncement(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid announcement ID")
	}

	if err := h.announcementRepository.Deactivate(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Announcement not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Announcement deactivated",
	})
}
