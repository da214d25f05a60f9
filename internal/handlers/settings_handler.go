package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
)

// SettingsHandler manages the signup gate
type SettingsHandler struct {
	settingsRepository repositories.SettingsRepository
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsRepo repositories.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepository: settingsRepo}
}

// RegisterPublicSettingsRoutes registers the unauthenticated signup-gate read
func (h *SettingsHandler) RegisterPublicSettingsRoutes(g *echo.Group) {
	g.GET("/settings/signup", h.GetSignupSetting)
}

// RegisterAdminSettingsRoutes registers the admin view and toggle
func (h *SettingsHandler) RegisterAdminSettingsRoutes(g *echo.Group) {
	g.GET("/settings/signup", h.GetSignupSetting)
	g.PUT("/settings/signup", h.UpdateSignupSetting)
}

// GetSignupSetting reports whether new signups are accepted. Public so the
// signup page can hide itself.
func (h *SettingsHandler) GetSignupSetting(c echo.Context) error {
	enabled, err := h.settingsRepository.SignupEnabled()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"enabled": enabled,
	})
}

// UpdateSignupSetting toggles the signup gate
func (h *SettingsHandler) UpdateSignupSetting(c echo.Context) error {
	var req models.UpdateSignupSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.settingsRepository.SetSignupEnabled(*req.Enabled); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"enabled": *req.Enabled,
	})
}
