package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/promo"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"github.com/pastryvapors/promohub/backend/pkg/cloudinary"
)

// ProfileHandler handles the promoter's own profile
type ProfileHandler struct {
	userRepository repositories.UserRepository
	images         *cloudinary.Client
}

// NewProfileHandler creates a new ProfileHandler. images may be nil when
// Cloudinary is not configured; picture uploads then return 503.
func NewProfileHandler(userRepo repositories.UserRepository, images *cloudinary.Client) *ProfileHandler {
	return &ProfileHandler{
		userRepository: userRepo,
		images:         images,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/picture", h.UploadProfilePicture)
}

// GetProfile returns the caller's profile with the completeness flag.
// Expired suspensions are cleared on read.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if user.SuspensionExpired(time.Now()) {
		if err := h.userRepository.ClearSuspension(user.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		user.Suspended = false
		user.SuspendedUntil = nil
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"user":             user,
		"profile_complete": user.ProfileComplete(),
	})
}

// UpdateProfile edits the promoter-editable profile fields. Birthdate and
// contact number re-run the signup checks.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Birthdate != "" {
		if err := promo.CheckAge(req.Birthdate, time.Now()); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		user.Birthdate = req.Birthdate
	}
	if req.ContactNumber != "" {
		if !promo.ValidContactNumber(req.ContactNumber) {
			return echo.NewHTTPError(http.StatusBadRequest, "Contact number must match +63 XXX XXX XXXX")
		}
		user.ContactNumber = req.ContactNumber
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.PrimaryFbLink != "" {
		user.PrimaryFbLink = req.PrimaryFbLink
	}
	if req.PromoterFbLink != "" {
		user.PromoterFbLink = req.PromoterFbLink
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"user":             user,
		"profile_complete": user.ProfileComplete(),
	})
}

// UploadProfilePicture accepts a multipart image, pushes it to the CDN and
// stores the returned URL on the profile
func (h *ProfileHandler) UploadProfilePicture(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if h.images == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Image uploads are not configured")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	if file.Size > cloudinary.MaxImageSize {
		return echo.NewHTTPError(http.StatusBadRequest, "Image must be 5MB or smaller")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if !cloudinary.AllowedFormat(ext) {
		return echo.NewHTTPError(http.StatusBadRequest, "Only jpg, jpeg, png, gif and webp images are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	url, err := h.images.UploadImage(c.Request().Context(), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Image upload failed")
	}

	user.ProfilePicture = url
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"profile_picture": url,
	})
}
