package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/promo"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository     repositories.UserRepository
	settingsRepository repositories.SettingsRepository
	googleAccounts     repositories.GoogleAccountRepository
	firebaseAuth       *auth.Client
	jwtSecret          string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
	googleAccounts repositories.GoogleAccountRepository,
	firebaseAuthClient *auth.Client,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		userRepository:     userRepo,
		settingsRepository: settingsRepo,
		googleAccounts:     googleAccounts,
		firebaseAuth:       firebaseAuthClient,
		jwtSecret:          jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup handles promoter registration with email and password.
// New accounts are always promoters; admin status is only ever granted
// directly on the stored record.
func (h *AuthHandler) Signup(c echo.Context) error {
	enabled, err := h.settingsRepository.SignupEnabled()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check signup availability")
	}
	if !enabled {
		return echo.NewHTTPError(http.StatusForbidden, "Signups are currently closed")
	}

	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := promo.CheckAge(req.Birthdate, time.Now()); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !promo.ValidContactNumber(req.ContactNumber) {
		return echo.NewHTTPError(http.StatusBadRequest, "Contact number must be in +63 XXX XXX XXXX format")
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	firstName := promo.CapitalizeName(req.FirstName)
	middleName := promo.CapitalizeName(req.MiddleName)
	lastName := promo.CapitalizeName(req.LastName)

	user := &models.User{
		FirstName:     firstName,
		MiddleName:    middleName,
		LastName:      lastName,
		FullName:      promo.FullName(firstName, middleName, lastName),
		Email:         req.Email,
		Password:      string(hashedPassword),
		Birthdate:     req.Birthdate,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		IsAdmin:       false,
		CreatedBy:     "signup_form",
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// SignIn handles email/password authentication
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "is_admin": user.IsAdmin})
}

// FirebaseLogin verifies a Firebase ID token, upserts the local user and the
// googleAccounts mirror row, and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase login not configured")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.firebaseAuth.VerifyIDToken(context.Background(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	photoURL, _ := token.Claims["picture"].(string)
	emailVerified, _ := token.Claims["email_verified"].(bool)

	firstName, lastName := splitDisplayName(name)

	user, err := h.userRepository.GetUserByFirebaseUID(firebaseUID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			user, err = h.userRepository.GetUserByEmail(email)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					// First sign-in: create a promoter account
					newUser := &models.User{
						FirstName:      firstName,
						LastName:       lastName,
						FullName:       name,
						Email:          email,
						FirebaseUID:    firebaseUID,
						ProfilePicture: photoURL,
						IsAdmin:        false,
						CreatedBy:      "google_login",
					}
					if err := h.userRepository.CreateUser(newUser); err != nil {
						return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
					}
					user = newUser
				} else {
					return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
				}
			} else {
				// Existing email account: link the Firebase UID
				user.FirebaseUID = firebaseUID
				if err := h.userRepository.UpdateUser(user); err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user with Firebase UID")
				}
			}
		} else {
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
	}

	if token.Firebase.SignInProvider == "google.com" {
		acc := &models.GoogleAccount{
			UID:           firebaseUID,
			Email:         email,
			DisplayName:   name,
			PhotoURL:      photoURL,
			FirstName:     firstName,
			LastName:      lastName,
			EmailVerified: emailVerified,
			Provider:      "google.com",
		}
		if err := h.googleAccounts.Upsert(acc); err != nil {
			// Mirror row is bookkeeping; login still succeeds
			c.Logger().Errorf("failed to upsert google account %s: %v", firebaseUID, err)
		}
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": localJWT, "is_admin": user.IsAdmin})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}

func splitDisplayName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
