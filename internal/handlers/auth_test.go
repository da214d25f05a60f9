package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signupBody(email, birthdate string) string {
	return fmt.Sprintf(`{
		"first_name": "juan",
		"last_name": "DELA CRUZ",
		"email": %q,
		"password": "secret123",
		"birthdate": %q,
		"address": "Makati City",
		"contact_number": "+63 912 345 6789",
		"agree_terms": true
	}`, email, birthdate)
}

func newAuthHandler(userRepo *fakeUserRepo, signupOpen bool) *AuthHandler {
	return NewAuthHandler(userRepo, &fakeSettingsRepo{enabled: signupOpen}, newFakeGoogleAccountRepo(), nil, "test-secret")
}

func TestSignup(t *testing.T) {
	t.Run("creates a promoter with normalized names", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		h := newAuthHandler(userRepo, true)

		c, rec := newTestContext(http.MethodPost, "/auth/signup", signupBody("juan@example.com", "1995-03-10"), nil)
		require.NoError(t, h.Signup(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeBody(rec)
		assert.NotEmpty(t, resp["token"])

		user, err := userRepo.GetUserByEmail("juan@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Juan", user.FirstName)
		assert.Equal(t, "Dela cruz", user.LastName)
		assert.False(t, user.IsAdmin)
		assert.Equal(t, "signup_form", user.CreatedBy)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	})

	t.Run("closed signups return 403", func(t *testing.T) {
		h := newAuthHandler(newFakeUserRepo(), false)

		c, _ := newTestContext(http.MethodPost, "/auth/signup", signupBody("juan@example.com", "1995-03-10"), nil)
		err := h.Signup(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("underage signups are refused", func(t *testing.T) {
		h := newAuthHandler(newFakeUserRepo(), true)

		c, _ := newTestContext(http.MethodPost, "/auth/signup", signupBody("kid@example.com", "2015-01-01"), nil)
		err := h.Signup(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("malformed contact number is refused", func(t *testing.T) {
		body := `{
			"first_name": "Juan",
			"last_name": "Cruz",
			"email": "juan@example.com",
			"password": "secret123",
			"birthdate": "1995-03-10",
			"address": "Makati City",
			"contact_number": "09123456789",
			"agree_terms": true
		}`
		h := newAuthHandler(newFakeUserRepo(), true)

		c, _ := newTestContext(http.MethodPost, "/auth/signup", body, nil)
		err := h.Signup(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		existing := &models.User{ID: 1, Email: "juan@example.com"}
		h := newAuthHandler(newFakeUserRepo(existing), true)

		c, _ := newTestContext(http.MethodPost, "/auth/signup", signupBody("juan@example.com", "1995-03-10"), nil)
		err := h.Signup(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusConflict, he.Code)
	})
}

func TestSignIn(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{ID: 1, Email: "juan@example.com", Password: string(hashed)}

	t.Run("valid credentials return a token", func(t *testing.T) {
		h := newAuthHandler(newFakeUserRepo(user), true)

		c, rec := newTestContext(http.MethodPost, "/auth/signin", `{"email":"juan@example.com","password":"secret123"}`, nil)
		require.NoError(t, h.SignIn(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody(rec)
		assert.NotEmpty(t, resp["token"])
		assert.Equal(t, false, resp["is_admin"])
	})

	t.Run("wrong password is rejected without detail", func(t *testing.T) {
		h := newAuthHandler(newFakeUserRepo(user), true)

		c, _ := newTestContext(http.MethodPost, "/auth/signin", `{"email":"juan@example.com","password":"wrong"}`, nil)
		err := h.SignIn(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid email or password", he.Message)
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		h := newAuthHandler(newFakeUserRepo(), true)

		c, _ := newTestContext(http.MethodPost, "/auth/signin", `{"email":"nobody@example.com","password":"secret123"}`, nil)
		err := h.SignIn(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid email or password", he.Message)
	})
}

func TestFirebaseLoginUnconfigured(t *testing.T) {
	h := newAuthHandler(newFakeUserRepo(), true)

	c, _ := newTestContext(http.MethodPost, "/auth/firebase-login", `{"idToken":"abc"}`, nil)
	err := h.FirebaseLogin(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}

func TestSplitDisplayName(t *testing.T) {
	first, last := splitDisplayName("Juan Dela Cruz")
	assert.Equal(t, "Juan", first)
	assert.Equal(t, "Dela Cruz", last)

	first, last = splitDisplayName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "", last)

	first, last = splitDisplayName("")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}
