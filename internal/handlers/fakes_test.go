package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"github.com/pastryvapors/promohub/backend/internal/ws"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users     map[uint]*models.User
	nextID    uint
	creditErr error
	kicked    []uint
	credits   []struct {
		UserID uint
		Points int
	}
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = r.nextID
		}
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetPromoters() ([]models.User, error) {
	out := make([]models.User, 0)
	for _, u := range r.users {
		if !u.IsAdmin {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetPromotersByRanks(ranks []string) ([]models.User, error) {
	out := make([]models.User, 0)
	for _, u := range r.users {
		if u.IsAdmin {
			continue
		}
		for _, rank := range ranks {
			if u.Rank == rank {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CreditApproval(userID uint, points int) error {
	if r.creditErr != nil {
		return r.creditErr
	}
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Points += points
	u.TotalApprovedPosts++
	r.credits = append(r.credits, struct {
		UserID uint
		Points int
	}{userID, points})
	return nil
}

func (r *fakeUserRepo) SetCounters(userID uint, points, approvedPosts int) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Points = points
	u.TotalApprovedPosts = approvedPosts
	return nil
}

func (r *fakeUserRepo) AddWarning(userID uint, message string, at time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Warnings++
	u.LastWarningMessage = message
	u.LastWarningAt = &at
	return nil
}

func (r *fakeUserRepo) Suspend(userID uint, until time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Suspended = true
	u.SuspendedUntil = &until
	return nil
}

func (r *fakeUserRepo) ClearSuspension(userID uint) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Suspended = false
	u.SuspendedUntil = nil
	return nil
}

func (r *fakeUserRepo) ClearExpiredSuspensions(now time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Suspended && u.SuspendedUntil != nil && u.SuspendedUntil.Before(now) {
			u.Suspended = false
			u.SuspendedUntil = nil
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) KickUser(userID uint) error {
	if _, ok := r.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, userID)
	r.kicked = append(r.kicked, userID)
	return nil
}

// fakeSubmissionRepo is an in-memory SubmissionRepository
type fakeSubmissionRepo struct {
	subs      map[string]*models.Submission
	createErr error
	reverted  []string
	deleted   []string
}

func newFakeSubmissionRepo(subs ...*models.Submission) *fakeSubmissionRepo {
	r := &fakeSubmissionRepo{subs: make(map[string]*models.Submission)}
	for _, s := range subs {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		r.subs[s.ID.Hex()] = s
	}
	return r
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	if r.createErr != nil {
		return r.createErr
	}
	sub.ID = primitive.NewObjectID()
	sub.Status = models.StatusPending
	sub.Points = 0
	sub.CreatedAt = time.Now()
	cp := *sub
	r.subs[sub.ID.Hex()] = &cp
	return nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, repositories.ErrSubmissionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubmissionRepo) GetByUserID(ctx context.Context, userID uint) ([]models.Submission, error) {
	out := make([]models.Submission, 0)
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) GetAll(ctx context.Context) ([]models.Submission, error) {
	out := make([]models.Submission, 0)
	for _, s := range r.subs {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSubmissionRepo) GetByStatus(ctx context.Context, status string) ([]models.Submission, error) {
	out := make([]models.Submission, 0)
	for _, s := range r.subs {
		if s.Status == status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) MarkReviewed(ctx context.Context, id, status string, points int, reviewedAt time.Time) error {
	s, ok := r.subs[id]
	if !ok {
		return repositories.ErrSubmissionNotFound
	}
	if s.Status != models.StatusPending {
		return repositories.ErrAlreadyReviewed
	}
	s.Status = status
	s.Points = points
	s.ReviewedAt = &reviewedAt
	return nil
}

func (r *fakeSubmissionRepo) Revert(ctx context.Context, id string) error {
	s, ok := r.subs[id]
	if !ok {
		return repositories.ErrSubmissionNotFound
	}
	s.Status = models.StatusPending
	s.Points = 0
	s.ReviewedAt = nil
	r.reverted = append(r.reverted, id)
	return nil
}

func (r *fakeSubmissionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.subs[id]; !ok {
		return repositories.ErrSubmissionNotFound
	}
	delete(r.subs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeSubmissionRepo) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for id, s := range r.subs {
		if s.UserID == userID {
			delete(r.subs, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeSubmissionRepo) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSubmissionRepo) UserIDsBetween(ctx context.Context, start, end time.Time) (map[uint]bool, error) {
	out := make(map[uint]bool)
	for _, s := range r.subs {
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			out[s.UserID] = true
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ApprovedTotals(ctx context.Context) (map[uint]repositories.ApprovedTotal, error) {
	out := make(map[uint]repositories.ApprovedTotal)
	for _, s := range r.subs {
		if s.Status == models.StatusApproved {
			t := out[s.UserID]
			t.Points += s.Points
			t.Count++
			out[s.UserID] = t
		}
	}
	return out, nil
}

// fakeNotificationRepo is an in-memory NotificationRepository
type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        uint
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	n.ID = r.nextID
	r.nextID++
	n.CreatedAt = time.Now()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) GetAll(onlyUnread bool) ([]models.Notification, error) {
	out := make([]models.Notification, 0)
	for _, n := range r.notifications {
		if onlyUnread && n.Read {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) GetUnreadCount() (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if !notif.Read {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uint) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead() error {
	for _, n := range r.notifications {
		n.Read = true
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(id uint) error {
	for i, n := range r.notifications {
		if n.ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeSettingsRepo is an in-memory SettingsRepository
type fakeSettingsRepo struct {
	enabled bool
}

func (r *fakeSettingsRepo) SignupEnabled() (bool, error) { return r.enabled, nil }
func (r *fakeSettingsRepo) SetSignupEnabled(enabled bool) error {
	r.enabled = enabled
	return nil
}

// fakeGoogleAccountRepo is an in-memory GoogleAccountRepository
type fakeGoogleAccountRepo struct {
	accounts map[string]*models.GoogleAccount
}

func newFakeGoogleAccountRepo() *fakeGoogleAccountRepo {
	return &fakeGoogleAccountRepo{accounts: make(map[string]*models.GoogleAccount)}
}

func (r *fakeGoogleAccountRepo) Upsert(acc *models.GoogleAccount) error {
	r.accounts[acc.UID] = acc
	return nil
}

func (r *fakeGoogleAccountRepo) GetByUID(uid string) (*models.GoogleAccount, error) {
	acc, ok := r.accounts[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return acc, nil
}

// newTestContext builds an echo context for a request, optionally with an
// authenticated user's claims attached the way the JWT middleware would
func newTestContext(method, target, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("user", &models.JwtCustomClaims{
			UserID:  user.ID,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		})
	}
	return c, rec
}

func decodeBody(rec *httptest.ResponseRecorder) map[string]interface{} {
	out := make(map[string]interface{})
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return out
}

func testHub() *ws.Hub {
	return ws.NewHub()
}

func completePromoter(id uint) *models.User {
	return &models.User{
		ID:             id,
		FirstName:      "Maria",
		LastName:       "Cruz",
		FullName:       "Maria Cruz",
		Email:          "maria@example.com",
		Birthdate:      "2000-01-15",
		Address:        "Quezon City",
		ContactNumber:  "+63 912 345 6789",
		Gender:         "female",
		PrimaryFbLink:  "https://facebook.com/maria",
		PromoterFbLink: "https://facebook.com/maria.promotes",
		ProfilePicture: "https://cdn.example.com/maria.png",
	}
}
