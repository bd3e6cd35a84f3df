package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/taskhive/task-service/internal/config"
	"github.com/taskhive/task-service/internal/models"
)

type stubUserFinder struct {
	users map[int64]*models.User
}

func (s *stubUserFinder) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users[id], nil
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func signToken(t *testing.T, secret string, userID int64, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func authHarness(users *stubUserFinder) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromRequest(r)
		w.Header().Set("X-User-ID", strconv.FormatInt(user.ID, 10))
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(testConfig(), users, testLogger())(next)
}

func TestAuthenticateResolvesUser(t *testing.T) {
	users := &stubUserFinder{users: map[int64]*models.User{
		7: {ID: 7, Email: "john@example.com", Role: models.RoleUser},
	}}
	h := authHarness(users)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", 7, time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-User-ID"); got != "7" {
		t.Errorf("resolved user id = %s, want 7", got)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	users := &stubUserFinder{users: map[int64]*models.User{
		7: {ID: 7, Role: models.RoleUser},
	}}
	h := authHarness(users)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"missing token", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", 7, time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, "test-secret", 7, time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"user gone", "Bearer " + signToken(t, "test-secret", 42, time.Now().Add(time.Hour)), http.StatusNotFound},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.wantStatus)
		}
		var body struct {
			Success bool `json:"success"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: invalid JSON body: %v", tt.name, err)
		} else if body.Success {
			t.Errorf("%s: success = true on a denial", tt.name)
		}
	}
}

func withUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey{}, user))
}

func TestRoleGates(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	user := &models.User{ID: 1, Role: models.RoleUser}
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	tests := []struct {
		name       string
		gate       http.Handler
		user       *models.User
		wantStatus int
	}{
		{"admin passes RequireAdmin", RequireAdmin(ok), admin, http.StatusOK},
		{"user fails RequireAdmin", RequireAdmin(ok), user, http.StatusForbidden},
		{"user passes RequireNonAdmin", RequireNonAdmin(ok), user, http.StatusOK},
		{"admin fails RequireNonAdmin", RequireNonAdmin(ok), admin, http.StatusForbidden},
		{"anonymous fails RequireAdmin", RequireAdmin(ok), nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.user != nil {
			r = withUser(r, tt.user)
		}
		w := httptest.NewRecorder()
		tt.gate.ServeHTTP(w, r)

		if w.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.wantStatus)
		}
	}
}
