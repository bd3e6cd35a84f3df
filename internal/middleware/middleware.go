package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/taskhive/task-service/internal/config"
	"github.com/taskhive/task-service/internal/models"
)

// UserFinder resolves a token subject to a user record. A nil user without
// error means the record no longer exists.
type UserFinder interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

type userContextKey struct{}

// UserFromRequest returns the identity resolved by Authenticate, or nil on
// an unauthenticated request
func UserFromRequest(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey{}).(*models.User)
	return user
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

// Authenticate verifies the bearer token, resolves its subject to a user
// and attaches the user to the request context
func Authenticate(cfg *config.Config, users UserFinder, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Authorization")

			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || parts[0] != "Bearer" {
				deny(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				log.Debugf("Rejected token: %v", err)
				deny(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil {
				deny(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			userID, err := strconv.ParseInt(subject, 10, 64)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			user, err := users.FindUserByID(r.Context(), userID)
			if err != nil {
				log.Errorf("Failed to resolve user %d: %v", userID, err)
				deny(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				deny(w, http.StatusNotFound, "User not found")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin passes only admin identities
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromRequest(r)
		if user == nil || !user.IsAdmin() {
			deny(w, http.StatusForbidden, "This route is restricted to admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireNonAdmin passes only non-admin identities; admins are read-only
// and may not create or mutate tasks
func RequireNonAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromRequest(r)
		if user == nil || user.IsAdmin() {
			deny(w, http.StatusForbidden, "Admins cannot perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}
