package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/config"
	"github.com/ray-remotestate/pos/models"
)

// Claims are issued by the external auth service at login; this service
// only verifies and consumes them.
type Claims struct {
	UserID   uuid.UUID   `json:"user_id"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	BranchID uuid.UUID   `json:"branch_id"`
	jwt.RegisteredClaims
}

type ContextKey string

const (
	staffContextKey ContextKey = "staff"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := extractBearerToken(r)
		if err != nil {
			http.Error(w, "unauthorized: missing token", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.SecretKey), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), staffContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetAuthenticatedStaff(r *http.Request) (*Claims, error) {
	claims, ok := r.Context().Value(staffContextKey).(*Claims)
	if !ok {
		return nil, errors.New("no staff in context")
	}
	return claims, nil
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization format")
	}
	return parts[1], nil
}
