package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"smartpay/internal/user"
)

// JWTAccessTokenMiddleware is the single gate every protected route passes
// through: it validates the bearer token and resolves its subject to a stored
// user before any handler runs. Verification failure and a subject that no
// longer maps to a user both surface as 401.
func (s *service) JWTAccessTokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, "Not authenticated")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeUnauthorized(w, "Invalid token format")
				return
			}

			subject, err := s.jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			existingUser, err := s.userService.GetUserByEmail(subject)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					writeUnauthorized(w, "Invalid or expired token")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}

			ctx := context.WithValue(r.Context(), "userID", existingUser.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, message)
}

// writeJSONError writes an error response in JSON format
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
