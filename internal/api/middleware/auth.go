package middleware

import (
	"context"
	"errors"
	"net/http"

	"career_advisor/internal/common"
	"career_advisor/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	UserEmailCtxKey contextKey = "userEmail"
	UserNameCtxKey  contextKey = "userFullName"
)

// Verifier extracts and validates the bearer token from the Authorization
// header. When the signing key was never configured it passes through so
// Authenticator can fail the request closed instead of the process
// crashing.
func Verifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if security.TokenAuth == nil {
			next.ServeHTTP(w, r)
			return
		}
		jwtauth.Verifier(security.TokenAuth)(next).ServeHTTP(w, r)
	})
}

// Authenticator gates protected routes: it rejects requests without a
// valid token and attaches the decoded identity claims to the request
// context. Read-only; no side effects.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if security.TokenAuth == nil {
			common.RespondWithError(w, http.StatusInternalServerError, common.ErrInternalConfig.Error())
			return
		}

		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			switch {
			case errors.Is(jwtauth.ErrorReason(err), jwtauth.ErrExpired):
				// Distinct message so clients can prompt a re-login.
				common.RespondWithError(w, http.StatusUnauthorized, "Token expired, please log in again")
			case errors.Is(jwtauth.ErrorReason(err), jwtauth.ErrNoTokenFound):
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			default:
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		email, err := security.GetEmailFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		fullName, _ := security.GetFullNameFromClaims(claims)

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UserEmailCtxKey, email)
		ctx = context.WithValue(ctx, UserNameCtxKey, fullName)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to get the authenticated user id from context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
