package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey is unexported so only this package can read or write the
// caller ID stored in a request context.
type contextKey string

const callerIDKey contextKey = "callerID"

// RequireAuth enforces a valid "Authorization: Bearer <token>" header on
// the wrapped routes. On success the caller ID is stored in the request
// context; on failure the chain stops with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID, err := validateRequest(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid bearer token required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), callerIDKey, callerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerID returns the authenticated caller ID from the context, or ""
// when the request was not authenticated (auth disabled).
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(callerIDKey).(string)
	return id
}

func validateRequest(r *http.Request, tokens *TokenService) (string, error) {
	header := r.Header.Get("Authorization")
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenStr == "" {
		return "", errors.New("auth: missing bearer token")
	}
	return tokens.Validate(tokenStr)
}
