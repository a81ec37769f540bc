package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

type contextKey string

const userIDKey contextKey = "userId"

// requireAuth resolves the Authorization header to an account id and
// stores it in the request context. A missing or rejected token is a 401;
// the handler never learns why the token was rejected.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication failed")
				return
			}
			s.logger.Error(r.Context(), "authentication failed", "error", err)
			writeInternalError(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
