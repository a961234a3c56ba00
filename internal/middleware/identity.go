package middleware

import (
	"net/http"
	"strings"
)

// Identity resolves the caller's user id into the request context.
//
// With a JWTAuth configured the id comes only from a Bearer token (or a
// "token" query parameter, for websocket upgrades) and invalid tokens are
// rejected. Without one, the "userId" query parameter is trusted as-is.
// Requests with no identity pass through; handlers decide whether one is
// required.
func Identity(jwtAuth *JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if jwtAuth == nil {
				if id := strings.TrimSpace(r.URL.Query().Get("userId")); id != "" {
					r = r.WithContext(WithUserID(r.Context(), id))
				}
				next.ServeHTTP(w, r)
				return
			}

			tokenStr, ok := bearerToken(r)
			if !ok {
				tokenStr = r.URL.Query().Get("token")
			}
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := jwtAuth.ParseUserID(tokenStr)
			if err != nil {
				if strings.Contains(err.Error(), "expired") {
					writeError(w, http.StatusUnauthorized, "Token has expired")
				} else {
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
