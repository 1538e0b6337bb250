package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"project/utils"
)

// AuthMiddleware guards user endpoints: it validates the bearer token and
// injects the user ID and role into the request context. Admin tokens are
// rejected here; the back office has its own surface.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				utils.WriteError(w, http.StatusUnauthorized, "Sesi anda telah habis, silahkan login kembali.")
				return
			}
			utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID := claimUint(claims["id"])
		role, _ := claims["role"].(string)
		if role == "admin" {
			utils.WriteError(w, http.StatusForbidden, "Access denied")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimUint(raw interface{}) uint {
	switch v := raw.(type) {
	case float64:
		return uint(v)
	case int:
		return uint(v)
	case string:
		var n uint
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}
