package middleware

import (
	"context"
	"net/http"
	"strings"

	"project/database"
	"project/models"
	"project/utils"
)

// AdminAuthMiddleware verifies the bearer token carries the admin role and
// that the admin account still exists and is active. The admin ID lands in
// the context under utils.UserIDKey.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		_, claims, err := utils.ValidateAccessToken(tokenString)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			utils.WriteError(w, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}

		adminID := claimUint(claims["id"])
		var admin models.Admin
		if err := database.DB.First(&admin, adminID).Error; err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Admin not found")
			return
		}
		if !admin.IsActive {
			utils.WriteError(w, http.StatusForbidden, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, adminID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
