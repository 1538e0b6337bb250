package routes

import (
	"net/http"
	"time"

	"project/controllers/auth"
	"project/controllers/users"
	"project/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes mendaftarkan semua route terkait user ke subrouter yang diberikan
func UsersRoutes(api *mux.Router) {
	// Rate limiter login/register: 60 per IP per 5 menit
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Rate limiter session: 120 read / 60 write per user per menit
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	authed := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(middleware.AuthMiddleware(h))
	}

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", authed(auth.LogoutHandler)).Methods(http.MethodPost)
	api.Handle("/logout-all", authed(auth.LogoutAllHandler)).Methods(http.MethodPost)

	// Account
	api.Handle("/users/info", authed(users.InfoHandler)).Methods(http.MethodGet)
	api.Handle("/users/change-password", authed(users.ChangePasswordHandler)).Methods(http.MethodPost)
	api.Handle("/users/profile", authed(users.UpdateProfileHandler)).Methods(http.MethodPut)
	api.Handle("/users/profile/picture", authed(users.UploadProfilePictureHandler)).Methods(http.MethodPost)
	api.Handle("/users/profile/picture", authed(users.DeleteProfilePictureHandler)).Methods(http.MethodDelete)

	// Arisan enrollment and installments
	api.Handle("/users/chits", authed(users.MyChitsHandler)).Methods(http.MethodGet)
	api.Handle("/users/chits/join", authed(users.JoinChitHandler)).Methods(http.MethodPost)
	api.Handle("/users/chits/pay", authed(users.PayChitHandler)).Methods(http.MethodPost)
	api.Handle("/users/chits/{scheme_id:[0-9]+}", authed(users.ChitDetailHandler)).Methods(http.MethodGet)

	// Notifications
	api.Handle("/users/notifications", authed(users.NotificationListHandler)).Methods(http.MethodGet)
	api.Handle("/users/notifications/{id:[0-9]+}/read", authed(users.NotificationReadHandler)).Methods(http.MethodPut)
	api.Handle("/users/notifications/{id:[0-9]+}", authed(users.NotificationDeleteHandler)).Methods(http.MethodDelete)
	api.Handle("/users/notifications/read-all", authed(users.NotificationReadAllHandler)).Methods(http.MethodPut)

	// Journal
	api.Handle("/users/transaction", authed(users.GetTransactionHistory)).Methods(http.MethodGet)
	api.Handle("/users/transaction/{type}", authed(users.GetTransactionHistory)).Methods(http.MethodGet)
}
