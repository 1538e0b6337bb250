package routes

import (
	"net/http"
	"time"

	"project/controllers/admins"
	"project/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Rate limiter for admin login: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Dashboard stats
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.GetDashboardStats)).Methods(http.MethodGet)

	// Admin info
	adminRouter.Handle("/info", http.HandlerFunc(admins.GetAdminInfo)).Methods(http.MethodGet)

	// Scheme management
	adminRouter.Handle("/schemes", http.HandlerFunc(admins.ListSchemes)).Methods(http.MethodGet)
	adminRouter.Handle("/schemes", http.HandlerFunc(admins.CreateScheme)).Methods(http.MethodPost)
	adminRouter.Handle("/schemes/{scheme_id:[0-9]+}", http.HandlerFunc(admins.UpdateScheme)).Methods(http.MethodPut)
	adminRouter.Handle("/schemes/{scheme_id:[0-9]+}", http.HandlerFunc(admins.DeleteScheme)).Methods(http.MethodDelete)
	adminRouter.Handle("/schemes/{scheme_id:[0-9]+}/image", http.HandlerFunc(admins.UploadSchemeImage)).Methods(http.MethodPost)

	// Enrollment pipeline
	adminRouter.Handle("/chits/pending", http.HandlerFunc(admins.GetPendingChits)).Methods(http.MethodGet)
	adminRouter.Handle("/chits/{scheme_id:[0-9]+}/participants", http.HandlerFunc(admins.GetSchemeParticipants)).Methods(http.MethodGet)
	adminRouter.Handle("/chits/{scheme_id:[0-9]+}/users/{user_id:[0-9]+}", http.HandlerFunc(admins.GetUserChitHistory)).Methods(http.MethodGet)
	adminRouter.Handle("/chits/{scheme_id:[0-9]+}/users/{user_id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveChit)).Methods(http.MethodPut)
	adminRouter.Handle("/chits/{scheme_id:[0-9]+}/users/{user_id:[0-9]+}/reject", http.HandlerFunc(admins.RejectChit)).Methods(http.MethodPut)
	adminRouter.Handle("/chits/{scheme_id:[0-9]+}/users/{user_id:[0-9]+}/pay", http.HandlerFunc(admins.RecordChitPayment)).Methods(http.MethodPost)

	// Category management
	adminRouter.Handle("/categories", http.HandlerFunc(admins.ListCategories)).Methods(http.MethodGet)
	adminRouter.Handle("/categories", http.HandlerFunc(admins.CreateCategory)).Methods(http.MethodPost)
	adminRouter.Handle("/categories/{category_id:[0-9]+}", http.HandlerFunc(admins.UpdateCategory)).Methods(http.MethodPut)
	adminRouter.Handle("/categories/{category_id:[0-9]+}", http.HandlerFunc(admins.DeleteCategory)).Methods(http.MethodDelete)

	// Product management
	adminRouter.Handle("/products", http.HandlerFunc(admins.ListProducts)).Methods(http.MethodGet)
	adminRouter.Handle("/products", http.HandlerFunc(admins.CreateProduct)).Methods(http.MethodPost)
	adminRouter.Handle("/products/{product_id:[0-9]+}", http.HandlerFunc(admins.UpdateProduct)).Methods(http.MethodPut)
	adminRouter.Handle("/products/{product_id:[0-9]+}", http.HandlerFunc(admins.DeleteProduct)).Methods(http.MethodDelete)
	adminRouter.Handle("/products/{product_id:[0-9]+}/image", http.HandlerFunc(admins.UploadProductImage)).Methods(http.MethodPost)

	// Settings management
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettings)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettings)).Methods(http.MethodPut)
}
