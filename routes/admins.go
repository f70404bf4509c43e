package routes

import (
	"net/http"
	"time"

	"github.com/royal450/DaillyEarners2/controllers/admins"
	"github.com/royal450/DaillyEarners2/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Admin login limiter: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Dashboard & profile
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.GetDashboardStats)).Methods(http.MethodGet)
	adminRouter.Handle("/profile", http.HandlerFunc(admins.GetAdminProfile)).Methods(http.MethodGet)
	adminRouter.Handle("/password", http.HandlerFunc(admins.UpdateAdminPassword)).Methods(http.MethodPut)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.GetUsers)).Methods(http.MethodGet)
	adminRouter.Handle("/users/bulk-bonus", http.HandlerFunc(admins.BulkBonusHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.GetUserDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.DeleteUser)).Methods(http.MethodDelete)
	adminRouter.Handle("/users/{id:[0-9]+}/status", http.HandlerFunc(admins.UpdateUserStatus)).Methods(http.MethodPut)
	adminRouter.Handle("/users/{id:[0-9]+}/balance", http.HandlerFunc(admins.AdjustUserBalance)).Methods(http.MethodPut)

	// Task management
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.GetTasks)).Methods(http.MethodGet)
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.CreateTask)).Methods(http.MethodPost)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.UpdateTask)).Methods(http.MethodPut)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.DeleteTask)).Methods(http.MethodDelete)
	adminRouter.Handle("/tasks/{id:[0-9]+}/toggle", http.HandlerFunc(admins.ToggleTask)).Methods(http.MethodPut)

	// Submission review
	adminRouter.Handle("/submissions", http.HandlerFunc(admins.GetSubmissions)).Methods(http.MethodGet)
	adminRouter.Handle("/submissions/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveSubmission)).Methods(http.MethodPut)
	adminRouter.Handle("/submissions/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectSubmission)).Methods(http.MethodPut)

	// Withdrawal review
	adminRouter.Handle("/withdrawals", http.HandlerFunc(admins.GetWithdrawals)).Methods(http.MethodGet)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveWithdrawal)).Methods(http.MethodPut)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectWithdrawal)).Methods(http.MethodPut)

	// Transactions
	adminRouter.Handle("/transactions", http.HandlerFunc(admins.GetTransactions)).Methods(http.MethodGet)

	// Settings
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettings)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettings)).Methods(http.MethodPut)
}
