package routes

import (
	"net/http"
	"time"

	"github.com/royal450/DaillyEarners2/controllers/auth"
	"github.com/royal450/DaillyEarners2/controllers/users"
	"github.com/royal450/DaillyEarners2/middleware"

	"github.com/gorilla/mux"
)

func UsersRoutes(api *mux.Router) {
	// Login/register limiter: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Session limiter: 120 read / 60 write per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	// Register & Login
	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)

	// Profile & dashboard
	api.Handle("/users/me", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetProfileHandler)))).Methods(http.MethodGet)
	api.Handle("/users/dashboard", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetDashboardHandler)))).Methods(http.MethodGet)
	api.Handle("/users/password", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ChangePasswordHandler)))).Methods(http.MethodPut)
	api.Handle("/users/upi", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UpdateUpiHandler)))).Methods(http.MethodPut)

	// Tasks
	api.Handle("/tasks", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.TaskListHandler)))).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.TaskDetailHandler)))).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}/like", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.TaskLikeHandler)))).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}/submit", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.SubmitTaskHandler)))).Methods(http.MethodPost)

	// Submissions
	api.Handle("/submissions", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.MySubmissionsHandler)))).Methods(http.MethodGet)

	// Withdrawals
	api.Handle("/withdrawals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateWithdrawalHandler)))).Methods(http.MethodPost)
	api.Handle("/withdrawals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.MyWithdrawalsHandler)))).Methods(http.MethodGet)

	// Transactions & referrals
	api.Handle("/transactions", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetTransactionHistory)))).Methods(http.MethodGet)
	api.Handle("/referrals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetReferralsHandler)))).Methods(http.MethodGet)
}
