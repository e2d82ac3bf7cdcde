package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"smartpay/internal/auth"
	database "smartpay/internal/db"
	"smartpay/internal/finance/application"
	"smartpay/internal/finance/infrastructure"
	"smartpay/internal/finance/interfaces"
	"smartpay/internal/user"
)

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	transactionHandler *interfaces.TransactionHandler
	budgetHandler      *interfaces.BudgetHandler
}

func NewServer(
	dbService *database.DBService,
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	transactionHandler *interfaces.TransactionHandler,
	budgetHandler *interfaces.BudgetHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		dbService:          dbService,
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		transactionHandler: transactionHandler,
		budgetHandler:      budgetHandler,
	}
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	return nil
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Path not found"})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to SmartPay API!",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	router := http.NewServeMux()
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	router.Handle("GET /{$}", http.HandlerFunc(s.handleRoot))
	router.Handle("GET /api/v1/health", http.HandlerFunc(s.handleHealth))
	router.Handle("POST /token", http.HandlerFunc(s.authHandler.HandleLogin))
	router.Handle("POST /api/v1/users/{$}", http.HandlerFunc(s.userHandler.HandleRegister))
	router.Handle("GET /api/v1/users/{id}", http.HandlerFunc(s.userHandler.HandleGetUserByID))

	// Protected routes (JWT access token middleware)
	router.Handle("GET /api/v1/users/me", protect(http.HandlerFunc(s.userHandler.HandleGetCurrentUser)))

	router.Handle("POST /api/v1/transactions/{$}", protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	router.Handle("GET /api/v1/transactions/{$}", protect(http.HandlerFunc(s.transactionHandler.GetTransactions)))

	router.Handle("POST /api/v1/budgets/{$}", protect(http.HandlerFunc(s.budgetHandler.CreateBudget)))
	router.Handle("GET /api/v1/budgets/{$}", protect(http.HandlerFunc(s.budgetHandler.GetBudgets)))
	router.Handle("GET /api/v1/budgets/status/{category}/{period}", protect(http.HandlerFunc(s.budgetHandler.GetBudgetStatus)))

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

func newServer(dbService *database.DBService) *Server {
	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo)
	transactionHandler := interfaces.NewTransactionHandler(transactionService)

	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	budgetService := application.NewBudgetService(budgetRepo, transactionService)
	budgetHandler := interfaces.NewBudgetHandler(budgetService)

	userHandler := user.NewHandler(userService, transactionService, budgetService)

	server := NewServer(dbService, authHandler, authService, userHandler, transactionHandler, budgetHandler)
	server.RegisterRoutes()
	return server
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	server := newServer(dbService)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	log.Printf("Server starting on %s...", addr)
	if err := http.ListenAndServe(addr, loggingMiddleware(server.router)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
