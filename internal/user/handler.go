package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"smartpay/internal/finance/domain"
)

// TransactionLister and BudgetLister expose the slices of the finance
// services needed to embed a user's owned records in user responses.
type TransactionLister interface {
	GetUserTransactions(userID int64, skip, limit int) ([]domain.Transaction, error)
}

type BudgetLister interface {
	GetUserBudgets(userID int64) ([]domain.Budget, error)
}

type Handler struct {
	userService  Service
	transactions TransactionLister
	budgets      BudgetLister
}

func NewHandler(userService Service, transactions TransactionLister, budgets BudgetLister) *Handler {
	return &Handler{
		userService:  userService,
		transactions: transactions,
		budgets:      budgets,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encoding error: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}

// profileResponse mirrors the full User response shape: the entity plus its
// owned transactions and budgets. The password hash never serializes.
type profileResponse struct {
	User
	Transactions []domain.Transaction `json:"transactions"`
	Budgets      []domain.Budget      `json:"budgets"`
}

func (h *Handler) buildProfile(user *User) (*profileResponse, error) {
	transactions, err := h.transactions.GetUserTransactions(user.ID, 0, 1000)
	if err != nil {
		return nil, err
	}
	budgets, err := h.budgets.GetUserBudgets(user.ID)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	return &profileResponse{User: *user, Transactions: transactions, Budgets: budgets}, nil
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	user, err := h.userService.Register(req.Email, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		if errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrPasswordTooLong) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	profile, err := h.buildProfile(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}
	respondJSON(w, http.StatusCreated, profile)
}

func (h *Handler) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not load user")
		return
	}

	profile, err := h.buildProfile(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not load user")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandleGetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid user id")
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not load user")
		return
	}

	profile, err := h.buildProfile(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not load user")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
