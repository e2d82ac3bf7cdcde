package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"smartpay/internal/finance/domain"
	financeErrors "smartpay/internal/finance/errors"
)

type TransactionServiceInterface interface {
	CreateTransaction(transaction *domain.Transaction) error
	GetUserTransactions(userID int64, skip, limit int) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	service TransactionServiceInterface
}

func NewTransactionHandler(service TransactionServiceInterface) *TransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		unauthorized(w)
		return
	}

	var req struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	transaction := domain.Transaction{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.service.CreateTransaction(&transaction); err != nil {
		if financeErrors.IsValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Println("Error during transaction creation:", err)
		respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	respondJSON(w, http.StatusCreated, transaction)
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		unauthorized(w)
		return
	}

	skip := parseQueryInt(r, "skip", 0)
	limit := parseQueryInt(r, "limit", 100)

	transactions, err := h.service.GetUserTransactions(userID, skip, limit)
	if err != nil {
		log.Println("Error during transaction listing:", err)
		respondError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	respondJSON(w, http.StatusOK, transactions)
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
