package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"smartpay/internal/finance/application"
	"smartpay/internal/finance/domain"
	financeErrors "smartpay/internal/finance/errors"
)

type BudgetServiceInterface interface {
	CreateBudget(budget *domain.Budget) error
	GetUserBudgets(userID int64) ([]domain.Budget, error)
	GetBudgetStatus(userID int64, category, period string) (*application.BudgetStatus, error)
}

type BudgetHandler struct {
	service BudgetServiceInterface
}

func NewBudgetHandler(service BudgetServiceInterface) *BudgetHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &BudgetHandler{service: service}
}

func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		unauthorized(w)
		return
	}

	var req struct {
		Category string  `json:"category"`
		Limit    float64 `json:"limit"`
		Period   string  `json:"period"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	budget := domain.Budget{
		UserID:   userID,
		Category: req.Category,
		Limit:    req.Limit,
		Period:   req.Period,
	}
	if err := h.service.CreateBudget(&budget); err != nil {
		if financeErrors.IsValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Println("Error during budget creation:", err)
		respondError(w, http.StatusInternalServerError, "Failed to create budget")
		return
	}

	respondJSON(w, http.StatusCreated, budget)
}

func (h *BudgetHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		unauthorized(w)
		return
	}

	budgets, err := h.service.GetUserBudgets(userID)
	if err != nil {
		log.Println("Error during budget listing:", err)
		respondError(w, http.StatusInternalServerError, "Failed to list budgets")
		return
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}

	respondJSON(w, http.StatusOK, budgets)
}

// GetBudgetStatus serves /budgets/status/{category}/{period}. The period is
// validated here so a malformed one is a 422 rather than a silent zero-spend
// answer.
func (h *BudgetHandler) GetBudgetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		unauthorized(w)
		return
	}

	category := r.PathValue("category")
	period := r.PathValue("period")
	if _, _, err := domain.ParsePeriod(period); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	status, err := h.service.GetBudgetStatus(userID, category, period)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			respondError(w, http.StatusNotFound, "Budget not found for this category and period.")
			return
		}
		log.Println("Error during budget status computation:", err)
		respondError(w, http.StatusInternalServerError, "Failed to compute budget status")
		return
	}

	respondJSON(w, http.StatusOK, status)
}
