package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/services"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	details, err := s.expenses.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toExpenseResponses(details))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := s.expenses.Create(r.Context(), services.CreateExpenseInput{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		PaidBy:      req.PaidBy,
		AmountCents: int64(req.Amount),
		ExpenseDate: req.ExpenseDate,
		Note:        req.Note,
		Consumers:   req.Consumers,
	})
	if err != nil {
		// A reference to a nonexistent user is a client mistake here. In
		// reads the same error means corrupt data and stays a 500.
		if errors.Is(err, core.ErrUnknownUser) {
			writeMessage(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, createExpenseResponse{
		Message: "Expense created",
		Expense: toExpenseResponse(detail),
	})
}
