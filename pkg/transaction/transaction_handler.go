package transaction

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/trackwise/trackwise/internal/rest"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID       int    `json:"id,omitempty"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

type Handler struct {
	service Service
	kind    Kind
}

// NewExpenseHandler serves the /api/expense endpoints.
func NewExpenseHandler(service Service) *Handler {
	return &Handler{service: service, kind: KindExpense}
}

// NewIncomeHandler serves the /api/income endpoints.
func NewIncomeHandler(service Service) *Handler {
	return &Handler{service: service, kind: KindIncome}
}

func (handler *Handler) Record(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Recording new %s", handler.kind)
	w.Header().Set("Content-Type", "application/json")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx, err := DTOToTransaction(dto, handler.kind)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid transaction",
			Details: err.Error(),
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := handler.service.Record(r.Context(), tx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(TransactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	transactions, err := handler.service.List(r.Context(), handler.kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, tx := range transactions {
		dtos = append(dtos, TransactionToDTO(tx))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.service.Delete(r.Context(), int(id))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func TransactionToDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		ID:       tx.ID,
		Amount:   tx.Amount.String(),
		Date:     FormatDate(tx.Date),
		Time:     tx.TimeOfDay,
		Category: tx.Category,
	}
}

// DTOToTransaction parses the wire representation into a domain record. All
// string-typed fields are parsed here, once; downstream code never sees the
// raw strings again.
func DTOToTransaction(dto TransactionDTO, kind Kind) (Transaction, error) {
	amount, err := ParseAmount(dto.Amount)
	if err != nil {
		return Transaction{}, err
	}
	date, err := ParseDate(dto.Date)
	if err != nil {
		return Transaction{}, err
	}
	if !ValidTimeOfDay(dto.Time) {
		return Transaction{}, fmt.Errorf("%w: %q", ErrMalformedTime, dto.Time)
	}
	return Transaction{
		ID:        dto.ID,
		Amount:    amount,
		Date:      date,
		TimeOfDay: dto.Time,
		Category:  dto.Category,
		Kind:      kind,
	}, nil
}
