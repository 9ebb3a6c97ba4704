package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"paisa/internal/core"
	"paisa/internal/ledger"
	"paisa/internal/period"
)

type createTransactionRequest struct {
	Amount         string `json:"amount"`
	Kind           string `json:"kind"`
	WalletID       string `json:"walletId"`
	ToWalletID     string `json:"toWalletId,omitempty"`
	CategoryID     string `json:"categoryId,omitempty"`
	Note           string `json:"note,omitempty"`
	TransferReason string `json:"transferReason,omitempty"`
	Date           int64  `json:"date,omitempty"`
}

type updateTransactionRequest struct {
	Amount         *string `json:"amount"`
	Kind           *string `json:"kind"`
	WalletID       *string `json:"walletId"`
	ToWalletID     *string `json:"toWalletId"`
	CategoryID     *string `json:"categoryId"`
	Note           *string `json:"note"`
	TransferReason *string `json:"transferReason"`
	Date           *int64  `json:"date"`
}

// handleListTransactions returns joined rows, newest first. Optional
// from/to query params (unix millis, inclusive) or a year narrow the
// range.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, as *apiSession) {
	txns := as.state.Transactions()

	if rawYear := r.URL.Query().Get("year"); rawYear != "" {
		year, convErr := strconv.Atoi(rawYear)
		if convErr != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		yr := period.YearRange(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		filtered := txns[:0]
		for _, t := range txns {
			if yr.Contains(t.Date) {
				filtered = append(filtered, t)
			}
		}
		txns = filtered
	}

	from, okFrom, err := queryMillis(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, okTo, err := queryMillis(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if okFrom || okTo {
		filtered := txns[:0]
		for _, t := range txns {
			if okFrom && t.Date < from {
				continue
			}
			if okTo && t.Date > to {
				continue
			}
			filtered = append(filtered, t)
		}
		txns = filtered
	}

	code := as.state.Preferences().Currency
	details := ledger.WithDetails(txns, as.state.Wallets(), as.state.Categories())
	out := make([]transactionJSON, 0, len(details))
	for _, d := range details {
		out = append(out, toDetailJSON(d, code))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := s.transactions.Create(r.Context(), as.state, core.Transaction{
		Amount:         amount,
		Kind:           core.TransactionKind(req.Kind),
		WalletID:       req.WalletID,
		ToWalletID:     req.ToWalletID,
		CategoryID:     req.CategoryID,
		Note:           req.Note,
		TransferReason: req.TransferReason,
		Date:           req.Date,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	code := as.state.Preferences().Currency
	writeJSON(w, http.StatusCreated, toTransactionJSON(created, code))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := core.TransactionPatch{
		WalletID:       req.WalletID,
		ToWalletID:     req.ToWalletID,
		CategoryID:     req.CategoryID,
		Note:           req.Note,
		TransferReason: req.TransferReason,
		Date:           req.Date,
	}
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		patch.Amount = &amount
	}
	if req.Kind != nil {
		kind := core.TransactionKind(*req.Kind)
		patch.Kind = &kind
	}

	if err := s.transactions.Update(r.Context(), as.state, r.PathValue("id"), patch); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, as *apiSession) {
	if err := s.transactions.Delete(r.Context(), as.state, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryMillis(r *http.Request, key string) (int64, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: must be unix millis", key)
	}
	return v, true, nil
}
