package http

import (
	"net/http"

	"paisa/internal/core"
	"paisa/internal/ledger"
)

type createWalletRequest struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"isDefault"`
}

type updateWalletRequest struct {
	Name      *string `json:"name"`
	Kind      *string `json:"kind"`
	Icon      *string `json:"icon"`
	IsDefault *bool   `json:"isDefault"`
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request, as *apiSession) {
	code := as.state.Preferences().Currency
	balances := ledger.Balances(as.state.Transactions(), as.state.Wallets())
	out := make([]walletJSON, 0, len(balances))
	for _, wb := range balances {
		out = append(out, toWalletJSON(wb.Wallet, wb.Balance, code))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req createWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := as.state.CreateWallet(r.Context(), core.Wallet{
		Name:      req.Name,
		Kind:      core.WalletKind(req.Kind),
		Icon:      req.Icon,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	code := as.state.Preferences().Currency
	writeJSON(w, http.StatusCreated, toWalletJSON(created, core.Money{}, code))
}

func (s *Server) handleUpdateWallet(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req updateWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := core.WalletPatch{
		Name:      req.Name,
		Icon:      req.Icon,
		IsDefault: req.IsDefault,
	}
	if req.Kind != nil {
		kind := core.WalletKind(*req.Kind)
		patch.Kind = &kind
	}
	if err := as.state.UpdateWallet(r.Context(), r.PathValue("id"), patch); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteWallet(w http.ResponseWriter, r *http.Request, as *apiSession) {
	if err := as.state.DeleteWallet(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
