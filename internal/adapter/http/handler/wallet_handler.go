package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pixluck/wallet/internal/adapter/http/dto"
	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/infrastructure/metrics"
	"github.com/pixluck/wallet/internal/usecase"
)

// AccountService defines the behavior needed by WalletHandler for
// accounts and game launching.
type AccountService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	LaunchGame(ctx context.Context, input usecase.LaunchGameInput) (string, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// LedgerService defines the ledger listing behavior.
type LedgerService interface {
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
}

// PaymentService defines the PIX payment behavior.
type PaymentService interface {
	CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.Payment, error)
	CreateWithdrawal(ctx context.Context, input usecase.CreateWithdrawalInput) (*domain.Payment, error)
	ListPayments(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error)
}

// WalletHandler handles account, ledger and payment HTTP requests.
type WalletHandler struct {
	accountUC AccountService
	ledgerUC  LedgerService
	paymentUC PaymentService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(accountUC AccountService, ledgerUC LedgerService, paymentUC PaymentService) *WalletHandler {
	return &WalletHandler{
		accountUC: accountUC,
		ledgerUC:  ledgerUC,
		paymentUC: paymentUC,
	}
}

// Register creates a new account.
func (h *WalletHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// ListEntries lists an account's settlement entries.
func (h *WalletHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	entries, err := h.ledgerUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		AccountID: id,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.LedgerEntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// LaunchGame requests a provider game session URL.
func (h *WalletHandler) LaunchGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.LaunchGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	url, err := h.accountUC.LaunchGame(r.Context(), usecase.LaunchGameInput{
		AccountID:    id,
		ProviderCode: req.ProviderCode,
		GameCode:     req.GameCode,
		Lang:         req.Lang,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to launch game", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LaunchGameResponse{LaunchURL: url})
}

// CreateDeposit creates a PIX deposit charge.
func (h *WalletHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.CreateDeposit(r.Context(), usecase.CreateDepositInput{
		AccountID:   id,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create deposit", err.Error())
		return
	}

	metrics.Payments.WithLabelValues("deposit", "pending").Inc()
	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// CreateWithdrawal creates a PIX withdrawal.
func (h *WalletHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.CreateWithdrawal(r.Context(), usecase.CreateWithdrawalInput{
		AccountID:   id,
		AmountCents: req.AmountCents,
		PixKey:      req.PixKey,
		PixKeyType:  req.PixKeyType,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create withdrawal", err.Error())
		return
	}

	metrics.Payments.WithLabelValues("withdrawal", "pending").Inc()
	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// ListPayments lists an account's payments.
func (h *WalletHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	payments, err := h.paymentUC.ListPayments(r.Context(), id,
		parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}
