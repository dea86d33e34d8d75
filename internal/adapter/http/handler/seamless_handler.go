package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pixluck/wallet/internal/adapter/http/dto"
	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/infrastructure/metrics"
	"github.com/pixluck/wallet/internal/usecase"
)

// SettlementService defines the engine behavior needed by the seamless
// endpoint.
type SettlementService interface {
	Settle(ctx context.Context, input usecase.SettleInput) (*usecase.SettleResult, error)
	Balance(ctx context.Context, accountID string) (int64, error)
}

// AgentCredentials supplies the provider agent credentials the inbound
// callback must present.
type AgentCredentials interface {
	AgentCredentials(ctx context.Context) (code, secret string, err error)
}

// SeamlessHandler speaks the game provider's seamless wallet protocol:
// one POST endpoint multiplexing user_balance and transaction methods,
// amounts in integer cents, status 0/1 envelopes.
type SeamlessHandler struct {
	settlementUC SettlementService
	credentials  AgentCredentials
	logger       zerolog.Logger
}

// NewSeamlessHandler creates a new SeamlessHandler.
func NewSeamlessHandler(settlementUC SettlementService, credentials AgentCredentials, logger zerolog.Logger) *SeamlessHandler {
	return &SeamlessHandler{
		settlementUC: settlementUC,
		credentials:  credentials,
		logger:       logger,
	}
}

// Ping answers the provider's endpoint liveness probe.
func (h *SeamlessHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.SeamlessResponse{Status: dto.SeamlessOK, Msg: "Seamless endpoint OK"})
}

// Handle processes one provider callback. Agent credentials are checked
// before anything reaches the engine.
func (h *SeamlessHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req dto.SeamlessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.SeamlessError(dto.MsgInvalidParameter))
		return
	}

	code, secret, err := h.credentials.AgentCredentials(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("load agent credentials")
		writeJSON(w, http.StatusInternalServerError, dto.SeamlessError(dto.MsgInternalError))
		return
	}
	if req.AgentSecret == "" || req.AgentSecret != secret || req.AgentCode != code {
		h.logger.Warn().Str("agent_code", req.AgentCode).Msg("seamless agent rejected")
		writeJSON(w, http.StatusForbidden, dto.SeamlessError(dto.MsgInvalidAgent))
		return
	}

	if req.Method == "" || req.UserCode == "" {
		writeJSON(w, http.StatusBadRequest, dto.SeamlessError(dto.MsgInvalidParameter))
		return
	}

	switch req.Method {
	case "user_balance":
		h.userBalance(w, r, &req)
	case "transaction":
		h.transaction(w, r, &req)
	default:
		writeJSON(w, http.StatusBadRequest, dto.SeamlessError(dto.MsgInvalidMethod))
	}
}

func (h *SeamlessHandler) userBalance(w http.ResponseWriter, r *http.Request, req *dto.SeamlessRequest) {
	balance, err := h.settlementUC.Balance(r.Context(), req.UserCode)
	if errors.Is(err, domain.ErrAccountNotFound) {
		writeJSON(w, http.StatusNotFound, dto.SeamlessError(dto.MsgInvalidUser))
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("user_code", req.UserCode).Msg("seamless balance lookup")
		writeJSON(w, http.StatusInternalServerError, dto.SeamlessError(dto.MsgInternalError))
		return
	}
	writeJSON(w, http.StatusOK, dto.SeamlessOKBalance(balance))
}

func (h *SeamlessHandler) transaction(w http.ResponseWriter, r *http.Request, req *dto.SeamlessRequest) {
	input, err := req.ToSettleInput()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.SeamlessError(dto.MsgInvalidParameter))
		return
	}

	result, err := h.settlementUC.Settle(r.Context(), input)
	switch {
	case err == nil:
		if result.Replayed {
			metrics.Settlements.WithLabelValues("replayed").Inc()
		} else {
			metrics.Settlements.WithLabelValues("settled").Inc()
		}
		writeJSON(w, http.StatusOK, dto.SeamlessOKBalance(result.BalanceAfter))
	case errors.Is(err, domain.ErrAccountNotFound):
		writeJSON(w, http.StatusNotFound, dto.SeamlessError(dto.MsgInvalidUser))
	case errors.Is(err, domain.ErrInsufficientFunds):
		metrics.Settlements.WithLabelValues("insufficient_funds").Inc()
		writeJSON(w, http.StatusOK, dto.SeamlessError(dto.MsgInsufficientFunds))
	case errors.Is(err, domain.ErrInvalidRequest):
		metrics.Settlements.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusBadRequest, dto.SeamlessError(dto.MsgInvalidParameter))
	default:
		h.logger.Error().Err(err).Str("txn_id", input.TxnID).Msg("seamless settlement")
		writeJSON(w, http.StatusInternalServerError, dto.SeamlessError(dto.MsgInternalError))
	}
}
