package dto

import (
	"encoding/json"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

// Seamless API status codes and messages.
const (
	SeamlessOK     = 1
	SeamlessFailed = 0

	MsgInvalidParameter  = "INVALID_PARAMETER"
	MsgInvalidUser       = "INVALID_USER"
	MsgInvalidMethod     = "INVALID_METHOD"
	MsgInvalidAgent      = "INVALID_AGENT"
	MsgInsufficientFunds = "INSUFFICIENT_USER_FUNDS"
	MsgInternalError     = "INTERNAL_ERROR"
)

// SeamlessRequest is the provider's callback envelope. Amounts are
// integer cents on the wire. The transaction payload arrives either
// under "slot" or under a key named after game_type.
type SeamlessRequest struct {
	Method      string `json:"method"`
	AgentCode   string `json:"agent_code"`
	AgentSecret string `json:"agent_secret"`
	UserCode    string `json:"user_code"`
	GameType    string `json:"game_type"`

	Slot *SeamlessTxn `json:"slot"`

	raw map[string]json.RawMessage
}

// UnmarshalJSON keeps the raw body around so Txn can fall back to the
// game_type-keyed payload when "slot" is absent.
func (r *SeamlessRequest) UnmarshalJSON(data []byte) error {
	type alias SeamlessRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = SeamlessRequest(a)
	return json.Unmarshal(data, &r.raw)
}

// Txn returns the transaction payload, preferring "slot" over the
// game_type-keyed field.
func (r *SeamlessRequest) Txn() *SeamlessTxn {
	if r.Slot != nil {
		return r.Slot
	}
	if r.GameType == "" {
		return nil
	}
	rawTxn, ok := r.raw[r.GameType]
	if !ok {
		return nil
	}
	var txn SeamlessTxn
	if err := json.Unmarshal(rawTxn, &txn); err != nil {
		return nil
	}
	return &txn
}

// SeamlessTxn is one settlement inside a "transaction" callback.
// Providers vary between bet_money/win_money and bet/win field names;
// pointers distinguish absent from zero so parsing can fail loudly
// instead of defaulting an absent amount to 0.
type SeamlessTxn struct {
	TxnID        string `json:"txn_id"`
	TxnType      string `json:"txn_type"`
	ProviderCode string `json:"provider_code"`
	GameCode     string `json:"game_code"`
	BetMoney     *int64 `json:"bet_money"`
	Bet          *int64 `json:"bet"`
	WinMoney     *int64 `json:"win_money"`
	Win          *int64 `json:"win"`
}

func (t *SeamlessTxn) betCents() (int64, bool) {
	if t.BetMoney != nil {
		return *t.BetMoney, true
	}
	if t.Bet != nil {
		return *t.Bet, true
	}
	return 0, false
}

func (t *SeamlessTxn) winCents() (int64, bool) {
	if t.WinMoney != nil {
		return *t.WinMoney, true
	}
	if t.Win != nil {
		return *t.Win, true
	}
	return 0, false
}

// ToSettleInput canonicalizes the transaction for the engine. The
// amount fields required by the transaction kind must be present.
func (r *SeamlessRequest) ToSettleInput() (usecase.SettleInput, error) {
	txn := r.Txn()
	if txn == nil || txn.TxnID == "" {
		return usecase.SettleInput{}, domain.ErrInvalidRequest
	}

	kind := domain.EntryKind(txn.TxnType)
	if txn.TxnType == "" {
		kind = domain.EntryDebitCredit
	}
	if !kind.Valid() {
		return usecase.SettleInput{}, domain.ErrInvalidRequest
	}

	bet, hasBet := txn.betCents()
	win, hasWin := txn.winCents()

	switch kind {
	case domain.EntryDebit:
		if !hasBet {
			return usecase.SettleInput{}, domain.ErrInvalidRequest
		}
	case domain.EntryCredit:
		if !hasWin {
			return usecase.SettleInput{}, domain.ErrInvalidRequest
		}
	case domain.EntryDebitCredit:
		if !hasBet || !hasWin {
			return usecase.SettleInput{}, domain.ErrInvalidRequest
		}
	}

	return usecase.SettleInput{
		TxnID:        txn.TxnID,
		AccountID:    r.UserCode,
		Kind:         kind,
		BetCents:     bet,
		WinCents:     win,
		ProviderCode: txn.ProviderCode,
		GameCode:     txn.GameCode,
	}, nil
}

// SeamlessResponse is the provider's response envelope.
type SeamlessResponse struct {
	Status      int    `json:"status"`
	UserBalance *int64 `json:"user_balance,omitempty"`
	Msg         string `json:"msg,omitempty"`
}

// SeamlessOKBalance builds a success response carrying the balance.
func SeamlessOKBalance(balanceCents int64) SeamlessResponse {
	return SeamlessResponse{Status: SeamlessOK, UserBalance: &balanceCents}
}

// SeamlessError builds a failure response. A zero balance is included
// for the messages the provider expects one on.
func SeamlessError(msg string) SeamlessResponse {
	resp := SeamlessResponse{Status: SeamlessFailed, Msg: msg}
	if msg == MsgInvalidUser || msg == MsgInsufficientFunds {
		zero := int64(0)
		resp.UserBalance = &zero
	}
	return resp
}
