// Package mocks provides hand-rolled fakes for the usecase interfaces.
// Each fake is backed by an in-memory map and every method can be
// overridden through its corresponding Func field.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

// MockTransaction is a no-op transaction that reports back to its
// manager so the manager can emulate lock release on commit/rollback.
type MockTransaction struct {
	manager *MockTransactionManager
	done    sync.Once
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.release()
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	t.release()
	return nil
}

func (t *MockTransaction) release() {
	t.done.Do(func() {
		if t.manager != nil && t.manager.Serialize {
			t.manager.mu.Unlock()
		}
	})
}

// MockTransactionManager hands out MockTransactions. With Serialize set
// it holds a mutex from Begin until Commit/Rollback, emulating the
// row-lock serialization the real store provides.
type MockTransactionManager struct {
	mu        sync.Mutex
	Serialize bool

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	if m.Serialize {
		m.mu.Lock()
	}
	return &MockTransaction{manager: m}, nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByReferralCodeFunc func(ctx context.Context, code string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateBalancesFunc    func(ctx context.Context, tx usecase.Transaction, account *domain.Account, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly, bypassing any Func override.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
}

// Stored returns the stored state of an account.
func (m *MockAccountRepository) Stored(id string) *domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp
	}
	return nil
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.Seed(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	if a := m.Stored(id); a != nil {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByReferralCodeFunc != nil {
		return m.GetByReferralCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.ReferralCode == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.Account, updatedAt time.Time) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, account, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	cp.Version++
	cp.UpdatedAt = updatedAt
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		cp := *a
		accounts = append(accounts, &cp)
	}
	return accounts, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByTxnIDFunc    func(ctx context.Context, txnID string) (*domain.LedgerEntry, error)
	GetByTxnIDTxFunc  func(ctx context.Context, tx usecase.Transaction, txnID string) (*domain.LedgerEntry, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{entries: make(map[string]*domain.LedgerEntry)}
}

// Count returns the number of stored entries.
func (m *MockLedgerRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MockLedgerRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.TxnID]; ok {
		return domain.ErrDuplicateTransaction
	}
	cp := *entry
	m.entries[entry.TxnID] = &cp
	return nil
}

func (m *MockLedgerRepository) GetByTxnID(ctx context.Context, txnID string) (*domain.LedgerEntry, error) {
	if m.GetByTxnIDFunc != nil {
		return m.GetByTxnIDFunc(ctx, txnID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[txnID]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockLedgerRepository) GetByTxnIDTx(ctx context.Context, tx usecase.Transaction, txnID string) (*domain.LedgerEntry, error) {
	if m.GetByTxnIDTxFunc != nil {
		return m.GetByTxnIDTxFunc(ctx, tx, txnID)
	}
	return m.GetByTxnID(ctx, txnID)
}

func (m *MockLedgerRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			cp := *e
			entries = append(entries, &cp)
		}
	}
	return entries, nil
}

// MockAffiliateRepository is a mock implementation of AffiliateRepository.
type MockAffiliateRepository struct {
	mu       sync.RWMutex
	deposits map[string]*domain.AffiliateDeposit

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, dep *domain.AffiliateDeposit) error
	GetByPaymentIDFunc  func(ctx context.Context, tx usecase.Transaction, paymentID string) (*domain.AffiliateDeposit, error)
	CountByReferredFunc func(ctx context.Context, tx usecase.Transaction, referredID string) (int, error)
}

func NewMockAffiliateRepository() *MockAffiliateRepository {
	return &MockAffiliateRepository{deposits: make(map[string]*domain.AffiliateDeposit)}
}

func (m *MockAffiliateRepository) Create(ctx context.Context, tx usecase.Transaction, dep *domain.AffiliateDeposit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, dep)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deposits[dep.PaymentID]; ok {
		return domain.ErrDuplicateTransaction
	}
	cp := *dep
	m.deposits[dep.PaymentID] = &cp
	return nil
}

func (m *MockAffiliateRepository) GetByPaymentID(ctx context.Context, tx usecase.Transaction, paymentID string) (*domain.AffiliateDeposit, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, tx, paymentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.deposits[paymentID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockAffiliateRepository) CountByReferred(ctx context.Context, tx usecase.Transaction, referredID string) (int, error) {
	if m.CountByReferredFunc != nil {
		return m.CountByReferredFunc(ctx, tx, referredID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, d := range m.deposits {
		if d.ReferredID == referredID {
			count++
		}
	}
	return count, nil
}

func (m *MockAffiliateRepository) ListByAffiliate(ctx context.Context, affiliateID string, limit, offset int) ([]*domain.AffiliateDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var deps []*domain.AffiliateDeposit
	for _, d := range m.deposits {
		if d.AffiliateID == affiliateID {
			cp := *d
			deps = append(deps, &cp)
		}
	}
	return deps, nil
}

// MockReferralRepository is a mock implementation of ReferralRepository.
type MockReferralRepository struct {
	mu        sync.RWMutex
	referrals map[string]*domain.Referral // keyed by referred ID

	GetByReferredFunc            func(ctx context.Context, referredID string) (*domain.Referral, error)
	CountQualifiedByReferrerFunc func(ctx context.Context, referrerID string) (int, error)
}

func NewMockReferralRepository() *MockReferralRepository {
	return &MockReferralRepository{referrals: make(map[string]*domain.Referral)}
}

func (m *MockReferralRepository) Seed(referral *domain.Referral) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *referral
	m.referrals[referral.ReferredID] = &cp
}

func (m *MockReferralRepository) Stored(referredID string) *domain.Referral {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.referrals[referredID]; ok {
		cp := *r
		return &cp
	}
	return nil
}

func (m *MockReferralRepository) Create(ctx context.Context, referral *domain.Referral) error {
	m.Seed(referral)
	return nil
}

func (m *MockReferralRepository) GetByReferred(ctx context.Context, referredID string) (*domain.Referral, error) {
	if m.GetByReferredFunc != nil {
		return m.GetByReferredFunc(ctx, referredID)
	}
	if r := m.Stored(referredID); r != nil {
		return r, nil
	}
	return nil, domain.ErrReferralNotFound
}

func (m *MockReferralRepository) GetByReferredForUpdate(ctx context.Context, tx usecase.Transaction, referredID string) (*domain.Referral, error) {
	return m.GetByReferred(ctx, referredID)
}

func (m *MockReferralRepository) Update(ctx context.Context, tx usecase.Transaction, referral *domain.Referral) error {
	m.Seed(referral)
	return nil
}

func (m *MockReferralRepository) CountQualifiedByReferrer(ctx context.Context, referrerID string) (int, error) {
	if m.CountQualifiedByReferrerFunc != nil {
		return m.CountQualifiedByReferrerFunc(ctx, referrerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, r := range m.referrals {
		if r.ReferrerID == referrerID && r.Status != domain.ReferralPending {
			count++
		}
	}
	return count, nil
}

func (m *MockReferralRepository) ListByReferrer(ctx context.Context, referrerID string, limit, offset int) ([]*domain.Referral, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var referrals []*domain.Referral
	for _, r := range m.referrals {
		if r.ReferrerID == referrerID {
			cp := *r
			referrals = append(referrals, &cp)
		}
	}
	return referrals, nil
}

// MockChestRepository is a mock implementation of ChestRepository.
type MockChestRepository struct {
	mu     sync.RWMutex
	chests map[string]*domain.Chest
}

func NewMockChestRepository() *MockChestRepository {
	return &MockChestRepository{chests: make(map[string]*domain.Chest)}
}

func (m *MockChestRepository) Seed(chest *domain.Chest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *chest
	m.chests[chest.ID] = &cp
}

func (m *MockChestRepository) Stored(id string) *domain.Chest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.chests[id]; ok {
		cp := *c
		return &cp
	}
	return nil
}

func (m *MockChestRepository) Create(ctx context.Context, chest *domain.Chest) error {
	m.Seed(chest)
	return nil
}

func (m *MockChestRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Chest, error) {
	if c := m.Stored(id); c != nil {
		return c, nil
	}
	return nil, domain.ErrChestNotFound
}

func (m *MockChestRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Chest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var chests []*domain.Chest
	for _, c := range m.chests {
		if c.AccountID == accountID {
			cp := *c
			chests = append(chests, &cp)
		}
	}
	return chests, nil
}

func (m *MockChestRepository) Update(ctx context.Context, tx usecase.Transaction, chest *domain.Chest) error {
	m.Seed(chest)
	return nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	GetByGatewayRefForUpdateFunc func(ctx context.Context, tx usecase.Transaction, gatewayRef string) (*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (m *MockPaymentRepository) Seed(payment *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *payment
	m.payments[payment.ID] = &cp
}

func (m *MockPaymentRepository) Stored(id string) *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	m.Seed(payment)
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if p := m.Stored(id); p != nil {
		return p, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) GetByGatewayRefForUpdate(ctx context.Context, tx usecase.Transaction, gatewayRef string) (*domain.Payment, error) {
	if m.GetByGatewayRefForUpdateFunc != nil {
		return m.GetByGatewayRefForUpdateFunc(ctx, tx, gatewayRef)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.GatewayRef == gatewayRef {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus, confirmedAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.Status = status
	p.ConfirmedAt = confirmedAt
	return nil
}

func (m *MockPaymentRepository) SetGatewayRef(ctx context.Context, id, gatewayRef, qrCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.GatewayRef = gatewayRef
	p.QRCode = qrCode
	return nil
}

func (m *MockPaymentRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.AccountID == accountID {
			cp := *p
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}

// MockWebhookRepository is a mock implementation of WebhookRepository.
type MockWebhookRepository struct {
	mu     sync.Mutex
	events []*domain.WebhookEvent
}

func NewMockWebhookRepository() *MockWebhookRepository {
	return &MockWebhookRepository{}
}

func (m *MockWebhookRepository) Create(ctx context.Context, event *domain.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *event
	m.events = append(m.events, &cp)
	return nil
}

func (m *MockWebhookRepository) MarkProcessed(ctx context.Context, id string, processedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Processed = true
			e.ProcessedAt = &processedAt
		}
	}
	return nil
}

// Events returns the recorded events.
func (m *MockWebhookRepository) Events() []*domain.WebhookEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.WebhookEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockConfigRepository is a mock implementation of ConfigRepository.
type MockConfigRepository struct {
	mu  sync.RWMutex
	cfg *domain.PlatformConfig

	GetFunc func(ctx context.Context) (*domain.PlatformConfig, error)
}

func NewMockConfigRepository(cfg *domain.PlatformConfig) *MockConfigRepository {
	if cfg == nil {
		cfg = &domain.PlatformConfig{}
	}
	return &MockConfigRepository{cfg: cfg}
}

func (m *MockConfigRepository) Get(ctx context.Context) (*domain.PlatformConfig, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := *m.cfg
	return &cp, nil
}

func (m *MockConfigRepository) Update(ctx context.Context, cfg *domain.PlatformConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cfg
	m.cfg = &cp
	return nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	counter atomic.Int64

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return fmt.Sprintf("id-%d", m.counter.Add(1))
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockPixGateway is a mock implementation of PixGateway.
type MockPixGateway struct {
	GeneratePixFunc func(ctx context.Context, input usecase.PixChargeInput) (*usecase.PixCharge, error)
	SendPixFunc     func(ctx context.Context, input usecase.PixPayoutInput) (*usecase.PixPayout, error)
}

func NewMockPixGateway() *MockPixGateway {
	return &MockPixGateway{}
}

func (m *MockPixGateway) GeneratePix(ctx context.Context, input usecase.PixChargeInput) (*usecase.PixCharge, error) {
	if m.GeneratePixFunc != nil {
		return m.GeneratePixFunc(ctx, input)
	}
	return &usecase.PixCharge{GatewayRef: "gw-ref", QRCode: "qr-code"}, nil
}

func (m *MockPixGateway) SendPix(ctx context.Context, input usecase.PixPayoutInput) (*usecase.PixPayout, error) {
	if m.SendPixFunc != nil {
		return m.SendPixFunc(ctx, input)
	}
	return &usecase.PixPayout{GatewayRef: "gw-ref"}, nil
}

// MockGameProvider is a mock implementation of GameProvider.
type MockGameProvider struct {
	CreateUserFunc func(ctx context.Context, userCode string) error
	LaunchGameFunc func(ctx context.Context, userCode, providerCode, gameCode, lang string) (string, error)
}

func NewMockGameProvider() *MockGameProvider {
	return &MockGameProvider{}
}

func (m *MockGameProvider) CreateUser(ctx context.Context, userCode string) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, userCode)
	}
	return nil
}

func (m *MockGameProvider) LaunchGame(ctx context.Context, userCode, providerCode, gameCode, lang string) (string, error) {
	if m.LaunchGameFunc != nil {
		return m.LaunchGameFunc(ctx, userCode, providerCode, gameCode, lang)
	}
	return "https://games.example/launch", nil
}
