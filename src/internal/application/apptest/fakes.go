package apptest

import (
	"errors"
	"strings"
	"sync"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// PasswordHasher
// ===========================

// PlainHasher 以 "plain:" 前綴保存密碼的 PasswordHasher（只供測試）
type PlainHasher struct{}

func (PlainHasher) Hash(plain string) (string, error) {
	return "plain:" + plain, nil
}

func (PlainHasher) Verify(plain, encoded string) (bool, error) {
	stored, ok := strings.CutPrefix(encoded, "plain:")
	if !ok {
		return false, errors.New("malformed hash")
	}
	return stored == plain, nil
}

// ===========================
// EventPublisher
// ===========================

// Publisher 記錄所有發布事件的 EventPublisher
type Publisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *Publisher) Publish(event shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *Publisher) PublishBatch(events []shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

// Types 依發布順序返回事件類型
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

// Events 返回已發布事件的副本
func (p *Publisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

// ===========================
// Fixture
// ===========================

// Fixture 一組共用同一個 Store 的倉儲
type Fixture struct {
	Store       *Store
	Tx          *TxManager
	Users       *UserRepository
	QRCodes     *QRCodeRepository
	Scans       *ScanEventRepository
	Adjustments *AdjustmentRepository
	Hasher      PlainHasher
	Publisher   *Publisher
}

// NewFixture 建立空的測試環境
func NewFixture() *Fixture {
	store := NewStore()
	return &Fixture{
		Store:       store,
		Tx:          NewTxManager(store),
		Users:       NewUserRepository(store),
		QRCodes:     NewQRCodeRepository(store),
		Scans:       NewScanEventRepository(store),
		Adjustments: NewAdjustmentRepository(store),
		Publisher:   &Publisher{},
	}
}

// SeedUser 直接建立使用者，返回其呼叫者身分
func (f *Fixture) SeedUser(name, email string, role user.Role) user.Caller {
	u, err := user.NewUser(name, user.MustEmail(email), role, "plain:secret")
	if err != nil {
		panic(err)
	}
	if err := f.Users.Save(nil, u); err != nil {
		panic(err)
	}
	return u.AsCaller()
}
