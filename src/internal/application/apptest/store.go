// Package apptest 提供 Application Layer 測試用的記憶體實作。
//
// 所有倉儲共用同一個 Store；TransactionManager 以快照實作回滾，
// 讓 use case 測試可以驗證「失敗時不留下任何變更」。
package apptest

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// ===========================
// Store
// ===========================

type userRow struct {
	seq       int
	name      string
	role      string
	points    int
	hash      string
	createdAt time.Time
	updatedAt time.Time
	version   int
}

type codeRow struct {
	seq       int
	name      string
	tags      []string
	mode      string
	points    int
	status    string
	owner     string
	createdAt time.Time
	updatedAt time.Time
}

type state struct {
	users       map[string]userRow
	userSeq     int
	codes       map[string]codeRow
	maxCodeSeq  int
	scans       []*ledger.ScanEvent
	adjustments []*ledger.Adjustment
}

func (s state) clone() state {
	return state{
		users:       maps.Clone(s.users),
		userSeq:     s.userSeq,
		codes:       maps.Clone(s.codes),
		maxCodeSeq:  s.maxCodeSeq,
		scans:       slices.Clone(s.scans),
		adjustments: slices.Clone(s.adjustments),
	}
}

// Store 記憶體資料庫
type Store struct {
	txMu sync.Mutex // 序列化事務
	mu   sync.Mutex // 保護 data 與故障注入計數
	data state

	failUpdates      int
	duplicateOnSave  int
	competitorSeq    int // 模擬其他請求已提交使用的序號；不受回滾影響
	failScanAppends  int
	committedTxCount int
}

// NewStore 建立空的 Store
func NewStore() *Store {
	return &Store{
		data: state{
			users: make(map[string]userRow),
			codes: make(map[string]codeRow),
		},
	}
}

// FailNextUserUpdates 接下來 n 次 UserRepository.Update 返回 shared.ErrConcurrentUpdate
func (s *Store) FailNextUserUpdates(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUpdates = n
}

// DuplicateNextCodeSaves 接下來 n 次 QRCodeRepository.Save 返回 ErrDuplicateCodeID
func (s *Store) DuplicateNextCodeSaves(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duplicateOnSave = n
}

// FailNextScanAppends 接下來 n 次 ScanEventRepository.Append 返回 shared.ErrRepository
func (s *Store) FailNextScanAppends(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failScanAppends = n
}

// CommittedTransactions 已提交的事務數量
func (s *Store) CommittedTransactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committedTxCount
}

// ScanEventCount 目前的掃描事件數量
func (s *Store) ScanEventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.scans)
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

func (s *Store) restore(snap state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snap
}

// ===========================
// TransactionManager
// ===========================

type txToken struct{}

// TxManager 以 Store 快照實作的 shared.TransactionManager
type TxManager struct {
	store *Store
}

// NewTxManager 建立事務管理器
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// InTransaction fn 返回錯誤或 panic 時還原到事務開始前的狀態
func (m *TxManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	defer func() {
		if r := recover(); r != nil {
			m.store.restore(snap)
			panic(r)
		}
	}()

	if err := fn(txToken{}); err != nil {
		m.store.restore(snap)
		return err
	}

	m.store.mu.Lock()
	m.store.committedTxCount++
	m.store.mu.Unlock()
	return nil
}

// Reader 記憶體實作不需要連線，返回 nil
func (m *TxManager) Reader(context.Context) shared.TransactionContext {
	return nil
}
