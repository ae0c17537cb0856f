package apptest

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// UserRepository
// ===========================

// UserRepository 記憶體版 user.UserRepository
type UserRepository struct{ store *Store }

// NewUserRepository 建立使用者倉儲
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Save(_ shared.TransactionContext, u *user.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := u.Email().String()
	if _, ok := s.data.users[key]; ok {
		return user.ErrDuplicateEmail.WithContext("email", key)
	}
	s.data.userSeq++
	s.data.users[key] = userRow{
		seq:       s.data.userSeq,
		name:      u.Name(),
		role:      u.Role().String(),
		points:    u.Points().Value(),
		hash:      u.CredentialHash(),
		createdAt: u.CreatedAt(),
		updatedAt: u.UpdatedAt(),
		version:   u.Version(),
	}
	return nil
}

func (r *UserRepository) Update(_ shared.TransactionContext, u *user.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := u.Email().String()
	row, ok := s.data.users[key]
	if !ok {
		return user.ErrUserNotFound.WithContext("email", key)
	}
	if s.failUpdates > 0 {
		s.failUpdates--
		return shared.ErrConcurrentUpdate.WithContext("email", key)
	}
	if row.version != u.Version() {
		return shared.ErrConcurrentUpdate.WithContext("email", key, "expected_version", u.Version())
	}
	row.points = u.Points().Value()
	row.updatedAt = u.UpdatedAt()
	row.version++
	s.data.users[key] = row
	return nil
}

func (r *UserRepository) FindByEmail(_ shared.TransactionContext, email user.Email) (*user.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.data.users[email.String()]
	if !ok {
		return nil, user.ErrUserNotFound.WithContext("email", email.String())
	}
	return toUser(email.String(), row), nil
}

func (r *UserRepository) List(_ shared.TransactionContext, role *user.Role) ([]*user.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := slices.SortedFunc(maps.Keys(s.data.users), func(a, b string) int {
		return cmp.Compare(s.data.users[a].seq, s.data.users[b].seq)
	})
	result := make([]*user.User, 0, len(keys))
	for _, k := range keys {
		row := s.data.users[k]
		if role != nil && row.role != role.String() {
			continue
		}
		result = append(result, toUser(k, row))
	}
	return result, nil
}

func toUser(email string, row userRow) *user.User {
	balance, _ := points.NewPointsAmount(row.points)
	return user.ReconstructUser(
		user.MustEmail(email),
		row.name,
		user.Role(row.role),
		balance,
		row.hash,
		row.createdAt,
		row.updatedAt,
		row.version,
	)
}

// PointsOf 直接讀取儲存的餘額（測試斷言用）；使用者不存在時返回 -1
func (s *Store) PointsOf(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.data.users[email]
	if !ok {
		return -1
	}
	return row.points
}

// ===========================
// QRCodeRepository
// ===========================

// QRCodeRepository 記憶體版 qrcode.QRCodeRepository
type QRCodeRepository struct{ store *Store }

// NewQRCodeRepository 建立 QR Code 倉儲
func NewQRCodeRepository(store *Store) *QRCodeRepository {
	return &QRCodeRepository{store: store}
}

func (r *QRCodeRepository) NextSequence(shared.TransactionContext) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(s.data.maxCodeSeq, s.competitorSeq) + 1, nil
}

func (r *QRCodeRepository) Save(_ shared.TransactionContext, code *qrcode.QRCode) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := code.ID().String()
	if s.duplicateOnSave > 0 {
		s.duplicateOnSave--
		// 模擬另一個請求搶先提交了這個序號
		s.competitorSeq = max(s.competitorSeq, code.Sequence())
		return qrcode.ErrDuplicateCodeID.WithContext("qr_code_id", key)
	}
	if _, ok := s.data.codes[key]; ok || code.Sequence() <= max(s.data.maxCodeSeq, s.competitorSeq) {
		return qrcode.ErrDuplicateCodeID.WithContext("qr_code_id", key)
	}
	s.data.codes[key] = codeRow{
		seq:       code.Sequence(),
		name:      code.Name(),
		tags:      code.Tags().Values(),
		mode:      code.Mode().String(),
		points:    code.Points().Value(),
		status:    code.Status().String(),
		owner:     code.Owner().String(),
		createdAt: code.CreatedAt(),
		updatedAt: code.UpdatedAt(),
	}
	s.data.maxCodeSeq = code.Sequence()
	return nil
}

func (r *QRCodeRepository) FindByID(_ shared.TransactionContext, id qrcode.CodeID) (*qrcode.QRCode, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.data.codes[id.String()]
	if !ok {
		return nil, qrcode.ErrQRCodeNotFound.WithContext("qr_code_id", id.String())
	}
	return toQRCode(id, row), nil
}

func (r *QRCodeRepository) UpdateStatus(_ shared.TransactionContext, code *qrcode.QRCode) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := code.ID().String()
	row, ok := s.data.codes[key]
	if !ok {
		return qrcode.ErrQRCodeNotFound.WithContext("qr_code_id", key)
	}
	row.status = code.Status().String()
	row.updatedAt = code.UpdatedAt()
	s.data.codes[key] = row
	return nil
}

func (r *QRCodeRepository) Delete(_ shared.TransactionContext, id qrcode.CodeID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.codes[id.String()]; !ok {
		return qrcode.ErrQRCodeNotFound.WithContext("qr_code_id", id.String())
	}
	delete(s.data.codes, id.String())
	return nil
}

func (r *QRCodeRepository) List(_ shared.TransactionContext, mode *qrcode.Mode) ([]*qrcode.QRCode, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := slices.SortedFunc(maps.Keys(s.data.codes), func(a, b string) int {
		return cmp.Compare(s.data.codes[a].seq, s.data.codes[b].seq)
	})
	result := make([]*qrcode.QRCode, 0, len(keys))
	for _, k := range keys {
		row := s.data.codes[k]
		if mode != nil && row.mode != mode.String() {
			continue
		}
		result = append(result, toQRCode(qrcode.MustCodeID(k), row))
	}
	return result, nil
}

func toQRCode(id qrcode.CodeID, row codeRow) *qrcode.QRCode {
	amount, _ := points.NewPointsAmount(row.points)
	return qrcode.ReconstructQRCode(
		id,
		row.seq,
		row.name,
		qrcode.NewTags(row.tags),
		qrcode.Mode(row.mode),
		amount,
		qrcode.Status(row.status),
		user.MustEmail(row.owner),
		row.createdAt,
		row.updatedAt,
	)
}

// ===========================
// ScanEventRepository
// ===========================

// ScanEventRepository 記憶體版 ledger.ScanEventRepository
type ScanEventRepository struct{ store *Store }

// NewScanEventRepository 建立掃描事件倉儲
func NewScanEventRepository(store *Store) *ScanEventRepository {
	return &ScanEventRepository{store: store}
}

func (r *ScanEventRepository) Append(_ shared.TransactionContext, event *ledger.ScanEvent) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failScanAppends > 0 {
		s.failScanAppends--
		return shared.ErrRepository.WithContext("operation", "append scan event")
	}
	s.data.scans = append(s.data.scans, event)
	return nil
}

func (r *ScanEventRepository) HistoryFor(_ shared.TransactionContext, email user.Email) iter.Seq2[*ledger.ScanEvent, error] {
	return func(yield func(*ledger.ScanEvent, error) bool) {
		for _, e := range r.matching(ledger.ScanFilter{ScannerEmail: email}) {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (r *ScanEventRepository) TotalPointsFor(_ shared.TransactionContext, email user.Email) (int64, error) {
	var total int64
	for _, e := range r.matching(ledger.ScanFilter{ScannerEmail: email}) {
		total += int64(e.Points())
	}
	return total, nil
}

func (r *ScanEventRepository) List(_ shared.TransactionContext, filter ledger.ScanFilter) ([]*ledger.ScanEvent, error) {
	return r.matching(filter), nil
}

func (r *ScanEventRepository) SummaryFor(_ shared.TransactionContext, email user.Email) (ledger.Summary, error) {
	events := r.matching(ledger.ScanFilter{ScannerEmail: email})
	var total int64
	for _, e := range events {
		total += int64(e.Points())
	}
	var last *time.Time
	if len(events) > 0 {
		t := events[0].ScannedAt()
		last = &t
	}
	return ledger.NewSummary(email, int64(len(events)), total, last), nil
}

func (r *ScanEventRepository) LastScanAt(_ shared.TransactionContext, caller user.Email, id qrcode.CodeID) (*time.Time, error) {
	for _, e := range r.matching(ledger.ScanFilter{QRCodeID: id}) {
		if e.CallerEmail().Equals(caller) {
			t := e.ScannedAt()
			return &t, nil
		}
	}
	return nil, nil
}

// matching 依時間倒序返回符合條件的事件
func (r *ScanEventRepository) matching(filter ledger.ScanFilter) []*ledger.ScanEvent {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*ledger.ScanEvent
	for _, e := range s.data.scans {
		if !filter.ScannerEmail.IsZero() && !e.ScannerEmail().Equals(filter.ScannerEmail) {
			continue
		}
		if !filter.QRCodeID.IsZero() && !e.QRCodeID().Equals(filter.QRCodeID) {
			continue
		}
		result = append(result, e)
	}
	slices.SortStableFunc(result, func(a, b *ledger.ScanEvent) int {
		if c := b.ScannedAt().Compare(a.ScannedAt()); c != 0 {
			return c
		}
		return b.ID().Compare(a.ID())
	})
	return result
}

// ===========================
// AdjustmentRepository
// ===========================

// AdjustmentRepository 記憶體版 ledger.AdjustmentRepository
type AdjustmentRepository struct{ store *Store }

// NewAdjustmentRepository 建立調整記錄倉儲
func NewAdjustmentRepository(store *Store) *AdjustmentRepository {
	return &AdjustmentRepository{store: store}
}

func (r *AdjustmentRepository) Append(_ shared.TransactionContext, a *ledger.Adjustment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.adjustments = append(s.data.adjustments, a)
	return nil
}

func (r *AdjustmentRepository) TotalFor(_ shared.TransactionContext, email user.Email) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, a := range s.data.adjustments {
		if a.UserEmail().Equals(email) {
			total += int64(a.Applied())
		}
	}
	return total, nil
}

func (r *AdjustmentRepository) ListFor(_ shared.TransactionContext, email user.Email) ([]*ledger.Adjustment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*ledger.Adjustment
	for i := len(s.data.adjustments) - 1; i >= 0; i-- {
		if a := s.data.adjustments[i]; a.UserEmail().Equals(email) {
			result = append(result, a)
		}
	}
	return result, nil
}
