package scan

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// 掃描流程狀態機
// ===========================

// State 掃描流程狀態
//
//	Submitted → Validated → Credited → Recorded
//	Submitted / Validated → Rejected
type State string

const (
	StateSubmitted State = "submitted"
	StateValidated State = "validated"
	StateCredited  State = "credited"
	StateRecorded  State = "recorded"
	StateRejected  State = "rejected"
)

// Award 一位受益者的給點結果
type Award struct {
	Email   user.Email
	Points  int
	EventID string
}

// Result 掃描成功的結果
type Result struct {
	QRCodeID     qrcode.CodeID
	Caller       user.Email
	Awards       []Award
	TotalAwarded int
	ScannedAt    time.Time
}

// Attempt 一次掃描嘗試
//
// 每個 Attempt 只跑一次流程；重試時建立新的 Attempt。
type Attempt struct {
	shared.EventRecorder

	codeID  qrcode.CodeID
	caller  user.Caller
	state   State
	reason  error
	code    *qrcode.QRCode
	targets []user.Email
	awards  []Award
	at      time.Time
}

// Submit 建立掃描嘗試
//
// QR Code ID 為空白時返回已拒絕的 Attempt 與 ErrEmptyCodeID。
func Submit(rawCodeID string, caller user.Caller, at time.Time) (*Attempt, error) {
	a := &Attempt{caller: caller, state: StateSubmitted, at: at.UTC()}

	id, err := qrcode.NewCodeID(rawCodeID)
	if err != nil {
		return a, a.Reject(err)
	}
	a.codeID = id
	return a, nil
}

// Validate 以查詢結果驗證 QR Code
//
// code 為 nil 表示不存在 → ErrScanCodeNotFound；停用 → ErrCodeInactive。
// 兩者都會讓 Attempt 進入 Rejected 並返回該錯誤。
func (a *Attempt) Validate(code *qrcode.QRCode) error {
	if a.state != StateSubmitted {
		return a.illegal(StateValidated)
	}
	if code == nil {
		return a.Reject(qrcode.ErrScanCodeNotFound.WithContext("qr_code_id", a.codeID.String()))
	}
	if err := code.EnsureScannable(); err != nil {
		return a.Reject(err)
	}

	a.code = code
	a.targets = code.AwardTargets(a.caller.Email)
	a.state = StateValidated
	return nil
}

// AddAward 記錄一位受益者已入帳並寫入帳本
func (a *Attempt) AddAward(email user.Email, eventID string) error {
	if a.state != StateValidated && a.state != StateCredited {
		return a.illegal(StateCredited)
	}
	if len(a.awards) >= len(a.targets) {
		return ErrIllegalTransition.WithContext("reason", "more awards than targets")
	}
	a.awards = append(a.awards, Award{
		Email:   email,
		Points:  a.code.Points().Value(),
		EventID: eventID,
	})
	a.state = StateCredited
	return nil
}

// Complete 所有受益者都已入帳，流程結束
func (a *Attempt) Complete() (Result, error) {
	if a.state != StateCredited {
		return Result{}, a.illegal(StateRecorded)
	}
	if len(a.awards) != len(a.targets) {
		return Result{}, ErrIllegalTransition.WithContext(
			"reason", "not every target was credited",
			"awards", len(a.awards),
			"targets", len(a.targets),
		)
	}

	a.state = StateRecorded
	result := Result{
		QRCodeID:  a.codeID,
		Caller:    a.caller.Email,
		Awards:    append([]Award(nil), a.awards...),
		ScannedAt: a.at,
	}
	for _, award := range a.awards {
		result.TotalAwarded += award.Points
	}
	a.Record(NewScanCompletedEvent(result))
	return result, nil
}

// Reject 拒絕本次掃描
//
// 只能在 Submitted / Validated 狀態拒絕；返回 reason 本身方便呼叫端直接 return。
func (a *Attempt) Reject(reason error) error {
	if a.state != StateSubmitted && a.state != StateValidated {
		return a.illegal(StateRejected)
	}
	a.state = StateRejected
	a.reason = reason
	a.Record(NewScanRejectedEvent(a.codeID, a.caller.Email, reason, a.at))
	return reason
}

func (a *Attempt) illegal(to State) error {
	return ErrIllegalTransition.WithContext("from", string(a.state), "to", string(to))
}

// ===========================
// Getters
// ===========================

func (a *Attempt) CodeID() qrcode.CodeID { return a.codeID }
func (a *Attempt) Caller() user.Caller   { return a.caller }
func (a *Attempt) State() State          { return a.state }
func (a *Attempt) Reason() error         { return a.reason }
func (a *Attempt) Code() *qrcode.QRCode  { return a.code }
func (a *Attempt) At() time.Time         { return a.at }

// Targets 返回受益者清單（副本）
func (a *Attempt) Targets() []user.Email {
	return append([]user.Email(nil), a.targets...)
}
