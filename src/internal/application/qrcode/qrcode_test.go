package qrcode

import (
	"context"
	"testing"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/application/apptest"
	"github.com/jackyeh168/qr_points/src/internal/application/retry"
	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = retry.Policy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

type env struct {
	f       *apptest.Fixture
	admin   user.Caller
	scanner user.Caller
	create  *CreateUseCaseImpl
	status  *SetStatusUseCaseImpl
	del     *DeleteUseCaseImpl
	query   *QueryService
}

func newEnv() *env {
	f := apptest.NewFixture()
	return &env{
		f:       f,
		admin:   f.SeedUser("Admin", "admin@example.com", user.RoleAdmin),
		scanner: f.SeedUser("Bob", "bob@example.com", user.RoleScanner),
		create:  NewCreateUseCase(f.QRCodes, f.Users, f.Tx, f.Publisher, fastRetry),
		status:  NewSetStatusUseCase(f.QRCodes, f.Tx, f.Publisher),
		del:     NewDeleteUseCase(f.QRCodes, f.Tx, f.Publisher),
		query:   NewQueryService(f.QRCodes, f.Tx),
	}
}

// ===========================
// Create
// ===========================

func TestCreateUseCase_Execute_Success(t *testing.T) {
	// Arrange
	e := newEnv()

	// Act
	result, err := e.create.Execute(context.Background(), CreateCommand{
		Actor:  e.admin,
		Name:   "Daily",
		Tags:   []string{"promo", " daily ", "promo"},
		Mode:   "Scanner",
		Points: 10,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "QR001", result.ID)
	assert.Equal(t, "scanner", result.Mode)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, []string{"daily", "promo"}, result.Tags)
	assert.Equal(t, "admin@example.com", result.OwnerEmail, "未指定擁有者時預設為建立者")
	assert.Equal(t, []string{qrcode.EventTypeQRCodeCreated}, e.f.Publisher.Types())
}

func TestCreateUseCase_Execute_SequentialIDs(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	first, err := e.create.Execute(ctx, CreateCommand{Actor: e.admin, Name: "A", Mode: "scanner", Points: 1})
	require.NoError(t, err)
	require.NoError(t, e.del.Execute(ctx, DeleteCommand{Actor: e.admin, ID: first.ID}))
	second, err := e.create.Execute(ctx, CreateCommand{Actor: e.admin, Name: "B", Mode: "scanner", Points: 1})
	require.NoError(t, err)

	assert.Equal(t, "QR001", first.ID)
	assert.Equal(t, "QR002", second.ID, "已刪除的 ID 不會被重複使用")
}

func TestCreateUseCase_Execute_RetriesOnDuplicateID(t *testing.T) {
	// Arrange
	e := newEnv()
	e.f.Store.DuplicateNextCodeSaves(1)
	before := e.f.Store.CommittedTransactions()

	// Act
	result, err := e.create.Execute(context.Background(), CreateCommand{
		Actor: e.admin, Name: "Daily", Mode: "both", Points: 5,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "QR002", result.ID, "被搶走的序號不會再被使用")
	assert.Equal(t, 1, e.f.Store.CommittedTransactions()-before, "第一次嘗試已回滾")

	codes, err := e.query.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "QR002", codes[0].ID)
}

func TestCreateUseCase_Execute_Errors(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name     string
		cmd      CreateCommand
		wantErr  error
		wantKind shared.ErrorKind
	}{
		{"非管理員", CreateCommand{Actor: e.scanner, Name: "X", Mode: "scanner"}, shared.ErrForbidden, shared.KindForbidden},
		{"空白名稱", CreateCommand{Actor: e.admin, Name: " ", Mode: "scanner"}, qrcode.ErrInvalidName, shared.KindInvalidInput},
		{"負數點數", CreateCommand{Actor: e.admin, Name: "X", Mode: "scanner", Points: -1}, points.ErrNegativePointsAmount, shared.KindInvalidInput},
		{"點數超過上限", CreateCommand{Actor: e.admin, Name: "X", Mode: "scanner", Points: points.MaxAmount + 1}, points.ErrAmountTooLarge, shared.KindInvalidInput},
		{"未知模式", CreateCommand{Actor: e.admin, Name: "X", Mode: "everyone"}, qrcode.ErrInvalidMode, shared.KindInvalidInput},
		{"擁有者不存在", CreateCommand{Actor: e.admin, Name: "X", Mode: "give_to_owner", OwnerEmail: "ghost@example.com"}, user.ErrUserNotFound, shared.KindNotFound},
		{"擁有者 email 格式錯誤", CreateCommand{Actor: e.admin, Name: "X", Mode: "scanner", OwnerEmail: "nope"}, user.ErrInvalidEmail, shared.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.create.Execute(context.Background(), tt.cmd)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, shared.KindOf(err))
		})
	}

	codes, err := e.query.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, codes, "失敗的建立不應留下任何 QR Code")
}

// ===========================
// Set Status
// ===========================

func TestSetStatusUseCase_Execute_Idempotent(t *testing.T) {
	// Arrange
	e := newEnv()
	ctx := context.Background()
	created, err := e.create.Execute(ctx, CreateCommand{Actor: e.admin, Name: "Daily", Mode: "scanner", Points: 10})
	require.NoError(t, err)

	// Act
	first, err1 := e.status.Execute(ctx, SetStatusCommand{Actor: e.admin, ID: "qr001", Status: "inactive"})
	second, err2 := e.status.Execute(ctx, SetStatusCommand{Actor: e.admin, ID: created.ID, Status: "INACTIVE"})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, "inactive", first.Status)
	assert.Equal(t, "inactive", second.Status)
	assert.Equal(t, []string{qrcode.EventTypeQRCodeCreated, qrcode.EventTypeQRCodeStatusChanged}, e.f.Publisher.Types(),
		"重複設定相同狀態不產生事件")
}

func TestSetStatusUseCase_Execute_Errors(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.create.Execute(ctx, CreateCommand{Actor: e.admin, Name: "Daily", Mode: "scanner", Points: 10})
	require.NoError(t, err)

	_, err = e.status.Execute(ctx, SetStatusCommand{Actor: e.admin, ID: "QR404", Status: "inactive"})
	assert.ErrorIs(t, err, qrcode.ErrQRCodeNotFound)

	_, err = e.status.Execute(ctx, SetStatusCommand{Actor: e.admin, ID: "QR001", Status: "paused"})
	assert.ErrorIs(t, err, qrcode.ErrInvalidStatus)

	_, err = e.status.Execute(ctx, SetStatusCommand{Actor: e.scanner, ID: "QR001", Status: "inactive"})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = e.status.Execute(ctx, SetStatusCommand{Actor: e.admin, ID: "  ", Status: "inactive"})
	assert.Equal(t, shared.KindEmptyInput, shared.KindOf(err))
}

// ===========================
// Delete / Query
// ===========================

func TestDeleteUseCase_Execute(t *testing.T) {
	// Arrange
	e := newEnv()
	ctx := context.Background()
	_, err := e.create.Execute(ctx, CreateCommand{Actor: e.admin, Name: "Daily", Mode: "scanner", Points: 10})
	require.NoError(t, err)

	// Act
	err = e.del.Execute(ctx, DeleteCommand{Actor: e.admin, ID: "QR001"})

	// Assert
	require.NoError(t, err)
	_, err = e.query.Get(ctx, "QR001")
	assert.ErrorIs(t, err, qrcode.ErrQRCodeNotFound)
	assert.Contains(t, e.f.Publisher.Types(), qrcode.EventTypeQRCodeDeleted)

	err = e.del.Execute(ctx, DeleteCommand{Actor: e.admin, ID: "QR001"})
	assert.ErrorIs(t, err, qrcode.ErrQRCodeNotFound, "重複刪除返回 NotFound")
}

func TestQueryService_List_FilterByMode(t *testing.T) {
	// Arrange
	e := newEnv()
	ctx := context.Background()
	for _, mode := range []string{"scanner", "both", "give_to_owner", "scanner"} {
		_, err := e.create.Execute(ctx, CreateCommand{Actor: e.admin, Name: mode, Mode: mode, Points: 1})
		require.NoError(t, err)
	}

	// Act
	all, errAll := e.query.List(ctx, ListQuery{})
	scannerOnly, errScanner := e.query.List(ctx, ListQuery{Mode: "scanner"})
	_, errBad := e.query.List(ctx, ListQuery{Mode: "nope"})

	// Assert
	require.NoError(t, errAll)
	require.NoError(t, errScanner)
	assert.Len(t, all, 4)
	assert.Equal(t, "QR001", all[0].ID, "依建立順序")
	require.Len(t, scannerOnly, 2)
	assert.Equal(t, "QR004", scannerOnly[1].ID)
	assert.ErrorIs(t, errBad, qrcode.ErrInvalidMode)
}
