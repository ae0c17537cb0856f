package shared_test

import (
	"testing"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 定義測試用的標記類型
type TestEntityAMarker struct{}
type TestEntityBMarker struct{}

type TestEntityAID = shared.EntityID[TestEntityAMarker]

var ErrInvalidTestEntityA = &shared.DomainError{
	Kind:    shared.KindInvalidInput,
	Code:    "TEST_ENTITY_A_INVALID",
	Message: "invalid test entity A ID",
}

// Test 1: NewEntityID 生成唯一 UUID
func TestNewEntityID_GeneratesUniqueUUIDs(t *testing.T) {
	// Act
	id1 := shared.NewEntityID[TestEntityAMarker]()
	id2 := shared.NewEntityID[TestEntityAMarker]()

	// Assert
	assert.NotEqual(t, id1.String(), id2.String(), "每次生成的 UUID 應該不同")
	assert.False(t, id1.IsEmpty())
}

// Test 2: EntityIDFromString 解析有效 UUID
func TestEntityIDFromString_ValidUUID_Success(t *testing.T) {
	// Arrange
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	// Act
	id, err := shared.EntityIDFromString[TestEntityAMarker](validUUID, ErrInvalidTestEntityA)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, validUUID, id.String())
}

// Test 3: 無效 UUID 返回帶上下文的領域錯誤
func TestEntityIDFromString_InvalidUUID_ReturnsError(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"空字串", ""},
		{"不是 UUID 格式", "not-a-uuid"},
		{"太短", "550e8400-e29b-41d4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			id, err := shared.EntityIDFromString[TestEntityAMarker](tt.value, ErrInvalidTestEntityA)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTestEntityA)
			assert.Equal(t, shared.KindInvalidInput, shared.KindOf(err))
			assert.True(t, id.IsEmpty())
		})
	}
}

// Test 4: Equals 比較值
func TestEntityID_Equals(t *testing.T) {
	// Arrange
	a1, _ := shared.EntityIDFromString[TestEntityAMarker]("550e8400-e29b-41d4-a716-446655440000", ErrInvalidTestEntityA)
	a2, _ := shared.EntityIDFromString[TestEntityAMarker]("550e8400-e29b-41d4-a716-446655440000", ErrInvalidTestEntityA)
	a3 := shared.NewEntityID[TestEntityAMarker]()

	// Assert
	assert.True(t, a1.Equals(a2))
	assert.False(t, a1.Equals(a3))
}

// Test 5: 零值為空
func TestEntityID_ZeroValue_IsEmpty(t *testing.T) {
	var zero TestEntityAID
	assert.True(t, zero.IsEmpty())

	var other shared.EntityID[TestEntityBMarker]
	assert.True(t, other.IsEmpty())
}
