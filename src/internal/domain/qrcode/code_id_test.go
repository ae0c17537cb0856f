package qrcode_test

import (
	"testing"

	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeIDFromSequence_ZeroPadded(t *testing.T) {
	assert.Equal(t, "QR001", qrcode.CodeIDFromSequence(1).String())
	assert.Equal(t, "QR042", qrcode.CodeIDFromSequence(42).String())
	assert.Equal(t, "QR1234", qrcode.CodeIDFromSequence(1234).String())
}

func TestNewCodeID_NormalizesCase(t *testing.T) {
	id, err := qrcode.NewCodeID("  qr001 ")

	require.NoError(t, err)
	assert.True(t, id.Equals(qrcode.CodeIDFromSequence(1)))
}

func TestNewCodeID_Blank_IsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := qrcode.NewCodeID(input)

		assert.ErrorIs(t, err, qrcode.ErrEmptyCodeID)
		assert.Equal(t, shared.KindEmptyInput, shared.KindOf(err))
	}
}

func TestTags_SetSemantics(t *testing.T) {
	// Arrange
	a := qrcode.NewTags([]string{" food", "drink", "food", "", "  "})
	b := qrcode.NewTags([]string{"drink", "food"})

	// Assert
	assert.Equal(t, []string{"drink", "food"}, a.Values())
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Equals(b), "順序與重複不影響相等性")
	assert.True(t, a.Contains("food"))
	assert.False(t, a.Contains("music"))
}

func TestTags_ValuesReturnsCopy(t *testing.T) {
	tags := qrcode.NewTags([]string{"a", "b"})

	values := tags.Values()
	values[0] = "z"

	assert.Equal(t, []string{"a", "b"}, tags.Values())
}

func TestMustCodeID(t *testing.T) {
	assert.Equal(t, "QR007", qrcode.MustCodeID("qr007").String())
	assert.Panics(t, func() { qrcode.MustCodeID("  ") })
}
