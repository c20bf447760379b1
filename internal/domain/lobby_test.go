package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeChars, ch), "unexpected character %q in code %q", ch, code)
		}
	}
}

func TestGenerateCode_ExcludesAmbiguousGlyphs(t *testing.T) {
	assert.NotContains(t, codeChars, "I")
	assert.NotContains(t, codeChars, "O")
	assert.NotContains(t, codeChars, "0")
	assert.NotContains(t, codeChars, "1")
	assert.Len(t, codeChars, 32)
}

func TestValidateNickname(t *testing.T) {
	assert.NoError(t, ValidateNickname("Alice"))
	assert.NoError(t, ValidateNickname("x"))
	assert.NoError(t, ValidateNickname(strings.Repeat("a", 32)))
	assert.NoError(t, ValidateNickname(strings.Repeat("ü", 32)), "limits count runes, not bytes")

	assert.ErrorIs(t, ValidateNickname(""), ErrInvalidNickname)
	assert.ErrorIs(t, ValidateNickname(strings.Repeat("a", 33)), ErrInvalidNickname)
	assert.ErrorIs(t, ValidateNickname(strings.Repeat("ü", 33)), ErrInvalidNickname)
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("hello"))
	assert.NoError(t, ValidateContent(strings.Repeat("a", 400)))
	assert.NoError(t, ValidateContent(strings.Repeat("é", 400)), "limits count runes, not bytes")

	assert.ErrorIs(t, ValidateContent(""), ErrInvalidContent)
	assert.ErrorIs(t, ValidateContent(strings.Repeat("a", 401)), ErrInvalidContent)
	assert.ErrorIs(t, ValidateContent(strings.Repeat("é", 401)), ErrInvalidContent)
}

func TestValidateCredential(t *testing.T) {
	assert.NoError(t, ValidateCredential(""), "absent credential is valid")
	assert.NoError(t, ValidateCredential("sk-test"))

	assert.NoError(t, ValidateCredential(strings.Repeat("ß", 200)))
	assert.ErrorIs(t, ValidateCredential(strings.Repeat("k", 201)), ErrInvalidCredential)
}

func TestValidateCode(t *testing.T) {
	assert.NoError(t, ValidateCode("ABCD"))
	assert.NoError(t, ValidateCode("ABCDEF2345"))

	assert.ErrorIs(t, ValidateCode("ABC"), ErrInvalidCode)
	assert.ErrorIs(t, ValidateCode("ABCDEF23456"), ErrInvalidCode)
}

func TestNewMessage_IDMatchesCreatedAt(t *testing.T) {
	msg := NewMessage("ABCDEF", "Alice", RoleUser, "hello")

	assert.Equal(t, msg.ID, msg.CreatedAt)
	assert.Equal(t, "ABCDEF", msg.LobbyCode)
	assert.Equal(t, RoleUser, msg.Role)
}
