package domain

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"unicode/utf8"
)

const (
	codeLength = 6

	// Ambiguous glyphs (I, O, 0, 1) are excluded so codes survive being
	// read aloud or typed from a phone screen.
	codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	MinNicknameLength = 1
	MaxNicknameLength = 32

	MinCredentialLength = 1
	MaxCredentialLength = 200
)

var (
	charsetLen = big.NewInt(int64(len(codeChars)))

	ErrLobbyNotFound      = errors.New("lobby not found")
	ErrLobbyAlreadyExists = errors.New("lobby already exists")
	ErrInvalidNickname    = errors.New("nickname must be between 1 and 32 characters")
	ErrInvalidCredential  = errors.New("assistant key must be between 1 and 200 characters")
	ErrInvalidCode        = errors.New("lobby code must be between 4 and 10 characters")
)

// Lobby is a named chat room. The assistant credential is held only in
// process memory and must never be serialized, logged, or returned to a
// client after creation.
type Lobby struct {
	Code       string `json:"code"`
	Credential string `json:"-"`
}

// LobbyRegistry owns all Lobby records for one server instance. Lobbies are
// never deleted; they live for the lifetime of the process.
type LobbyRegistry interface {
	Create(nickname, credential string) (*Lobby, error)
	Exists(code string) bool
	Credential(code string) (string, bool)
}

func NewLobby(credential string) (*Lobby, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	return &Lobby{
		Code:       code,
		Credential: credential,
	}, nil
}

// GenerateCode draws 6 independent characters from the fixed 32-symbol
// alphabet. Uniqueness against existing lobbies is the registry's concern.
func GenerateCode() (string, error) {
	var sb strings.Builder
	sb.Grow(codeLength)

	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeChars[n.Int64()])
	}

	return sb.String(), nil
}

// ValidateNickname enforces the display-name bounds shared by lobby creation
// and the live join path. Rune counts, same as the HTTP-layer validation.
func ValidateNickname(nickname string) error {
	n := utf8.RuneCountInString(nickname)
	if n < MinNicknameLength || n > MaxNicknameLength {
		return ErrInvalidNickname
	}
	return nil
}

// ValidateCredential checks an optional assistant key. Empty means "not
// supplied" and is valid.
func ValidateCredential(credential string) error {
	if credential == "" {
		return nil
	}
	if utf8.RuneCountInString(credential) > MaxCredentialLength {
		return ErrInvalidCredential
	}
	return nil
}

// ValidateCode bounds-checks a client-supplied lobby code. Generated codes
// are always 6 characters, but the wire contract accepts 4-10.
func ValidateCode(code string) error {
	n := utf8.RuneCountInString(code)
	if n < 4 || n > 10 {
		return ErrInvalidCode
	}
	return nil
}
