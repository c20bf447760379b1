package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/calderahq/hearth/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

type messageStore struct {
	db  *badger.DB
	seq atomic.Int64
}

// NewMessageStore opens a Badger-backed append-only message log at path.
// Keys are "msg:{lobbyCode}:{timestamp_padded}:{seq_padded}" so that:
//  1. A forward prefix scan yields messages in creation order (zero padding
//     keeps lexicographic and numeric order aligned).
//  2. Messages created in the same millisecond keep their append order: the
//     sequence suffix is strictly increasing per store, so an assistant reply
//     never sorts ahead of the user message that triggered it.
func NewMessageStore(path string) (domain.MessageStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("failed to open message store: %w", err)
	}

	return &messageStore{db: db}, nil
}

func (s *messageStore) messageKey(msg *domain.Message) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%012d", msg.LobbyCode, msg.CreatedAt, s.seq.Add(1)))
}

func lobbyPrefix(code string) []byte {
	return []byte(fmt.Sprintf("msg:%s:", code))
}

func (s *messageStore) Append(ctx context.Context, msg *domain.Message) error {
	if msg == nil || msg.LobbyCode == "" {
		return fmt.Errorf("message is missing a lobby code")
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.messageKey(msg), value)
	})
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	return nil
}

func (s *messageStore) ListByLobby(ctx context.Context, code string) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := lobbyPrefix(code)

		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var msg domain.Message
				if err := json.Unmarshal(value, &msg); err != nil {
					return err
				}
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for lobby %s: %w", code, err)
	}

	return messages, nil
}

func (s *messageStore) Close() error {
	return s.db.Close()
}
