package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_store.go -package=mocks talentmatch/internal/storage ChatStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// messageTimeLayout is a zero-padded RFC3339 variant. Fixed width keeps
// lexicographic order equal to chronological order, which the messages
// index relies on.
const messageTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ChatStore defines the interface for chat and message storage operations.
type ChatStore interface {
	// CreateChat inserts a new chat. A UUID is generated when ID is unset.
	CreateChat(ctx context.Context, chat *ChatRecord) error
	// GetChat gets a chat by its ID. Returns ErrNotFound if not found.
	GetChat(ctx context.Context, id string) (*ChatRecord, error)
	// ListChatsByRecruiter returns the recruiter's chats, most recently
	// updated first.
	ListChatsByRecruiter(ctx context.Context, recruiterID string) ([]ChatRecord, error)
	// UpdateChatTitle renames a chat.
	UpdateChatTitle(ctx context.Context, id, title string) error
	// DeleteChat deletes a chat and, via foreign key cascade, its messages.
	DeleteChat(ctx context.Context, id string) error
	// AppendMessage appends a message to a chat and bumps the chat's
	// updated_at in the same transaction.
	AppendMessage(ctx context.Context, message *MessageRecord) error
	// ListMessages returns all messages in a chat ordered by creation time.
	ListMessages(ctx context.Context, chatID string) ([]MessageRecord, error)
}

// ChatRepo provides methods for chat and message operations.
// It implements the ChatStore interface.
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo creates a new ChatRepo.
func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// CreateChat inserts a new chat. A UUID is generated when ID is unset.
func (r *ChatRepo) CreateChat(ctx context.Context, chat *ChatRecord) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chats (id, recruiter_id, title) VALUES (?, ?, ?)",
		chat.ID, chat.RecruiterID, chat.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat: %w", err)
	}
	return nil
}

// GetChat gets a chat by its ID. Returns ErrNotFound if not found.
func (r *ChatRepo) GetChat(ctx context.Context, id string) (*ChatRecord, error) {
	var (
		chat         ChatRecord
		createdAtStr string
		updatedAtStr string
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT id, recruiter_id, title, created_at, updated_at FROM chats WHERE id = ?",
		id,
	).Scan(&chat.ID, &chat.RecruiterID, &chat.Title, &createdAtStr, &updatedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chat: %w", err)
	}

	if chat.CreatedAt, err = parseDBTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if chat.UpdatedAt, err = parseDBTime(updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return &chat, nil
}

// ListChatsByRecruiter returns the recruiter's chats, most recently updated
// first. Returns an empty slice if none exist (not an error).
func (r *ChatRepo) ListChatsByRecruiter(ctx context.Context, recruiterID string) ([]ChatRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, recruiter_id, title, created_at, updated_at FROM chats WHERE recruiter_id = ? ORDER BY updated_at DESC, created_at DESC",
		recruiterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chats []ChatRecord
	for rows.Next() {
		var (
			chat         ChatRecord
			createdAtStr string
			updatedAtStr string
		)
		if err := rows.Scan(&chat.ID, &chat.RecruiterID, &chat.Title, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		if chat.CreatedAt, err = parseDBTime(createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		if chat.UpdatedAt, err = parseDBTime(updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
		}
		chats = append(chats, chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chats, nil
}

// UpdateChatTitle renames a chat.
func (r *ChatRepo) UpdateChatTitle(ctx context.Context, id, title string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE chats SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		title, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update chat title: %w", err)
	}
	return requireRowAffected(res)
}

// DeleteChat deletes a chat and, via foreign key cascade, its messages.
// Deleting an absent chat returns ErrNotFound.
func (r *ChatRepo) DeleteChat(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM chats WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return requireRowAffected(res)
}

// AppendMessage appends a message to a chat and bumps the chat's updated_at
// in the same transaction. A UUID and creation time are generated when
// unset.
func (r *ChatRepo) AppendMessage(ctx context.Context, message *MessageRecord) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO messages (id, chat_id, role, body, created_at) VALUES (?, ?, ?, ?, ?)",
		message.ID, message.ChatID, message.Role, message.Body,
		message.CreatedAt.UTC().Format(messageTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE chats SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", message.ChatID,
	); err != nil {
		return fmt.Errorf("failed to touch chat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit message: %w", err)
	}
	return nil
}

// ListMessages returns all messages in a chat ordered by creation time.
// Returns an empty slice if none exist (not an error).
func (r *ChatRepo) ListMessages(ctx context.Context, chatID string) ([]MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, chat_id, role, body, created_at FROM messages WHERE chat_id = ? ORDER BY created_at",
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var messages []MessageRecord
	for rows.Next() {
		var (
			message      MessageRecord
			createdAtStr string
		)
		if err := rows.Scan(&message.ID, &message.ChatID, &message.Role, &message.Body, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if message.CreatedAt, err = time.Parse(messageTimeLayout, createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return messages, nil
}
