package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/palaver-dev/palaver/internal/domain"
	internal_errors "github.com/palaver-dev/palaver/internal/errors"
)

const threadColumns = "id, title, text, created, author_id, edited"

func (s *Storage) CreateThread(data domain.ThreadCreationData) (domain.Thread, error) {
	var thread domain.Thread
	err := s.db.QueryRow(`
        INSERT INTO threads(title, text, author_id)
        VALUES ($1, $2, $3)
        RETURNING `+threadColumns,
		data.Title, data.Text, data.AuthorId,
	).Scan(&thread.Id, &thread.Title, &thread.Text, &thread.CreatedAt, &thread.AuthorId, &thread.Edited)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to insert thread: %w", err)
	}
	return thread, nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	return scanThread(s.db.QueryRow(
		"SELECT "+threadColumns+" FROM threads WHERE id = $1", id))
}

// ListThreads returns all threads ordered by creation time, oldest first.
func (s *Storage) ListThreads() ([]domain.Thread, error) {
	rows, err := s.db.Query("SELECT " + threadColumns + " FROM threads ORDER BY created, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(&thread.Id, &thread.Title, &thread.Text, &thread.CreatedAt, &thread.AuthorId, &thread.Edited); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

// UpdateThread rewrites title and text of a thread, conditional on authorId
// still owning the record. Author ids are immutable, so zero rows affected
// means the thread disappeared between the caller's policy check and this
// write.
func (s *Storage) UpdateThread(id domain.ThreadId, authorId domain.UserId, title domain.ThreadTitle, text domain.Text) (domain.Thread, error) {
	var thread domain.Thread
	err := s.db.QueryRow(`
        UPDATE threads SET title = $1, text = $2, edited = TRUE
        WHERE id = $3 AND author_id = $4
        RETURNING `+threadColumns,
		title, text, id, authorId,
	).Scan(&thread.Id, &thread.Title, &thread.Text, &thread.CreatedAt, &thread.AuthorId, &thread.Edited)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, fmt.Errorf("failed to update thread: %w", err)
	}
	return thread, nil
}

// DeleteThread removes a thread and all its replies in one transaction:
// either everything goes or nothing does.
func (s *Storage) DeleteThread(id domain.ThreadId) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM replies WHERE thread_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete thread replies: %w", err)
		}

		result, err := tx.Exec("DELETE FROM threads WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete thread: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return internal_errors.NotFound("Thread not found")
		}
		return nil
	})
}

func scanThread(row *sql.Row) (domain.Thread, error) {
	var thread domain.Thread
	err := row.Scan(&thread.Id, &thread.Title, &thread.Text, &thread.CreatedAt, &thread.AuthorId, &thread.Edited)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, fmt.Errorf("failed to query thread: %w", err)
	}
	return thread, nil
}
