package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/palaver-dev/palaver/internal/domain"
	internal_errors "github.com/palaver-dev/palaver/internal/errors"
)

const replyColumns = "id, thread_id, text, created, author_id, edited"

// CreateReply inserts a reply after verifying the parent thread still
// exists. Both steps run in one transaction so a concurrent thread delete
// cannot leave an orphaned reply behind.
func (s *Storage) CreateReply(data domain.ReplyCreationData) (domain.Reply, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var reply domain.Reply
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := threadExists(tx, data.ThreadId); err != nil {
			return err
		}

		err := tx.QueryRow(`
            INSERT INTO replies(thread_id, text, author_id)
            VALUES ($1, $2, $3)
            RETURNING `+replyColumns,
			data.ThreadId, data.Text, data.AuthorId,
		).Scan(&reply.Id, &reply.ThreadId, &reply.Text, &reply.CreatedAt, &reply.AuthorId, &reply.Edited)
		if err != nil {
			return fmt.Errorf("failed to insert reply: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Reply{}, err
	}
	return reply, nil
}

func (s *Storage) GetReply(id domain.ReplyId) (domain.Reply, error) {
	return scanReply(s.db.QueryRow(
		"SELECT "+replyColumns+" FROM replies WHERE id = $1", id))
}

// ListReplies returns all replies of a thread ordered by creation time,
// oldest first. The thread itself must exist.
func (s *Storage) ListReplies(threadId domain.ThreadId) ([]domain.Reply, error) {
	if err := threadExists(s.db, threadId); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT "+replyColumns+" FROM replies WHERE thread_id = $1 ORDER BY created, id", threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer rows.Close()

	var replies []domain.Reply
	for rows.Next() {
		var reply domain.Reply
		if err := rows.Scan(&reply.Id, &reply.ThreadId, &reply.Text, &reply.CreatedAt, &reply.AuthorId, &reply.Edited); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return replies, nil
}

// UpdateReply rewrites the text of a reply, conditional on authorId still
// owning the record.
func (s *Storage) UpdateReply(id domain.ReplyId, authorId domain.UserId, text domain.Text) (domain.Reply, error) {
	var reply domain.Reply
	err := s.db.QueryRow(`
        UPDATE replies SET text = $1, edited = TRUE
        WHERE id = $2 AND author_id = $3
        RETURNING `+replyColumns,
		text, id, authorId,
	).Scan(&reply.Id, &reply.ThreadId, &reply.Text, &reply.CreatedAt, &reply.AuthorId, &reply.Edited)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, internal_errors.NotFound("Reply not found")
		}
		return domain.Reply{}, fmt.Errorf("failed to update reply: %w", err)
	}
	return reply, nil
}

func (s *Storage) DeleteReply(id domain.ReplyId) error {
	result, err := s.db.Exec("DELETE FROM replies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Reply not found")
	}
	return nil
}

func threadExists(q Querier, id domain.ThreadId) error {
	var found domain.ThreadId
	err := q.QueryRow("SELECT id FROM threads WHERE id = $1", id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal_errors.NotFound("Thread not found")
		}
		return fmt.Errorf("failed to validate thread: %w", err)
	}
	return nil
}

func scanReply(row *sql.Row) (domain.Reply, error) {
	var reply domain.Reply
	err := row.Scan(&reply.Id, &reply.ThreadId, &reply.Text, &reply.CreatedAt, &reply.AuthorId, &reply.Edited)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, internal_errors.NotFound("Reply not found")
		}
		return domain.Reply{}, fmt.Errorf("failed to query reply: %w", err)
	}
	return reply, nil
}
