package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/palaver-dev/palaver/internal/domain"
	internal_errors "github.com/palaver-dev/palaver/internal/errors"
)

const uniqueViolation = pq.ErrorCode("23505")

// CreateUser inserts a new user record. The very first account ever created
// is granted administrator status; the check and the insert happen under a
// table lock in one transaction so two concurrent first registrations
// cannot both win the bootstrap grant.
func (s *Storage) CreateUser(username domain.Username, passHash string, admin bool) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var user domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("failed to lock users table: %w", err)
		}

		err := tx.QueryRow(`
            INSERT INTO users(username, password_hash, is_admin)
            VALUES ($1, $2, $3 OR NOT EXISTS (SELECT 1 FROM users))
            RETURNING id, username, password_hash, is_admin`,
			username, passHash, admin,
		).Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return internal_errors.Conflict("Username already taken")
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Storage) UserByUsername(username domain.Username) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, password_hash, is_admin FROM users WHERE username = $1", username))
}

func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, password_hash, is_admin FROM users WHERE id = $1", id))
}

func (s *Storage) ListUsers() ([]domain.User, error) {
	rows, err := s.db.Query("SELECT id, username, password_hash, is_admin FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return users, nil
}

// PromoteUser sets the admin flag of an existing user.
func (s *Storage) PromoteUser(id domain.UserId) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
        UPDATE users SET is_admin = TRUE
        WHERE id = $1
        RETURNING id, username, password_hash, is_admin`, id,
	).Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to promote user: %w", err)
	}
	return user, nil
}

func (s *Storage) scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
