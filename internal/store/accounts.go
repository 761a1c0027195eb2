// ABOUTME: Account store methods for the SQLite backend
// ABOUTME: Covers listing, lookup, creation, credential/admin updates, and deletion

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ListAccounts returns all accounts ordered by username ascending.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]*Account, error) {
	query := `
		SELECT id, username, password_credential, admin_flag, created_at
		FROM accounts
		ORDER BY username ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []*Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves an account by ID. Returns ErrNotFound if it does not exist.
func (s *SQLiteStore) GetAccount(ctx context.Context, id int64) (*Account, error) {
	query := `
		SELECT id, username, password_credential, admin_flag, created_at
		FROM accounts
		WHERE id = ?
	`
	return s.getAccount(ctx, query, id)
}

// GetAccountByUsername retrieves an account by exact username.
// Returns ErrNotFound if it does not exist.
func (s *SQLiteStore) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	query := `
		SELECT id, username, password_credential, admin_flag, created_at
		FROM accounts
		WHERE username = ?
	`
	return s.getAccount(ctx, query, username)
}

func (s *SQLiteStore) getAccount(ctx context.Context, query string, arg any) (*Account, error) {
	row := s.db.QueryRowContext(ctx, query, arg)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

// CreateAccount inserts a new account and fills in its assigned ID and
// creation time. Returns ErrUsernameExists on a duplicate username.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO accounts (username, password_credential, admin_flag, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		account.Username,
		account.PasswordCredential,
		boolToInt(account.Admin),
		account.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("inserting account: %w", err)
	}

	account.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting inserted account id: %w", err)
	}

	s.logger.Info("created account", "id", account.ID, "username", account.Username, "admin", account.Admin)
	return nil
}

// UpdateAccountCredential replaces an account's stored credential.
// Returns ErrNotFound if the account does not exist.
func (s *SQLiteStore) UpdateAccountCredential(ctx context.Context, id int64, credential string) error {
	query := `UPDATE accounts SET password_credential = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, credential, id)
	if err != nil {
		return fmt.Errorf("updating account credential: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("updated account credential", "id", id)
	return nil
}

// UpdateAccountAdmin sets an account's admin flag.
// Returns ErrNotFound if the account does not exist.
func (s *SQLiteStore) UpdateAccountAdmin(ctx context.Context, id int64, admin bool) error {
	query := `UPDATE accounts SET admin_flag = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, boolToInt(admin), id)
	if err != nil {
		return fmt.Errorf("updating account admin flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("updated account admin flag", "id", id, "admin", admin)
	return nil
}

// DeleteAccount deletes an account and, via foreign-key cascade, all of its
// vehicles and their mileage records. Deleting a non-existent account is a no-op.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	s.logger.Info("deleted account", "id", id)
	return nil
}

// CountAdmins returns the number of accounts with the admin flag set.
func (s *SQLiteStore) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE admin_flag = 1").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(sc scanner) (*Account, error) {
	var account Account
	var adminFlag int
	var createdAtStr string

	err := sc.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordCredential,
		&adminFlag,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning account: %w", err)
	}

	account.Admin = adminFlag != 0
	account.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &account, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
