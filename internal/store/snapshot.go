package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// Snapshot persists the last successfully fetched collections to a local
// sqlite file so the board can render stale data while the backend is
// unreachable. This is the client's own cache, not the backend database.
type Snapshot struct {
	db *sql.DB
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS deals (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	probability REAL NOT NULL DEFAULT 0,
	estimated_value REAL NOT NULL DEFAULT 0,
	account_id INTEGER NOT NULL DEFAULT 0,
	account_title TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	account_type TEXT NOT NULL,
	receivable_balance REAL NOT NULL DEFAULT 0,
	payable_balance REAL NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_meta (
	key TEXT PRIMARY KEY,
	saved_at TIMESTAMP NOT NULL
);
`

// OpenSnapshot opens (or creates) the snapshot database at path.
// An empty path defaults to ~/.firsat/snapshot.db.
func OpenSnapshot(ctx context.Context, path string) (*Snapshot, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir := filepath.Join(home, ".firsat")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		path = filepath.Join(dir, "snapshot.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing snapshot db", "error", closeErr)
			}
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing snapshot db", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to create snapshot schema: %w", err)
	}

	return &Snapshot{db: db}, nil
}

// Close closes the underlying database
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// SaveDeals replaces the persisted deal collection. Collection order is kept
// through the position column so a restore preserves the backend ordering
// the board partition depends on.
func (s *Snapshot) SaveDeals(ctx context.Context, deals []*models.Deal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM deals"); err != nil {
		return fmt.Errorf("failed to clear deals: %w", err)
	}

	const insert = `INSERT INTO deals
		(id, title, source, status, probability, estimated_value, account_id, account_title, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, d := range deals {
		_, err := tx.ExecContext(ctx, insert,
			d.ID.ToInt(), d.Title, d.Source, d.Status.String(),
			d.Probability, d.EstimatedValue, d.AccountID.ToInt(), d.AccountTitle,
			d.CreatedAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert deal %d: %w", d.ID, err)
		}
	}

	if err := stampMeta(ctx, tx, string(KeyDeals)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadDeals restores the persisted deal collection in saved order
func (s *Snapshot) LoadDeals(ctx context.Context) ([]*models.Deal, error) {
	const query = `SELECT id, title, source, status, probability, estimated_value,
		account_id, account_title, created_at
		FROM deals ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("error closing rows", "error", closeErr)
		}
	}()

	var deals []*models.Deal
	for rows.Next() {
		var (
			d         models.Deal
			id        int
			accountID int
			status    string
		)
		err := rows.Scan(&id, &d.Title, &d.Source, &status, &d.Probability,
			&d.EstimatedValue, &accountID, &d.AccountTitle, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		d.ID = types.DealID(id)
		d.AccountID = types.AccountID(accountID)
		d.Status = types.StageID(status)
		deals = append(deals, &d)
	}
	return deals, rows.Err()
}

// SaveAccounts replaces the persisted account collection
func (s *Snapshot) SaveAccounts(ctx context.Context, accounts []*models.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM accounts"); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}

	const insert = `INSERT INTO accounts
		(id, title, account_type, receivable_balance, payable_balance, position)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, a := range accounts {
		_, err := tx.ExecContext(ctx, insert,
			a.ID.ToInt(), a.Title, string(a.AccountType),
			a.ReceivableBalance, a.PayableBalance, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert account %d: %w", a.ID, err)
		}
	}

	if err := stampMeta(ctx, tx, string(KeyAccounts)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadAccounts restores the persisted account collection in saved order
func (s *Snapshot) LoadAccounts(ctx context.Context) ([]*models.Account, error) {
	const query = `SELECT id, title, account_type, receivable_balance, payable_balance
		FROM accounts ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("error closing rows", "error", closeErr)
		}
	}()

	var accounts []*models.Account
	for rows.Next() {
		var (
			a           models.Account
			id          int
			accountType string
		)
		if err := rows.Scan(&id, &a.Title, &accountType, &a.ReceivableBalance, &a.PayableBalance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.ID = types.AccountID(id)
		a.AccountType = models.AccountType(accountType)
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

// SavedAt returns when a collection was last snapshotted, zero if never
func (s *Snapshot) SavedAt(ctx context.Context, key Key) (time.Time, error) {
	var at time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT saved_at FROM snapshot_meta WHERE key = ?", string(key)).Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot meta: %w", err)
	}
	return at, nil
}

func stampMeta(ctx context.Context, tx *sql.Tx, key string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (key, saved_at) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET saved_at = excluded.saved_at`,
		key, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to stamp snapshot meta: %w", err)
	}
	return nil
}
