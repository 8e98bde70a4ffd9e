package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dpstore-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// GetActiveProductTx re-reads a product inside tx. The price snapshot taken
// here is authoritative; client-supplied prices are never trusted.
func (s *Store) GetActiveProductTx(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Product, error) {
	var product models.Product
	err := tx.GetContext(ctx, &product,
		`SELECT * FROM products WHERE product_id = $1 AND is_active = TRUE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// InsertTransactionTx inserts the order row within tx. A duplicate
// external_id surfaces as ErrConflict so the caller can retry with a fresh id.
// The insert runs under a savepoint: a unique violation aborts only the
// statement, not the enclosing transaction, so earlier work (the rewards
// debit) survives the retry.
func (s *Store) InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, t *models.Transaction) error {
	if _, err := tx.ExecContext(ctx, `SAVEPOINT insert_transaction`); err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	err := tx.GetContext(ctx, t,
		`INSERT INTO transactions
		    (external_id, user_id, product_id, quantity, price_per_item, total_price,
		     payment_method, status, user_game_id, email_for_guest, rewards_used)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING *`,
		t.ExternalID, t.UserID, t.ProductID, t.Quantity, t.PricePerItem, t.TotalPrice,
		t.PaymentMethod, t.Status, t.UserGameID, t.EmailForGuest, t.RewardsUsed)
	if IsUniqueViolation(err) {
		if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT insert_transaction`); rbErr != nil {
			return fmt.Errorf("failed to roll back to savepoint: %w", rbErr)
		}
		return fmt.Errorf("external id %s: %w", t.ExternalID, ErrConflict)
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `RELEASE SAVEPOINT insert_transaction`)
	return err
}

// UpdateStatusTx sets the new status and updated_at within tx, returning the
// updated row, or ErrNotFound if the id matched nothing.
func (s *Store) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, transactionID, status string) (*models.Transaction, error) {
	var t models.Transaction
	err := tx.GetContext(ctx, &t,
		`UPDATE transactions SET status = $1, updated_at = NOW() WHERE transaction_id = $2 RETURNING *`,
		status, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetRewardsEarnedTx persists the accrued points on the transaction row
// within tx. Assigned at most once per transaction.
func (s *Store) SetRewardsEarnedTx(ctx context.Context, tx *sqlx.Tx, transactionID string, earned int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE transactions SET rewards_earned = $1 WHERE transaction_id = $2`,
		earned, transactionID)
	if err != nil {
		return fmt.Errorf("failed to set rewards earned: %w", err)
	}
	return nil
}

// GetTransactionByExternalID retrieves a transaction with product and game
// names for the public status-check page. The lookup is case-insensitive on
// the caller side (ids are stored uppercased).
func (s *Store) GetTransactionByExternalID(ctx context.Context, externalID string) (*models.TransactionDetail, error) {
	var t models.TransactionDetail
	err := s.db.GetContext(ctx, &t,
		`SELECT t.*, p.name AS product_name, g.name AS game_name
		 FROM transactions t
		 LEFT JOIN products p ON t.product_id = p.product_id
		 LEFT JOIN games g ON p.game_id = g.game_id
		 WHERE t.external_id = $1`,
		strings.ToUpper(externalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactionsByUser retrieves a user's order history, newest first.
func (s *Store) ListTransactionsByUser(ctx context.Context, userID int64) ([]models.TransactionDetail, error) {
	var txs []models.TransactionDetail
	err := s.db.SelectContext(ctx, &txs,
		`SELECT t.*, p.name AS product_name, g.name AS game_name, g.slug AS game_slug
		 FROM transactions t
		 JOIN products p ON t.product_id = p.product_id
		 JOIN games g ON p.game_id = g.game_id
		 WHERE t.user_id = $1
		 ORDER BY t.created_at DESC`, userID)
	return txs, err
}

// ListTransactionsAdmin retrieves the back-office transaction table,
// optionally filtered by status.
func (s *Store) ListTransactionsAdmin(ctx context.Context, status string) ([]models.AdminTransactionRow, error) {
	query := `
		SELECT t.transaction_id, t.external_id, t.user_id,
		       COALESCE(u.email, t.email_for_guest) AS user_identifier,
		       g.name AS game_name, p.name AS product_name,
		       t.quantity, t.total_price, t.status,
		       t.rewards_used, t.rewards_earned,
		       t.created_at, t.updated_at
		FROM transactions t
		LEFT JOIN users u ON t.user_id = u.user_id
		JOIN products p ON t.product_id = p.product_id
		JOIN games g ON p.game_id = g.game_id`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE t.status = $1`
		args = append(args, strings.ToUpper(status))
	}
	query += ` ORDER BY t.created_at DESC`

	var rows []models.AdminTransactionRow
	err := s.db.SelectContext(ctx, &rows, query, args...)
	return rows, err
}

// ListTransactionsSince retrieves external id and total for orders created
// after the given moment (admin polling endpoint).
func (s *Store) ListTransactionsSince(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.SelectContext(ctx, &txs,
		`SELECT * FROM transactions WHERE created_at > $1 ORDER BY created_at DESC`, since)
	return txs, err
}

// GetDashboardStats computes the admin dashboard counters.
func (s *Store) GetDashboardStats(ctx context.Context, todayStart, monthStart time.Time) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.db.GetContext(ctx, &stats.IncomeToday,
		`SELECT COALESCE(SUM(total_price), 0) FROM transactions WHERE status = 'SUCCESS' AND created_at >= $1`,
		todayStart)
	if err != nil {
		return nil, err
	}
	err = s.db.GetContext(ctx, &stats.TransactionsToday,
		`SELECT COUNT(transaction_id) FROM transactions WHERE created_at >= $1`, todayStart)
	if err != nil {
		return nil, err
	}
	err = s.db.GetContext(ctx, &stats.NewUsersToday,
		`SELECT COUNT(user_id) FROM users WHERE created_at >= $1`, todayStart)
	if err != nil {
		return nil, err
	}
	err = s.db.GetContext(ctx, &stats.TransactionsThisMonth,
		`SELECT COUNT(transaction_id) FROM transactions WHERE created_at >= $1`, monthStart)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
