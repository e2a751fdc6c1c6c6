package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"cloudex-trader/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
//
// Money and share quantities are stored as TEXT so the decimal values round
// trip exactly; REAL columns would reintroduce float drift.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Orders accepted by the exchange
	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		user_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		stock_id TEXT NOT NULL,
		side TEXT NOT NULL,
		shares TEXT NOT NULL,
		price_per_share TEXT NOT NULL,
		fee_amount TEXT NOT NULL,
		transaction_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Portfolio snapshots as rendered
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		user_id TEXT NOT NULL,
		cash_balance TEXT NOT NULL,
		holdings_value TEXT NOT NULL,
		total_value TEXT NOT NULL,
		daily_change TEXT NOT NULL,
		daily_change_percent TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol);
	CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON orders(timestamp);
	CREATE INDEX IF NOT EXISTS idx_snapshots_user ON snapshots(user_id);
	CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LogOrder journals one accepted order.
func (s *SQLiteStore) LogOrder(ctx context.Context, rec *OrderRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (timestamp, user_id, symbol, stock_id, side, shares, price_per_share, fee_amount, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Timestamp, rec.UserID, rec.Symbol, rec.StockID, string(rec.Side), rec.Shares, rec.PricePerShare, rec.FeeAmount, rec.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to log order: %w", err)
	}
	return nil
}

// GetOrders retrieves journaled orders, newest first.
func (s *SQLiteStore) GetOrders(ctx context.Context, filter OrderFilter) ([]OrderRecord, error) {
	query := "SELECT id, timestamp, user_id, symbol, stock_id, side, shares, price_per_share, fee_amount, COALESCE(transaction_id, '') FROM orders WHERE 1=1"
	args := []interface{}{}

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Side != "" {
		query += " AND side = ?"
		args = append(args, string(filter.Side))
	}
	if !filter.StartDate.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var records []OrderRecord
	for rows.Next() {
		var r OrderRecord
		var side string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.UserID, &r.Symbol, &r.StockID, &side, &r.Shares, &r.PricePerShare, &r.FeeAmount, &r.TransactionID); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		r.Side = models.OrderSide(side)
		records = append(records, r)
	}

	return records, rows.Err()
}

// SaveSnapshot journals one portfolio snapshot.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, userID string, snap *models.PortfolioSnapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (timestamp, user_id, cash_balance, holdings_value, total_value, daily_change, daily_change_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, time.Now(), userID,
		snap.CashBalance.String(),
		snap.HoldingsValue.String(),
		snap.TotalValue.String(),
		snap.DailyChange.String(),
		snap.DailyChangePercent.String())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshots retrieves journaled snapshots, newest first.
func (s *SQLiteStore) GetSnapshots(ctx context.Context, filter SnapshotFilter) ([]SnapshotRecord, error) {
	query := "SELECT id, timestamp, user_id, cash_balance, holdings_value, total_value, daily_change, daily_change_percent FROM snapshots WHERE 1=1"
	args := []interface{}{}

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var r SnapshotRecord
		var cash, holdings, total, change, percent string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.UserID, &cash, &holdings, &total, &change, &percent); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		r.Snapshot = models.PortfolioSnapshot{
			CashBalance:        mustDecimal(cash),
			HoldingsValue:      mustDecimal(holdings),
			TotalValue:         mustDecimal(total),
			DailyChange:        mustDecimal(change),
			DailyChangePercent: mustDecimal(percent),
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// mustDecimal parses a stored decimal column, falling back to zero on a
// corrupt row rather than failing the whole query.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
