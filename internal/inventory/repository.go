package inventory

import (
	"context"
	"database/sql"
	"errors"

	"gomitas-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Repository is the stock ledger: the single source of truth for available
// quantity per product. The Lock*/Adjust* pair is the only write path the
// order engine uses, always inside the caller's transaction.
type Repository interface {
	GetAll(ctx context.Context) ([]Stock, error)
	GetByID(ctx context.Context, id uint) (*Stock, error)
	GetByProductID(ctx context.Context, productID uint) (*Stock, error)
	Create(ctx context.Context, productID uint, quantity int) (*Stock, error)
	SetQuantity(ctx context.Context, id uint, quantity int) (*Stock, error)
	Delete(ctx context.Context, id uint) error

	// LockForUpdate acquires an exclusive row lock on the product's stock
	// row within tx. The lock is held until the transaction ends.
	LockForUpdate(ctx context.Context, tx *sql.Tx, productID uint) (*LockedStock, error)

	// AdjustLocked applies delta to the locked row. The caller must hold
	// the lock via LockForUpdate and must have verified the result cannot
	// go below zero.
	AdjustLocked(ctx context.Context, tx *sql.Tx, productID uint, delta int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const stockSelect = `
	SELECT s.id, s.product_id, p.name, s.quantity, s.created_at, s.updated_at
	FROM stocks s
	JOIN products p ON p.id = s.product_id
`

func (r *repository) GetAll(ctx context.Context) ([]Stock, error) {
	rows, err := r.db.QueryContext(ctx, stockSelect+" ORDER BY s.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []Stock
	for rows.Next() {
		var s Stock
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}

	return stocks, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Stock, error) {
	var s Stock
	err := r.db.QueryRowContext(ctx, stockSelect+" WHERE s.id = $1", id).
		Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByProductID(ctx context.Context, productID uint) (*Stock, error) {
	var s Stock
	err := r.db.QueryRowContext(ctx, stockSelect+" WHERE s.product_id = $1", productID).
		Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Create(ctx context.Context, productID uint, quantity int) (*Stock, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateStock"),
		zap.Uint("product_id", productID),
	)

	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO stocks (product_id, quantity)
		VALUES ($1, $2)
		RETURNING id
	`, productID, quantity).Scan(&id)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // one active stock record per product
				return nil, ErrStockExists
			case "23503":
				return nil, ErrProductNotFound
			}
		}
		log.Error("failed to insert stock", zap.Error(err))
		return nil, err
	}

	log.Info("stock record created", zap.Uint("stock_id", id), zap.Int("quantity", quantity))
	return r.GetByID(ctx, id)
}

func (r *repository) SetQuantity(ctx context.Context, id uint, quantity int) (*Stock, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stocks SET quantity = $1, updated_at = NOW() WHERE id = $2
	`, quantity, id)
	if err != nil {
		return nil, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrStockNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM stocks WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStockNotFound
	}

	return nil
}

func (r *repository) LockForUpdate(ctx context.Context, tx *sql.Tx, productID uint) (*LockedStock, error) {
	// FOR UPDATE OF s locks only the stock row, not the joined product row.
	var ls LockedStock
	err := tx.QueryRowContext(ctx, `
		SELECT s.product_id, p.name, p.price, s.quantity
		FROM stocks s
		JOIN products p ON p.id = s.product_id
		WHERE s.product_id = $1
		FOR UPDATE OF s
	`, productID).Scan(&ls.ProductID, &ls.ProductName, &ls.UnitPrice, &ls.Quantity)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}

	return &ls, nil
}

func (r *repository) AdjustLocked(ctx context.Context, tx *sql.Tx, productID uint, delta int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE stocks SET quantity = quantity + $1, updated_at = NOW()
		WHERE product_id = $2
	`, delta, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStockNotFound
	}

	return nil
}
