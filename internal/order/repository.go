package order

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"gomitas-be/internal/inventory"
	"gomitas-be/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrder runs the whole reservation inside one transaction:
	// header insert, per-line stock lock + decrement, line inserts with
	// price snapshots, total update. Any failure rolls everything back.
	CreateOrder(ctx context.Context, userID uint, status Status, lines []LineRequest) (*Order, error)

	GetByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, page, perPage int) ([]Order, int, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// CancelOrder restores stock for every line and marks the order
	// cancelled in the same transaction. Lines are kept as history.
	CancelOrder(ctx context.Context, o *Order) error

	// DeleteOrder restores stock like CancelOrder, then removes the order
	// row (lines cascade) before committing.
	DeleteOrder(ctx context.Context, o *Order) error
}

type repository struct {
	db     *sql.DB
	stocks inventory.Repository
}

func NewRepository(db *sql.DB, stocks inventory.Repository) Repository {
	return &repository{db: db, stocks: stocks}
}

// sortedByProduct returns a copy ordered by product id so concurrent
// multi-line orders always lock stock rows in the same sequence.
func sortedByProduct(lines []LineRequest) []LineRequest {
	sorted := make([]LineRequest, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ProductID < sorted[j].ProductID
	})
	return sorted
}

func (r *repository) CreateOrder(
	ctx context.Context,
	userID uint,
	status Status,
	lines []LineRequest,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", userID),
		zap.Int("line_count", len(lines)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	o := &Order{
		UserID: userID,
		Status: status,
		Total:  decimal.Zero,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, total)
		VALUES ($1, $2, 0)
		RETURNING id, created_at, updated_at
	`, userID, status).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order header", zap.Error(err))
		return nil, err
	}

	total := decimal.Zero

	for _, req := range sortedByProduct(lines) {
		stock, err := r.stocks.LockForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			if errors.Is(err, inventory.ErrStockNotFound) {
				log.Warn("no stock record for requested product",
					zap.Uint("product_id", req.ProductID),
				)
				return nil, ErrProductNotFound
			}
			log.Error("failed to lock stock row",
				zap.Uint("product_id", req.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		if stock.Quantity < req.Quantity {
			log.Info("insufficient stock, aborting order",
				zap.Uint("product_id", req.ProductID),
				zap.Int("requested", req.Quantity),
				zap.Int("available", stock.Quantity),
			)
			return nil, &InsufficientStockError{
				ProductID:   req.ProductID,
				ProductName: stock.ProductName,
				Available:   stock.Quantity,
			}
		}

		if err := r.stocks.AdjustLocked(ctx, tx, req.ProductID, -req.Quantity); err != nil {
			log.Error("failed to decrement stock",
				zap.Uint("product_id", req.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		line := Line{
			OrderID:     o.ID,
			ProductID:   req.ProductID,
			ProductName: stock.ProductName,
			Quantity:    req.Quantity,
			UnitPrice:   stock.UnitPrice,
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, o.ID, req.ProductID, req.Quantity, stock.UnitPrice).Scan(&line.ID)
		if err != nil {
			log.Error("failed to insert order line",
				zap.Uint("product_id", req.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		total = total.Add(line.Subtotal())
		o.Lines = append(o.Lines, line)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET total = $1 WHERE id = $2
	`, total, o.ID)
	if err != nil {
		log.Error("failed to set order total", zap.Error(err))
		return nil, err
	}
	o.Total = total

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("total", total.String()),
	)
	return o, nil
}

// revertStockTx adds each line's quantity back to its stock row under the
// row lock. A missing stock row is logged and skipped so a historical
// order can still be cancelled after inventory data has drifted.
func (r *repository) revertStockTx(ctx context.Context, tx *sql.Tx, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "revertStockTx"),
		zap.Uint("order_id", o.ID),
	)

	lines := make([]Line, len(o.Lines))
	copy(lines, o.Lines)
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})

	for _, line := range lines {
		_, err := r.stocks.LockForUpdate(ctx, tx, line.ProductID)
		if err != nil {
			if errors.Is(err, inventory.ErrStockNotFound) {
				log.Warn("stock record missing during reversion, skipping",
					zap.Uint("product_id", line.ProductID),
					zap.Int("quantity", line.Quantity),
				)
				continue
			}
			return err
		}

		if err := r.stocks.AdjustLocked(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) CancelOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelOrder"),
		zap.Uint("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if err := r.revertStockTx(ctx, tx, o); err != nil {
		log.Error("failed to restore stock", zap.Error(err))
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, StatusCancelled, o.ID)
	if err != nil {
		log.Error("failed to mark order cancelled", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cancel transaction", zap.Error(err))
		return err
	}
	committed = true

	log.Info("order cancelled, stock restored")
	return nil
}

func (r *repository) DeleteOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteOrder"),
		zap.Uint("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if err := r.revertStockTx(ctx, tx, o); err != nil {
		log.Error("failed to restore stock", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, o.ID)
	if err != nil {
		log.Error("failed to delete order", zap.Error(err))
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit delete transaction", zap.Error(err))
		return err
	}
	committed = true

	log.Info("order deleted, stock restored")
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, total, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, []uint{o.ID})
	if err != nil {
		return nil, err
	}
	o.Lines = lines[o.ID]

	return &o, nil
}

func (r *repository) List(ctx context.Context, page, perPage int) ([]Order, int, error) {
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * perPage

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, status, total, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []Order
	var ids []uint
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		lines, err := r.loadLines(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range orders {
			orders[i].Lines = lines[orders[i].ID]
		}
	}

	return orders, count, nil
}

// loadLines fetches lines for a batch of orders in one query. Product
// names come from a left join; a deleted product leaves the name empty.
func (r *repository) loadLines(ctx context.Context, orderIDs []uint) (map[uint][]Line, error) {
	ids := make([]int64, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = int64(id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ol.id, ol.order_id, ol.product_id, COALESCE(p.name, ''), ol.quantity, ol.unit_price
		FROM order_lines ol
		LEFT JOIN products p ON p.id = ol.product_id
		WHERE ol.order_id = ANY($1)
		ORDER BY ol.id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uint][]Line)
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		result[l.OrderID] = append(result[l.OrderID], l)
	}
	return result, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
