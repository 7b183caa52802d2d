package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gomitas-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, id uint, input UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productSelect = `
	SELECT
		p.id, p.name, p.flavor, p.size, p.price, p.created_at, p.updated_at,
		s.id, s.quantity
	FROM products p
	LEFT JOIN stocks s ON s.product_id = p.id
`

func scanProduct(scanner interface {
	Scan(dest ...any) error
}) (*Product, error) {
	var p Product
	var stockID sql.NullInt64
	var stockQty sql.NullInt64

	err := scanner.Scan(
		&p.ID, &p.Name, &p.Flavor, &p.Size, &p.Price, &p.CreatedAt, &p.UpdatedAt,
		&stockID, &stockQty,
	)
	if err != nil {
		return nil, err
	}

	if stockID.Valid {
		p.Stock = &StockInfo{
			ID:       uint(stockID.Int64),
			Quantity: int(stockQty.Int64),
		}
	}

	return &p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+" ORDER BY p.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+" WHERE p.id = $1", id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, input NewProduct) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("name", input.Name),
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
			}
		}
	}()

	var p Product
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (name, flavor, size, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, flavor, size, price, created_at, updated_at
	`, input.Name, input.Flavor, input.Size, input.Price).
		Scan(&p.ID, &p.Name, &p.Flavor, &p.Size, &p.Price, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrNameTaken
		}
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	if input.InitialQuantity != nil {
		var stockID uint
		err = tx.QueryRowContext(ctx, `
			INSERT INTO stocks (product_id, quantity)
			VALUES ($1, $2)
			RETURNING id
		`, p.ID, *input.InitialQuantity).Scan(&stockID)
		if err != nil {
			log.Error("failed to insert initial stock", zap.Error(err))
			return nil, err
		}
		p.Stock = &StockInfo{ID: stockID, Quantity: *input.InitialQuantity}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("product created", zap.Uint("product_id", p.ID))
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateProduct) (*Product, error) {
	sets := []string{}
	args := []any{}
	argIndex := 1

	if input.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *input.Name)
		argIndex++
	}
	if input.Flavor != nil {
		sets = append(sets, fmt.Sprintf("flavor = $%d", argIndex))
		args = append(args, *input.Flavor)
		argIndex++
	}
	if input.Size != nil {
		sets = append(sets, fmt.Sprintf("size = $%d", argIndex))
		args = append(args, *input.Size)
		argIndex++
	}
	if input.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", argIndex))
		args = append(args, *input.Price)
		argIndex++
	}

	if len(sets) == 0 {
		return nil, ErrNothingToUpdate
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	// stocks cascade via FK
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
