package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productColumns() []string {
	return []string{
		"id", "name", "flavor", "size", "price", "created_at", "updated_at",
		"s_id", "s_quantity",
	}
}

func TestRepository_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(productColumns()).
			AddRow(1, "Osito Clasico", "fresa", "mediano", "10.00", now, now, 1, 50).
			AddRow(2, "Gusano Acido", "limon", "grande", "12.50", now, now, nil, nil)

		mock.ExpectQuery(`SELECT .* FROM products p LEFT JOIN stocks s ON s.product_id = p.id ORDER BY p.id`).
			WillReturnRows(rows)

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "Osito Clasico", products[0].Name)
		require.NotNil(t, products[0].Stock)
		assert.Equal(t, 50, products[0].Stock.Quantity)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("10.00")))

		// product without a stock record
		assert.Nil(t, products[1].Stock)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products`).
			WillReturnError(errors.New("db error"))

		_, err := repo.GetAll(ctx)
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(productColumns()).
			AddRow(1, "Osito Clasico", "fresa", "mediano", "10.00", now, now, 1, 50)

		mock.ExpectQuery(`SELECT .* FROM products p LEFT JOIN stocks s ON s.product_id = p.id WHERE p.id = \$1`).
			WithArgs(uint(1)).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
		require.NotNil(t, p.Stock)
		assert.Equal(t, 50, p.Stock.Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products p LEFT JOIN stocks s ON s.product_id = p.id WHERE p.id = \$1`).
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	price := decimal.RequireFromString("10.00")

	t.Run("WithInitialStock", func(t *testing.T) {
		qty := 50

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO products \(name, flavor, size, price\)`).
			WithArgs("Osito Clasico", "fresa", "mediano", price).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "flavor", "size", "price", "created_at", "updated_at"}).
				AddRow(1, "Osito Clasico", "fresa", "mediano", "10.00", now, now))
		mock.ExpectQuery(`INSERT INTO stocks \(product_id, quantity\)`).
			WithArgs(uint(1), 50).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectCommit()

		p, err := repo.Create(ctx, NewProduct{
			Name:            "Osito Clasico",
			Flavor:          "fresa",
			Size:            "mediano",
			Price:           price,
			InitialQuantity: &qty,
		})
		require.NoError(t, err)
		require.NotNil(t, p.Stock)
		assert.Equal(t, uint(7), p.Stock.ID)
		assert.Equal(t, 50, p.Stock.Quantity)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WithoutInitialStock", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "flavor", "size", "price", "created_at", "updated_at"}).
				AddRow(2, "Gusano Acido", "limon", "grande", "12.50", now, now))
		mock.ExpectCommit()

		p, err := repo.Create(ctx, NewProduct{Name: "Gusano Acido", Flavor: "limon", Size: "grande", Price: price})
		require.NoError(t, err)
		assert.Nil(t, p.Stock)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		_, err := repo.Create(ctx, NewProduct{Name: "Osito Clasico", Price: price})
		assert.ErrorIs(t, err, ErrNameTaken)
	})

	t.Run("StockInsertFails", func(t *testing.T) {
		qty := 5

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "flavor", "size", "price", "created_at", "updated_at"}).
				AddRow(3, "Aro de Manzana", "manzana", "chico", "8.00", now, now))
		mock.ExpectQuery(`INSERT INTO stocks`).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err := repo.Create(ctx, NewProduct{Name: "Aro de Manzana", Price: price, InitialQuantity: &qty})
		assert.Error(t, err)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		newPrice := decimal.RequireFromString("11.00")
		now := time.Now()

		mock.ExpectExec(`UPDATE products SET price = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(newPrice, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT .* FROM products p LEFT JOIN stocks s ON s.product_id = p.id WHERE p.id = \$1`).
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow(1, "Osito Clasico", "fresa", "mediano", "11.00", now, now, 1, 50))

		p, err := repo.Update(ctx, 1, UpdateProduct{Price: &newPrice})
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(newPrice))
	})

	t.Run("NotFound", func(t *testing.T) {
		name := "Nuevo"
		mock.ExpectExec(`UPDATE products SET name = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(name, uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Update(ctx, 99, UpdateProduct{Name: &name})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("NoFields", func(t *testing.T) {
		_, err := repo.Update(ctx, 1, UpdateProduct{})
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 99), ErrProductNotFound)
	})
}
