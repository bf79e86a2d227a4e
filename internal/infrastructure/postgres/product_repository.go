package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/repository"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

const productColumns = `id, name, description, price_amount::text, price_currency, stock_quantity, category_id, COALESCE(image_url, ''), active, created_at, updated_at`

// ProductRepository persists products with pgx. The price is stored
// as NUMERIC plus a currency column and rebuilt into a Money value on
// read.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, price_amount, price_currency, stock_quantity, category_id, image_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
	`, p.ID, p.Name, p.Description, p.Price.Amount().String(), p.Price.Currency(), p.StockQuantity, p.CategoryID, p.ImageURL, p.Active, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price_amount = $3::numeric, price_currency = $4,
		    stock_quantity = $5, category_id = $6, image_url = NULLIF($7, ''), active = $8, updated_at = $9
		WHERE id = $10
	`, p.Name, p.Description, p.Price.Amount().String(), p.Price.Currency(), p.StockQuantity, p.CategoryID, p.ImageURL, p.Active, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.Newf(errs.NotFound, "product %s not found", p.ID)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "product %s not found", id)
	}
	return p, err
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE category_id = $1 AND active
		ORDER BY name
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *ProductRepository) ExistsByNameInCategory(ctx context.Context, name, categoryID, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM products
			WHERE category_id = $1 AND lower(name) = lower($2) AND active AND id <> $3
		)
	`, categoryID, name, excludeID).Scan(&exists)
	return exists, err
}

// UpdateStock is a compare-and-set: the write only lands if the stored
// quantity still equals expected. Zero rows means either the product
// vanished or a concurrent writer got there first.
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, expected, next int) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET stock_quantity = $1, updated_at = now()
		WHERE id = $2 AND stock_quantity = $3
	`, next, id, expected)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		exists, eerr := r.ExistsByID(ctx, id)
		if eerr != nil {
			return eerr
		}
		if !exists {
			return errs.Newf(errs.NotFound, "product %s not found", id)
		}
		return errs.New(errs.Conflict, "stock changed concurrently")
	}
	return nil
}

func (r *ProductRepository) SearchByText(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE active AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n)
	return n, err
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p        entity.Product
		amount   string
		currency string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &amount, &currency, &p.StockQuantity,
		&p.CategoryID, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	price, err := valueobject.NewMoney(d, currency)
	if err != nil {
		return nil, err
	}
	p.Price = price
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
