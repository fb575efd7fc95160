package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/shoplane/storefront/internal/catalog/app"
	"github.com/shoplane/storefront/internal/catalog/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, price, stock, images, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var (
		p      domain.Product
		id     uuid.UUID
		price  decimal.Decimal
		images pq.StringArray
	)
	err := row.Scan(&id, &p.Name, &p.Description, &price, &p.Stock, &images, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}

	p.ID = id.String()
	p.Price = price
	p.Images = []string(images)
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, stock, images)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Stock, pq.Array(p.Images),
	)
	return scanProduct(row)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1`,
		prodID,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	var cur uuid.NullUUID
	if strings.TrimSpace(cursor) != "" {
		uid, err := uuid.Parse(strings.TrimSpace(cursor))
		if err != nil {
			return nil, "", app.ErrInvalidInput
		}
		cur = uuid.NullUUID{UUID: uid, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2::uuid IS NULL OR id > $2)
		ORDER BY id
		LIMIT $3`,
		strings.TrimSpace(query), cur, limit,
	)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, limit)
	var nextCursor string

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, "", err
		}
		out = append(out, p)
		nextCursor = p.ID
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	if len(out) < limit {
		nextCursor = ""
	}

	return out, nextCursor, nil
}

// FindByIDs returns the records that exist for the given ids. Ids that do
// not parse or do not exist are skipped, not errored.
func (r *ProductRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	uuids := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		uid, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		uuids = append(uuids, uid)
	}
	if len(uuids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1)`,
		pq.Array(uuids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, len(uuids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING `+productColumns,
		prodID, delta,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the product is gone or the delta would drive stock negative.
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return domain.Product{}, getErr
		}
		return domain.Product{}, fmt.Errorf("adjust stock for %s by %d: %w", id, delta, app.ErrInsufficientStock)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
