// Package postgres implements the remote product source against the
// storefront's Postgres database (the backing store of its hosted backend).
package postgres

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/agentstation/utc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/errors"
	"github.com/petalworks/shopfront/pkg/sources"
)

// Client implements sources.Source over a pgx connection pool.
type Client struct {
	pool *pgxpool.Pool
}

// Compile-time interface check to ensure proper implementation.
var _ sources.Source = (*Client)(nil)

// New connects to the database and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Client, error) {
	if databaseURL == "" {
		return nil, errors.NewConfigError("postgres", "DATABASE_URL not set", nil)
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.NewConfigError("postgres", "invalid connection configuration", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewSourceError("connection", err)
	}

	return &Client{pool: pool}, nil
}

// Close releases the connection pool.
func (c *Client) Close() {
	c.pool.Close()
}

// ListCategories returns every category in stored order.
func (c *Client) ListCategories(ctx context.Context) ([]sources.Category, error) {
	rows, err := c.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, errors.NewSourceError("categories", err)
	}
	defer rows.Close()

	var categories []sources.Category
	for rows.Next() {
		var cat sources.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, errors.NewSourceError("categories", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewSourceError("categories", err)
	}
	return categories, nil
}

// ListVisibleProducts returns the visible products joined with their
// category names, in stored order.
func (c *Client) ListVisibleProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT p.id, p.name, p.price, COALESCE(c.name, ''),
		       COALESCE(p.description, ''), p.images,
		       COALESCE(p.updated_at, p.created_at)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_visible
		ORDER BY p.id`)
	if err != nil {
		return nil, errors.NewSourceError("products", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			p         catalog.Product
			rawImages []byte
			updatedAt time.Time
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category,
			&p.Description, &rawImages, &updatedAt); err != nil {
			return nil, errors.NewSourceError("products", err)
		}
		p.Images = decodeImages(rawImages)
		ts := utc.New(updatedAt)
		p.UpdatedAt = &ts
		products = append(products, p.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewSourceError("products", err)
	}
	return products, nil
}

// ListProducts returns every product row, hidden ones included.
func (c *Client) ListProducts(ctx context.Context) ([]sources.ProductRecord, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT p.id, p.name, p.price, p.category_id, COALESCE(c.name, ''),
		       COALESCE(p.description, ''), p.images,
		       p.is_visible, p.is_pinned, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id`)
	if err != nil {
		return nil, errors.NewSourceError("products", err)
	}
	defer rows.Close()

	var records []sources.ProductRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewSourceError("products", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewSourceError("products", err)
	}
	return records, nil
}

// CreateCategory inserts a category and returns the stored row.
func (c *Client) CreateCategory(ctx context.Context, name string) (sources.Category, error) {
	var cat sources.Category
	err := c.pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&cat.ID, &cat.Name)
	if err != nil {
		return sources.Category{}, err
	}
	return cat, nil
}

// CreateProduct inserts a product and returns the stored row.
func (c *Client) CreateProduct(ctx context.Context, input sources.ProductInput) (sources.ProductRecord, error) {
	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}
	pinned := false
	if input.IsPinned != nil {
		pinned = *input.IsPinned
	}

	var id int64
	err := c.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, category_id, description, images, is_visible, is_pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		input.Name, input.Price, input.CategoryID, input.Description,
		encodeImages(input.Images), visible, pinned).Scan(&id)
	if err != nil {
		return sources.ProductRecord{}, err
	}
	return c.product(ctx, id)
}

// UpdateProduct replaces a product's fields and stamps its update time.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input sources.ProductInput) (sources.ProductRecord, error) {
	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}
	pinned := false
	if input.IsPinned != nil {
		pinned = *input.IsPinned
	}

	tag, err := c.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, price = $3, category_id = $4, description = $5,
		    images = $6, is_visible = $7, is_pinned = $8, updated_at = now()
		WHERE id = $1`,
		id, input.Name, input.Price, input.CategoryID, input.Description,
		encodeImages(input.Images), visible, pinned)
	if err != nil {
		return sources.ProductRecord{}, err
	}
	if tag.RowsAffected() == 0 {
		return sources.ProductRecord{}, errors.NewNotFoundError("product", formatID(id))
	}
	return c.product(ctx, id)
}

// DeleteProduct removes a product row.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := c.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("product", formatID(id))
	}
	return nil
}

// SetVisibility flips a product's visibility flag.
func (c *Client) SetVisibility(ctx context.Context, id int64, visible bool) (sources.ProductRecord, error) {
	return c.setFlag(ctx, id, "is_visible", visible)
}

// SetPinned flips a product's pinned flag.
func (c *Client) SetPinned(ctx context.Context, id int64, pinned bool) (sources.ProductRecord, error) {
	return c.setFlag(ctx, id, "is_pinned", pinned)
}

// setFlag updates one boolean column. The column name is fixed by the two
// callers above, never caller-supplied.
func (c *Client) setFlag(ctx context.Context, id int64, column string, value bool) (sources.ProductRecord, error) {
	tag, err := c.pool.Exec(ctx,
		`UPDATE products SET `+column+` = $2, updated_at = now() WHERE id = $1`,
		id, value)
	if err != nil {
		return sources.ProductRecord{}, err
	}
	if tag.RowsAffected() == 0 {
		return sources.ProductRecord{}, errors.NewNotFoundError("product", formatID(id))
	}
	return c.product(ctx, id)
}

// product fetches one admin row by id.
func (c *Client) product(ctx context.Context, id int64) (sources.ProductRecord, error) {
	row := c.pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.price, p.category_id, COALESCE(c.name, ''),
		       COALESCE(p.description, ''), p.images,
		       p.is_visible, p.is_pinned, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, id)

	rec, err := scanRecord(row)
	if err == pgx.ErrNoRows {
		return sources.ProductRecord{}, errors.NewNotFoundError("product", formatID(id))
	}
	if err != nil {
		return sources.ProductRecord{}, err
	}
	return rec, nil
}

// scanner covers both pgx.Rows and pgx.Row.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (sources.ProductRecord, error) {
	var (
		rec       sources.ProductRecord
		rawImages []byte
		createdAt time.Time
		updatedAt *time.Time
	)
	err := s.Scan(&rec.ID, &rec.Name, &rec.Price, &rec.CategoryID,
		&rec.CategoryName, &rec.Description, &rawImages,
		&rec.IsVisible, &rec.IsPinned, &createdAt, &updatedAt)
	if err != nil {
		return sources.ProductRecord{}, err
	}

	rec.Images = decodeImages(rawImages)
	rec.CreatedAt = utc.New(createdAt)
	if updatedAt != nil {
		ts := utc.New(*updatedAt)
		rec.UpdatedAt = &ts
	}
	return rec, nil
}

// decodeImages parses the jsonb images column. Anything that is not a JSON
// array of strings becomes an empty slice; Images is never nil.
func decodeImages(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil || images == nil {
		return []string{}
	}
	return images
}

// encodeImages serializes image URLs for the jsonb column.
func encodeImages(images []string) []byte {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return []byte("[]")
	}
	return data
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
