// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/catalog/internal/platform/database/schema"
	"github.com/taibuivan/catalog/internal/platform/dberr"
)

// PostgresRepository stores every content kind in catalog.content_item with
// tag associations in catalog.content_item_tag.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	cols  = schema.ContentItem
	links = schema.ContentItemTag
)

// selectItems reads one item row, in [schema.ContentItemTable.Columns] order,
// plus its aggregated tag ids.
var selectItems = fmt.Sprintf(`
	SELECT %s,
		COALESCE(array_agg(t.%s::text) FILTER (WHERE t.%s IS NOT NULL), '{}')
	FROM %s i
	LEFT JOIN %s t ON t.%s = i.%s`,
	itemColumns(),
	links.TagID, links.TagID,
	cols.Table,
	links.Table, links.ItemID, cols.ID,
)

// itemColumns qualifies the item columns with the i alias. Price is read as
// text so the decimal keeps its stored scale.
func itemColumns() string {
	columns := cols.Columns()
	qualified := make([]string, 0, len(columns))
	for _, column := range columns {
		expression := "i." + column
		if column == cols.Price {
			expression += "::text"
		}
		qualified = append(qualified, expression)
	}
	return strings.Join(qualified, ", ")
}

var groupByItem = fmt.Sprintf(` GROUP BY i.%s`, cols.ID)

// scanItem reads a selectItems row. The destinations follow Columns().
func scanItem(row pgx.Row) (*Item, error) {
	var (
		it    Item
		date  *time.Time
		price *string
	)

	err := row.Scan(&it.ID, &it.Kind, &it.Title, &it.Description, &it.ImgSrc, &it.URLText,
		&date, &price, &it.CreatedAt, &it.UpdatedAt, &it.TagIDs)
	if err != nil {
		return nil, err
	}

	if date != nil {
		it.Date = NewDate(*date)
	}
	if price != nil {
		parsed, err := decimal.NewFromString(*price)
		if err != nil {
			return nil, fmt.Errorf("postgres: invalid price %q: %w", *price, err)
		}
		it.Price = &parsed
	}
	return &it, nil
}

func (repository *PostgresRepository) List(ctx context.Context, kind string) ([]*Item, error) {
	query := selectItems + fmt.Sprintf(` WHERE i.%s = $1`, cols.Kind) + groupByItem +
		fmt.Sprintf(` ORDER BY i.%s DESC, i.%s DESC`, cols.CreatedAt, cols.ID)

	rows, err := repository.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, dberr.Wrap(err, "list_content")
	}
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_content")
		}
		items = append(items, it)
	}

	return items, dberr.Wrap(rows.Err(), "list_content")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, kind, id string) (*Item, error) {
	query := selectItems + fmt.Sprintf(` WHERE i.%s = $1 AND i.%s = $2`, cols.Kind, cols.ID) + groupByItem
	return repository.findOne(ctx, "get_content_by_id", query, kind, id)
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, kind, slug string) (*Item, error) {
	query := selectItems + fmt.Sprintf(` WHERE i.%s = $1 AND i.%s = $2`, cols.Kind, cols.URLText) + groupByItem
	return repository.findOne(ctx, "get_content_by_slug", query, kind, slug)
}

func (repository *PostgresRepository) findOne(ctx context.Context, action, query string, args ...any) (*Item, error) {
	it, err := scanItem(repository.pool.QueryRow(ctx, query, args...))
	if dberr.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return it, nil
}

/*
Create inserts the item row and its tag associations in one transaction.

Returns:
  - error: A CONFLICT wrapping the unique violation on
    [schema.ContentItem.SlugConstraint] when the slug is taken
*/
func (repository *PostgresRepository) Create(ctx context.Context, it *Item) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric)
		RETURNING %s, %s`,
		cols.Table, cols.ID, cols.Kind, cols.Title, cols.Description, cols.ImgSrc, cols.URLText,
		cols.Date, cols.Price, cols.CreatedAt, cols.UpdatedAt)

	err = transaction.QueryRow(ctx, query,
		it.ID, it.Kind, it.Title, it.Description, it.ImgSrc, it.URLText,
		dateArg(it.Date), priceArg(it.Price),
	).Scan(&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_content")
	}

	if err := replaceTags(ctx, transaction, it.ID, it.TagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_create_content")
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, it *Item, withTags bool) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8::numeric, %s = now()
		WHERE %s = $1 AND %s = $2
		RETURNING %s`,
		cols.Table, cols.Title, cols.Description, cols.ImgSrc, cols.URLText, cols.Date, cols.Price, cols.UpdatedAt,
		cols.Kind, cols.ID,
		cols.UpdatedAt)

	err = transaction.QueryRow(ctx, query,
		it.Kind, it.ID, it.Title, it.Description, it.ImgSrc, it.URLText,
		dateArg(it.Date), priceArg(it.Price),
	).Scan(&it.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_content")
	}

	if withTags {
		if err := replaceTags(ctx, transaction, it.ID, it.TagIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_update_content")
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to drop the item's associations.
func (repository *PostgresRepository) Delete(ctx context.Context, kind, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, cols.Table, cols.Kind, cols.ID)

	result, err := repository.pool.Exec(ctx, query, kind, id)
	if err != nil {
		return dberr.Wrap(err, "delete_content")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// replaceTags clears and rewrites an item's associations inside transaction.
// Repeated ids collapse into one row.
func replaceTags(ctx context.Context, transaction pgx.Tx, itemID string, tagIDs []string) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, links.Table, links.ItemID)
	if _, err := transaction.Exec(ctx, deleteQuery, itemID); err != nil {
		return dberr.Wrap(err, "clear_content_tags")
	}

	if len(tagIDs) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		links.Table, links.ItemID, links.TagID)

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(insert, itemID, tagID)
	}
	if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
		return dberr.Wrap(err, "insert_content_tags")
	}
	return nil
}

func dateArg(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func priceArg(p *decimal.Decimal) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}
