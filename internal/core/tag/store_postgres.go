// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/catalog/internal/platform/database/schema"
	"github.com/taibuivan/catalog/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join(schema.Tag.Columns(), ", ")

func scanTag(row pgx.Row) (*Tag, error) {
	t := &Tag{}
	if err := row.Scan(&t.ID, &t.Name, &t.Category, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`, selectColumns, schema.Tag.Table, schema.Tag.Name)
	return repository.queryTags(ctx, "list_tags", query)
}

func (repository *PostgresRepository) FindByIDs(ctx context.Context, ids []string) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[]) ORDER BY %s ASC`,
		selectColumns, schema.Tag.Table, schema.Tag.ID, schema.Tag.Name)
	return repository.queryTags(ctx, "find_tags_by_ids", query, ids)
}

func (repository *PostgresRepository) queryTags(ctx context.Context, action, query string, args ...any) ([]*Tag, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.Tag.Table, schema.Tag.ID)
	return repository.findOne(ctx, "get_tag_by_id", query, id)
}

func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.Tag.Table, schema.Tag.Name)
	return repository.findOne(ctx, "get_tag_by_name", query, name)
}

func (repository *PostgresRepository) findOne(ctx context.Context, action, query string, arg any) (*Tag, error) {
	t, err := scanTag(repository.db.QueryRow(ctx, query, arg))
	if dberr.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return t, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		schema.Tag.Table, schema.Tag.ID, schema.Tag.Name, schema.Tag.Category,
		schema.Tag.CreatedAt, schema.Tag.UpdatedAt)

	err := repository.db.QueryRow(ctx, query, tag.ID, tag.Name, tag.Category).Scan(&tag.CreatedAt, &tag.UpdatedAt)
	return dberr.Wrap(err, "create_tag")
}

func (repository *PostgresRepository) Update(ctx context.Context, tag *Tag) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = now() WHERE %s = $1 RETURNING %s`,
		schema.Tag.Table, schema.Tag.Name, schema.Tag.Category, schema.Tag.UpdatedAt,
		schema.Tag.ID, schema.Tag.UpdatedAt)

	err := repository.db.QueryRow(ctx, query, tag.ID, tag.Name, tag.Category).Scan(&tag.UpdatedAt)
	return dberr.Wrap(err, "update_tag")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Tag.Table, schema.Tag.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
