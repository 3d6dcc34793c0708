// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

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

var selectColumns = strings.Join(schema.ContactRequest.Columns(), ", ")

func scanRequest(row pgx.Row) (*Request, error) {
	r := &Request{}
	err := row.Scan(&r.ID, &r.Name, &r.Phone, &r.Email, &r.Company, &r.Budget, &r.Comment, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		selectColumns, schema.ContactRequest.Table, schema.ContactRequest.CreatedAt)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_contact_requests")
	}
	defer rows.Close()

	requests := make([]*Request, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_contact_request")
		}
		requests = append(requests, r)
	}
	return requests, dberr.Wrap(rows.Err(), "list_contact_requests")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.ContactRequest.Table, schema.ContactRequest.ID)

	r, err := scanRequest(repository.db.QueryRow(ctx, query, id))
	if dberr.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_contact_request")
	}
	return r, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, r *Request) error {
	c := schema.ContactRequest
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING %s`,
		c.Table, c.ID, c.Name, c.Phone, c.Email, c.Company, c.Budget, c.Comment, c.CreatedAt)

	err := repository.db.QueryRow(ctx, query, r.ID, r.Name, r.Phone, r.Email, r.Company, r.Budget, r.Comment).
		Scan(&r.CreatedAt)
	return dberr.Wrap(err, "create_contact_request")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ContactRequest.Table, schema.ContactRequest.ID)

	result, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_contact_request")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
