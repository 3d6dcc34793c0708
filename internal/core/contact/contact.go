// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package contact stores enquiries submitted through the public site for
// administrators to review.
package contact

import (
	"context"
	"time"
)

// Request is one submitted enquiry. Optional fields are nil when blank.
type Request struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     string    `json:"email"`
	Company   *string   `json:"company"`
	Budget    *string   `json:"budget"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Input is the public submission payload.
type Input struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Budget  string `json:"budget"`
	Comment string `json:"comment"`
}

// Validation field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldComment = "comment"
)

const (
	maxNameLength    = 200
	maxCommentLength = 5000
)

// Repository is the persistence contract for contact requests.
// FindByID returns (nil, nil) when absent.
type Repository interface {
	List(ctx context.Context) ([]*Request, error)
	FindByID(ctx context.Context, id string) (*Request, error)
	Create(ctx context.Context, request *Request) error
	Delete(ctx context.Context, id string) error
}
