// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item is one catalogue entry of any kind.
//
// Date is set only for kinds that require it, Price only for shop items;
// both are omitted from JSON when unset. Price always renders as a decimal
// string ("50000"), never as a float.
type Item struct {
	ID          string           `json:"id"`
	Kind        string           `json:"-"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImgSrc      string           `json:"imgSrc"`
	URLText     string           `json:"urlText"`
	Date        *Date            `json:"date,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Tags        []string         `json:"tags"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	// TagIDs is the stored association set. Tags holds its resolved names.
	TagIDs []string `json:"-"`
}

// Input is the payload for creating an item.
type Input struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImgSrc      string           `json:"imgSrc"`
	Date        *Date            `json:"date"`
	Price       *decimal.Decimal `json:"price"`
	Tags        []string         `json:"tags"`
}

// Patch carries a partial update. Nil fields are left untouched; a non-nil
// Tags (even empty) replaces the item's tag associations.
type Patch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	ImgSrc      *string          `json:"imgSrc"`
	Date        *Date            `json:"date"`
	Price       *decimal.Decimal `json:"price"`
	Tags        *[]string        `json:"tags"`
}

// Validation field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImgSrc      = "imgSrc"
	FieldDate        = "date"
	FieldPrice       = "price"
)

const maxTitleLength = 255

// Date is a calendar timestamp accepted as RFC 3339 or as a bare
// "2006-01-02" date. An empty string decodes to the zero Date.
type Date struct {
	time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{Time: t.UTC()}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			d.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("content: invalid date %q", raw)
}
