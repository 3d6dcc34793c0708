package schema

// ContentItemTable represents the 'catalog.content_item' table.
// All four content kinds share it, discriminated by Kind.
type ContentItemTable struct {
	Table       string
	ID          string
	Kind        string
	Title       string
	Description string
	ImgSrc      string
	URLText     string
	Date        string
	Price       string
	CreatedAt   string
	UpdatedAt   string

	// SlugConstraint is the unique index over (kind, url_text).
	SlugConstraint string
}

// ContentItem is the schema definition for catalog.content_item
var ContentItem = ContentItemTable{
	Table:          "catalog.content_item",
	ID:             "id",
	Kind:           "kind",
	Title:          "title",
	Description:    "description",
	ImgSrc:         "img_src",
	URLText:        "url_text",
	Date:           "item_date",
	Price:          "price",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
	SlugConstraint: "content_item_kind_url_text_key",
}

func (t ContentItemTable) Columns() []string {
	return []string{t.ID, t.Kind, t.Title, t.Description, t.ImgSrc, t.URLText, t.Date, t.Price, t.CreatedAt, t.UpdatedAt}
}
