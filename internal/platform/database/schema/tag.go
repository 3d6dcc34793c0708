package schema

// TagTable represents the 'catalog.tag' table
type TagTable struct {
	Table     string
	ID        string
	Name      string
	Category  string
	CreatedAt string
	UpdatedAt string

	// NameConstraint is the unique index over name.
	NameConstraint string
}

// Tag is the schema definition for catalog.tag
var Tag = TagTable{
	Table:          "catalog.tag",
	ID:             "id",
	Name:           "name",
	Category:       "category",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
	NameConstraint: "tag_name_key",
}

func (t TagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Category, t.CreatedAt, t.UpdatedAt}
}
