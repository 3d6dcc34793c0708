package schema

// ContentItemTagTable represents the 'catalog.content_item_tag' junction table
type ContentItemTagTable struct {
	Table  string
	ItemID string
	TagID  string
}

// ContentItemTag is the schema definition for catalog.content_item_tag
var ContentItemTag = ContentItemTagTable{
	Table:  "catalog.content_item_tag",
	ItemID: "item_id",
	TagID:  "tag_id",
}
