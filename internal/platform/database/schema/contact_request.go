package schema

// ContactRequestTable represents the 'catalog.contact_request' table
type ContactRequestTable struct {
	Table     string
	ID        string
	Name      string
	Phone     string
	Email     string
	Company   string
	Budget    string
	Comment   string
	CreatedAt string
}

// ContactRequest is the schema definition for catalog.contact_request
var ContactRequest = ContactRequestTable{
	Table:     "catalog.contact_request",
	ID:        "id",
	Name:      "name",
	Phone:     "phone",
	Email:     "email",
	Company:   "company",
	Budget:    "budget",
	Comment:   "comment",
	CreatedAt: "created_at",
}

func (t ContactRequestTable) Columns() []string {
	return []string{t.ID, t.Name, t.Phone, t.Email, t.Company, t.Budget, t.Comment, t.CreatedAt}
}
