package schema

// LibraryActivityTable represents the append-only 'library.activity' table
type LibraryActivityTable struct {
	Table      string
	ID         string
	UserID     string
	BookID     string
	Type       string
	Details    string
	OccurredAt string
}

// LibraryActivity is the schema definition for library.activity
var LibraryActivity = LibraryActivityTable{
	Table:      "library.activity",
	ID:         "id",
	UserID:     "userid",
	BookID:     "bookid",
	Type:       "type",
	Details:    "details",
	OccurredAt: "occurredat",
}

func (t LibraryActivityTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.Type, t.Details, t.OccurredAt}
}
