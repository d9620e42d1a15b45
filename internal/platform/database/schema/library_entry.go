package schema

// LibraryEntryTable represents the 'library.entry' table
type LibraryEntryTable struct {
	Table      string
	ID         string
	UserID     string
	BookID     string
	Status     string
	Progress   string
	Rating     string
	Notes      string
	IsPublic   string
	StartedAt  string
	FinishedAt string
	CreatedAt  string
	UpdatedAt  string
}

// LibraryEntry is the schema definition for library.entry
var LibraryEntry = LibraryEntryTable{
	Table:      "library.entry",
	ID:         "id",
	UserID:     "userid",
	BookID:     "bookid",
	Status:     "status",
	Progress:   "progress",
	Rating:     "rating",
	Notes:      "notes",
	IsPublic:   "ispublic",
	StartedAt:  "startedat",
	FinishedAt: "finishedat",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t LibraryEntryTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.Status, t.Progress, t.Rating, t.Notes,
		t.IsPublic, t.StartedAt, t.FinishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
