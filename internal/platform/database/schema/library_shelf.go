package schema

// LibraryShelfTable represents the 'library.shelf' table
type LibraryShelfTable struct {
	Table     string
	ID        string
	UserID    string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// LibraryShelf is the schema definition for library.shelf
var LibraryShelf = LibraryShelfTable{
	Table:     "library.shelf",
	ID:        "id",
	UserID:    "userid",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// LibraryShelfBookTable represents the 'library.shelfbook' join table
type LibraryShelfBookTable struct {
	Table   string
	ShelfID string
	BookID  string
	AddedAt string
}

// LibraryShelfBook is the schema definition for library.shelfbook
var LibraryShelfBook = LibraryShelfBookTable{
	Table:   "library.shelfbook",
	ShelfID: "shelfid",
	BookID:  "bookid",
	AddedAt: "addedat",
}
