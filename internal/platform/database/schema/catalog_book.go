package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table         string
	ID            string
	Title         string
	Author        string
	Slug          string
	CoverURL      string
	Description   string
	Publisher     string
	PublishedDate string
	PageCount     string
	ExternalID    string
	Language      string
	RatingAvg     string
	RatingCount   string
	CreatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	Slug:          "slug",
	CoverURL:      "coverurl",
	Description:   "description",
	Publisher:     "publisher",
	PublishedDate: "publisheddate",
	PageCount:     "pagecount",
	ExternalID:    "externalid",
	Language:      "language",
	RatingAvg:     "ratingavg",
	RatingCount:   "ratingcount",
	CreatedAt:     "createdat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.Slug, t.CoverURL, t.Description, t.Publisher,
		t.PublishedDate, t.PageCount, t.ExternalID, t.Language, t.RatingAvg,
		t.RatingCount, t.CreatedAt,
	}
}
