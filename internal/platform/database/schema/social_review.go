package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table         string
	ID            string
	UserID        string
	BookID        string
	Rating        string
	Content       string
	IsRecommended string
	HasSpoilers   string
	LikeCount     string
	CreatedAt     string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:         "social.review",
	ID:            "id",
	UserID:        "userid",
	BookID:        "bookid",
	Rating:        "rating",
	Content:       "content",
	IsRecommended: "isrecommended",
	HasSpoilers:   "hasspoilers",
	LikeCount:     "likecount",
	CreatedAt:     "createdat",
}

func (t SocialReviewTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.Rating, t.Content, t.IsRecommended,
		t.HasSpoilers, t.LikeCount, t.CreatedAt,
	}
}

// SocialReviewLikeTable represents the 'social.reviewlike' join table
type SocialReviewLikeTable struct {
	Table     string
	UserID    string
	ReviewID  string
	CreatedAt string
}

// SocialReviewLike is the schema definition for social.reviewlike
var SocialReviewLike = SocialReviewLikeTable{
	Table:     "social.reviewlike",
	UserID:    "userid",
	ReviewID:  "reviewid",
	CreatedAt: "createdat",
}
