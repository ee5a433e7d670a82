package schema

// SocialPostTable represents the 'social.post' table
type SocialPostTable struct {
	Table      string
	ID         string
	UserID     string
	Title      string
	Content    string
	ImageURL   string
	IsArchived string
	CreatedAt  string
	UpdatedAt  string
}

// SocialPost is the schema definition for social.post
var SocialPost = SocialPostTable{
	Table:      "social.post",
	ID:         "id",
	UserID:     "userid",
	Title:      "title",
	Content:    "content",
	ImageURL:   "imageurl",
	IsArchived: "isarchived",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t SocialPostTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Content, t.ImageURL,
		t.IsArchived, t.CreatedAt, t.UpdatedAt,
	}
}
