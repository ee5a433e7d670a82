package schema

// SocialLikeTable represents the 'social.likes' table
type SocialLikeTable struct {
	Table     string
	ID        string
	UserID    string
	PostID    string
	CommentID string
	CreatedAt string
}

// SocialLike is the schema definition for social.likes
var SocialLike = SocialLikeTable{
	Table:     "social.likes",
	ID:        "id",
	UserID:    "userid",
	PostID:    "postid",
	CommentID: "commentid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t SocialLikeTable) Columns() []string {
	return []string{t.ID, t.UserID, t.PostID, t.CommentID, t.CreatedAt}
}
