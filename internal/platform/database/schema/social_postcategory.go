package schema

// SocialPostCategoryTable represents the 'social.postcategory' join table
type SocialPostCategoryTable struct {
	Table      string
	PostID     string
	CategoryID string
}

// SocialPostCategory is the schema definition for social.postcategory
var SocialPostCategory = SocialPostCategoryTable{
	Table:      "social.postcategory",
	PostID:     "postid",
	CategoryID: "categoryid",
}

// Columns returns all standard column names
func (t SocialPostCategoryTable) Columns() []string {
	return []string{t.PostID, t.CategoryID}
}
