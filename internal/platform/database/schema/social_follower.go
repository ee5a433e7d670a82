package schema

// SocialFollowerTable represents the 'social.follower' table
type SocialFollowerTable struct {
	Table       string
	ID          string
	FollowerID  string
	FollowingID string
	CreatedAt   string
}

// SocialFollower is the schema definition for social.follower
var SocialFollower = SocialFollowerTable{
	Table:       "social.follower",
	ID:          "id",
	FollowerID:  "followerid",
	FollowingID: "followingid",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t SocialFollowerTable) Columns() []string {
	return []string{t.ID, t.FollowerID, t.FollowingID, t.CreatedAt}
}
