package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table             string
	ID                string
	Email             string
	Password          string
	Name              string
	AvatarURL         string
	RoleID            string
	IsVerified        string
	ResetToken        string
	ResetTokenExpires string
	CreatedAt         string
	UpdatedAt         string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:             "users.account",
	ID:                "id",
	Email:             "email",
	Password:          "passwordhash",
	Name:              "name",
	AvatarURL:         "avatarurl",
	RoleID:            "roleid",
	IsVerified:        "isverified",
	ResetToken:        "resettoken",
	ResetTokenExpires: "resettokenexpires",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.Name, t.AvatarURL, t.RoleID,
		t.IsVerified, t.ResetToken, t.ResetTokenExpires, t.CreatedAt, t.UpdatedAt,
	}
}
