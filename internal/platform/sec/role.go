// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// RoleID identifies the authorization level granted to an account.
//
// Roles are reference data seeded by migrations; the ids below are the
// well-known rows every environment carries.
type RoleID int

const (
	// RoleMember is the default role assigned at sign-up.
	RoleMember RoleID = 1

	// RoleAdmin has unrestricted access to every resource.
	RoleAdmin RoleID = 2
)

// DefaultRoleName is the role name looked up for default assignment at
// sign-up. Exactly one role row carries this name.
const DefaultRoleName = "User"

// IsAdmin reports whether the role is the privileged admin role.
func (r RoleID) IsAdmin() bool {
	return r == RoleAdmin
}
