// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
)

type fakeOwnerStore struct {
	owners map[int]int // entity id -> owner user id
}

func (s *fakeOwnerStore) OwnerID(_ context.Context, _ string, id int) (int, error) {
	if ownerID, ok := s.owners[id]; ok {
		return ownerID, nil
	}
	return 0, apperr.NotFound("Post")
}

func TestGuard_Authorize(t *testing.T) {
	guard := NewGuard(&fakeOwnerStore{owners: map[int]int{10: 1}})

	member := &sec.AuthClaims{UserID: 1, RoleID: sec.RoleMember}
	other := &sec.AuthClaims{UserID: 2, RoleID: sec.RoleMember}
	admin := &sec.AuthClaims{UserID: 99, RoleID: sec.RoleAdmin}

	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		entityID int
		wantCode string
	}{
		{"owner_allowed", member, 10, ""},
		{"admin_allowed", admin, 10, ""},
		{"stranger_forbidden", other, 10, "FORBIDDEN"},
		{"anonymous_unauthorized", nil, 10, "UNAUTHORIZED"},
		// Missing rows are 404 even for strangers, never 403.
		{"missing_row_not_found", other, 404, "NOT_FOUND"},
		{"missing_row_not_found_for_admin", admin, 404, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Authorize(context.Background(), tt.claims, EntityPost, tt.entityID)

			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestCanModify(t *testing.T) {
	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		ownerID int
		want    bool
	}{
		{"nil_claims", nil, 1, false},
		{"owner", &sec.AuthClaims{UserID: 1, RoleID: sec.RoleMember}, 1, true},
		{"stranger", &sec.AuthClaims{UserID: 2, RoleID: sec.RoleMember}, 1, false},
		{"admin_anything", &sec.AuthClaims{UserID: 3, RoleID: sec.RoleAdmin}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.claims, tt.ownerID))
		})
	}
}
