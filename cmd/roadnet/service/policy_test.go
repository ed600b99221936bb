package service

import (
	"testing"

	"github.com/gridworks/roadnet/common/models"
)

func TestAccessPolicy(t *testing.T) {
	owner := &models.Identity{ID: 1, Username: "u1"}
	other := &models.Identity{ID: 2, Username: "u2"}
	admin := &models.Identity{ID: 3, Username: "root", IsAdmin: true}

	private := &models.Network{ID: 10, OwnerID: 1, Public: false}
	public := &models.Network{ID: 11, OwnerID: 1, Public: true}

	cases := []struct {
		name      string
		network   *models.Network
		caller    *models.Identity
		wantRead  bool
		wantWrite bool
	}{
		{"owner on private", private, owner, true, true},
		{"owner on public", public, owner, true, true},
		{"other on private", private, other, false, false},
		{"other on public", public, other, true, false},
		{"anonymous on private", private, nil, false, false},
		{"anonymous on public", public, nil, true, false},
		// No admin override: admins are ordinary callers here.
		{"admin on private", private, admin, false, false},
		{"admin on public", public, admin, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanRead(tc.network, tc.caller); got != tc.wantRead {
				t.Errorf("CanRead = %v, want %v", got, tc.wantRead)
			}
			if got := CanWrite(tc.network, tc.caller); got != tc.wantWrite {
				t.Errorf("CanWrite = %v, want %v", got, tc.wantWrite)
			}
		})
	}
}
