package service

import "github.com/gridworks/roadnet/common/models"

// CanRead reports whether caller may read network n: public networks are
// readable by anyone, private ones only by their owner. caller == nil is an
// anonymous request.
func CanRead(n *models.Network, caller *models.Identity) bool {
	if n.Public {
		return true
	}
	return caller != nil && caller.ID == n.OwnerID
}

// CanWrite reports whether caller may append to network n. Only the owner
// writes; anonymous callers never do. The admin flag is not consulted:
// admins get no special network privileges.
func CanWrite(n *models.Network, caller *models.Identity) bool {
	return caller != nil && caller.ID == n.OwnerID
}
