package middleware

import (
	"errors"

	"itsupport/internal/app/role"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

var ErrNoIdentity = errors.New("no authenticated identity in context")

// Identity is the authenticated caller, placed in the request context by the
// auth middleware and passed explicitly to whatever needs it. There is no
// ambient session state.
type Identity struct {
	UserID uint
	Role   role.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == role.Admin
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFromContext extracts the caller set by the auth middleware.
func IdentityFromContext(c *gin.Context) (Identity, error) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, ErrNoIdentity
	}
	id, ok := v.(Identity)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
