package auth

import "github.com/gin-gonic/gin"

const identityKey = "auth.identity"

// SetIdentity attaches the session user to the request.
func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the session user resolved by the auth middleware.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}
