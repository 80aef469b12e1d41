package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// SetIdentity stores the verified identity in the Fiber context.
func SetIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(identityKey, id)
}

// GetIdentity returns the identity stored by the auth middleware.
func GetIdentity(c *fiber.Ctx) (Identity, error) {
	id, ok := c.Locals(identityKey).(Identity)
	if !ok || id.Subject == "" {
		return Identity{}, errors.New("missing identity in context")
	}
	return id, nil
}
