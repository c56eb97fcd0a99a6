package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	ClientIDHeader = "X-Client-ID"
	ClientIDQuery  = "clientId"
	ClientIDLocal  = "clientID"
)

// EnsureClientID requires every request to identify its client, either by
// header or by query parameter, and stores the id in Locals.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if clientID is already set
		if c.Locals(ClientIDLocal) != nil {
			return c.Next()
		}

		// Check header first
		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query(ClientIDQuery)
		}

		if clientID == "" {
			log.Debugf("rejecting %s %s: no client id", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Client ID is required. Please ensure client is properly initialized.",
			})
		}

		// Store in context for this request
		c.Locals(ClientIDLocal, clientID)
		return c.Next()
	}
}

// ClientID returns the id stored by EnsureClientID.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(ClientIDLocal).(string)
	return id
}
