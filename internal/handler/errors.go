package handler

import (
	"log"
	"strconv"
	"time"

	"loja-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// respondError maps service error kinds to HTTP status codes. Anything
// without a kind is an internal failure and is logged, not echoed.
func respondError(c *fiber.Ctx, err error) error {
	switch service.KindOf(err) {
	case service.KindValidation:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case service.KindNotFound:
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case service.KindConflict:
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(400).JSON(fiber.Map{"error": msg})
}

func actor(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	if email == "" {
		return "system"
	}
	return email
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func paramInt(c *fiber.Ctx, name string) (int, error) {
	return strconv.Atoi(c.Params(name))
}

// queryDate parses an ISO calendar date; the service turns it into a range
// in the configured time zone.
func queryDate(c *fiber.Ctx, key string) (time.Time, error) {
	return time.Parse(dateLayout, c.Query(key))
}

func queryRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := queryDate(c, "inicio")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := queryDate(c, "fim")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
