package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleQueueStats reports durable backlog counts and live processing
// counters of the job queue.
func HandleQueueStats(c *fiber.Ctx) error {
	stats, err := queueManager.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load queue stats"})
	}
	return c.JSON(stats)
}
