package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/agency_be/internal/services/imagekit"
)

type UploadHandler struct {
	Signer *imagekit.ImageKitService
}

// ImageKitAuth hands the browser a short-lived signature for a direct upload.
func (h *UploadHandler) ImageKitAuth(c *fiber.Ctx) error {
	if h.Signer.PrivateKey == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Image uploads are not configured")
	}
	return c.JSON(h.Signer.Sign(time.Now()))
}
