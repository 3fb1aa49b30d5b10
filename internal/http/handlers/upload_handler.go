package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler stores product images under MediaDir and hands back the URL
// the catalog row will carry. The core only stores and forwards that string.
type UploadHandler struct {
	MediaDir string
	BaseURL  string
}

// POST /upload (admin), multipart field "product".
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("product")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": 0, "message": "No file uploaded"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": 0, "message": "Unsupported image type"})
	}

	if err := os.MkdirAll(h.MediaDir, 0o755); err != nil {
		applog.Error(c, "upload.mkdir.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not store upload")
	}

	name := fmt.Sprintf("product_%s%s", uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(h.MediaDir, name)); err != nil {
		applog.Error(c, "upload.save.fail", err, map[string]any{"name": name})
		return fail(c, fiber.StatusInternalServerError, "could not store upload")
	}

	applog.Audit(c, "upload.image", map[string]any{"name": name, "bytes": file.Size})
	return c.JSON(fiber.Map{
		"success":   1,
		"image_url": fmt.Sprintf("%s/%s", h.BaseURL, name),
	})
}
