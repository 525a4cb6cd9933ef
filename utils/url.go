package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetDownloadURL builds a download URL for a generated file, https in
// production and http everywhere else.
func GetDownloadURL(c *fiber.Ctx, filePath string) string {
	env := os.Getenv("APP_ENV")
	filePath = strings.TrimPrefix(filePath, "/")

	if env == "production" {
		return fmt.Sprintf("https://%s/%s", c.Hostname(), filePath)
	}
	return fmt.Sprintf("http://%s/%s", c.Hostname(), filePath)
}
