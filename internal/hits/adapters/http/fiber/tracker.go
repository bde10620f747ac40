package fiber

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed tracker.js
var trackerScript string

// TrackerScript godoc
// @Summary Tracker script
// @Description Client script that reports pageviews, outbound clicks and custom events. Embed with <script src=".../api/i.js" data-site="SITE_ID"></script>
// @Tags Hits
// @Produce application/javascript
// @Success 200 {string} string
// @Router /i.js [get]
func TrackerScript(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/javascript")
	return c.SendString(trackerScript)
}
