// FILE: internal/server/webserver/server.go
package webserver

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"reversi/internal/reversi"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

//go:embed web
var webFS embed.FS

// Config is handed to the board page through /config
type Config struct {
	APIURL    string `json:"apiUrl"`
	Position  string `json:"position,omitempty"` // starting position for new games, empty for the standard opening
	ShowHints bool   `json:"showHints"`
	BoardSize int    `json:"boardSize"`
}

// NewApp builds the web UI app serving the embedded board page
func NewApp(cfg Config) (*fiber.App, error) {
	if cfg.Position != "" {
		if _, _, err := reversi.ParsePosition(cfg.Position); err != nil {
			return nil, fmt.Errorf("web UI start position: %w", err)
		}
	}
	cfg.BoardSize = reversi.Size

	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil, fmt.Errorf("failed to create web sub-filesystem: %w", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	app.Use(logger.New(logger.Config{
		Format: "${time} WEB ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New())

	app.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(cfg)
	})

	// Unknown paths fall back to the single page
	app.Use(filesystem.New(filesystem.Config{
		Root:         http.FS(webContent),
		Index:        "index.html",
		NotFoundFile: "index.html",
	}))

	return app, nil
}
