package main

import (
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"aquastock/internal/config"
	"aquastock/internal/http/handlers"
	applog "aquastock/internal/log"
	"aquastock/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	// The panel's append-only debug log, passed to the services explicitly.
	debug, err := applog.OpenFileLog(cfg.DebugLog)
	if err != nil {
		log.Fatalf("open debug log: %v", err)
	}
	defer debug.Close()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New(cfg.TemplateDir, ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log the real error; never leak it to the caller.
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "message": "An unexpected error occurred."})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	app.Static("/static", "./web/static")

	deps := handlers.NewDeps(db, debug)

	// Orders
	app.Get("/order", deps.OrderHandler.Get)
	app.All("/order/update", deps.OrderHandler.Update)

	// Products: admin table page plus the JSON API the panel scripts call
	app.Get("/products", deps.ProductHandler.Page)
	app.Post("/products", deps.ProductHandler.Delete)

	api := app.Group("/api/v1")
	api.Get("/orders", deps.OrderHandler.List)
	api.Get("/orders/:id/items", deps.OrderHandler.Items)
	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", deps.ProductHandler.Create)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/availability", deps.ProductHandler.Availability)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
