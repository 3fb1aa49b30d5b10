package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Kennyy02/totomotorworx-shop/internal/config"
	"github.com/Kennyy02/totomotorworx-shop/internal/http/handlers"
	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/notify"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
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

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	hub := notify.NewHub()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; the clients only read the message key.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, auth-token",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/images/") || strings.HasPrefix(p, "/ws")
		},
	}))

	// ---------- Static media ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /images -> %s", mediaDir)

	// Guarded media to avoid traversal
	app.Get("/images/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, hub)
	fetchUser := handlers.FetchUser(deps.Tokens)
	requireAdmin := handlers.RequireAdmin()

	// Catalog (public)
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products_paginated", deps.ProductHandler.Paginated)
	app.Get("/newcollections", deps.ProductHandler.NewCollections)
	app.Get("/popularinpart", deps.ProductHandler.PopularInPart)
	app.Get("/services", deps.ProductHandler.Services)
	app.Get("/categories", deps.CategoryHandler.List)

	// Auth (login throttled)
	app.Post("/signup", deps.AuthHandler.Signup)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "errors": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)

	// Cart (bearer credential required)
	app.Post("/addtocart", fetchUser, deps.CartHandler.Add)
	app.Post("/removefromcart", fetchUser, deps.CartHandler.Remove)
	app.Post("/getcart", fetchUser, deps.CartHandler.Get)

	// Analytics (public, like the original dashboard)
	app.Get("/cart-analytics", deps.AnalyticsHandler.CartAnalytics)

	// Realtime change signals
	app.Use("/ws", deps.WSHandler.Upgrade)
	app.Get("/ws", deps.WSHandler.Serve())

	// Admin console
	app.Post("/addproduct", fetchUser, requireAdmin, deps.ProductHandler.Add)
	app.Post("/removeproduct", fetchUser, requireAdmin, deps.ProductHandler.Remove)
	app.Get("/inventory", fetchUser, requireAdmin, deps.InventoryHandler.List)
	app.Put("/inventory/:id", fetchUser, requireAdmin, deps.InventoryHandler.SetStock)
	app.Post("/categories", fetchUser, requireAdmin, deps.CategoryHandler.Add)
	app.Put("/categories/:id", fetchUser, requireAdmin, deps.CategoryHandler.Rename)
	app.Delete("/categories/:id", fetchUser, requireAdmin, deps.CategoryHandler.Delete)
	app.Get("/users", fetchUser, requireAdmin, deps.UserHandler.List)
	app.Get("/users_paginated", fetchUser, requireAdmin, deps.UserHandler.Paginated)
	app.Put("/users/:id", fetchUser, requireAdmin, deps.UserHandler.Update)
	app.Delete("/users/:id", fetchUser, requireAdmin, deps.UserHandler.Delete)
	app.Post("/upload", fetchUser, requireAdmin, deps.UploadHandler.Upload)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
