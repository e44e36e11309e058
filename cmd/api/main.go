package main

import (
	"context"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/chambapp/backend_chamba/internal/cache"
	"github.com/chambapp/backend_chamba/internal/config"
	"github.com/chambapp/backend_chamba/internal/db"
	"github.com/chambapp/backend_chamba/internal/handlers"
	"github.com/chambapp/backend_chamba/internal/middleware"
	"github.com/chambapp/backend_chamba/internal/services/account"
	"github.com/chambapp/backend_chamba/internal/services/moderation"
)

func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		// the API still boots; endpoints that need the store answer 503
		// until it comes back
		logger.WithError(err).Error("sin conexión a Postgres")
		gdb = nil
	} else {
		if err := db.Migrate(gdb); err != nil {
			logger.WithError(err).Error("migración falló")
		}
		if err := db.SeedAdmin(gdb, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.WithError(err).Error("seed de administrador falló")
		}
		if err := db.SeedCategories(gdb); err != nil {
			logger.WithError(err).Error("seed de oficios falló")
		}
	}

	rdb := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("Redis no disponible, cache desactivado")
			rdb = nil
		}
	}

	validate := validator.New()

	var accountSvc *account.Service
	var moderationSvc *moderation.Service
	if gdb != nil {
		accountSvc = account.NewService(gdb, account.LogMailer{Log: logger})
		moderationSvc = moderation.NewService(gdb)
	}

	authH := &handlers.AuthHandler{
		Svc:       accountSvc,
		Log:       logger,
		Validate:  validate,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	adminH := &handlers.AdminHandler{
		Svc:      moderationSvc,
		Log:      logger,
		Validate: validate,
	}
	categoryH := handlers.NewCategoryHandler(gdb, cache.NewCategoryCache(rdb), logger)

	app := fiber.New()

	app.Use(helmet.New())
	// CORS abierto: el frontend puede servirse desde cualquier origen
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "*",
	}))

	// solo los endpoints públicos de autenticación se limitan por IP
	authLimiter := limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"mensaje": "API Funcionando"})
	})
	app.Get("/categorias", categoryH.GetCategories)

	app.Post("/registro-cliente", authLimiter, authH.RegisterClient)
	app.Post("/registro-trabajador", authLimiter, authH.RegisterWorker)
	app.Post("/verificar-cuenta", authLimiter, authH.VerifyAccount)
	app.Post("/login", authLimiter, authH.Login)
	app.Post("/logout", authH.Logout)

	admin := app.Group("/admin",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
		middleware.RequireRoles("admin"),
	)
	admin.Get("/usuarios", adminH.ListUsers)
	admin.Post("/accion", adminH.ApplyAction)

	logger.Fatal(app.Listen(":" + cfg.AppPort))
}
