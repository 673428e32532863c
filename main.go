package main

import (
	"context"
	"time"

	"github.com/Pragathi917/Shopkart/configs"
	"github.com/Pragathi917/Shopkart/responses"
	"github.com/Pragathi917/Shopkart/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

func main() {
	configs.InitLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := configs.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("could not reach MongoDB")
	}
	if err := configs.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("could not create indexes")
	}
	log.Info().Msg("connected to MongoDB")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				if configs.EnvAppEnv() == "development" {
					message = e.Message
				}
			}
			return responses.Error(c, code, message)
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return responses.OK(c, "ok", nil)
	})

	routes.UserRoute(app)
	routes.ProductsRoute(app)
	routes.OrderRoutes(app)
	routes.WishlistRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return responses.Error(c, fiber.StatusNotFound, "Route not found")
	})

	if err := app.Listen(":" + configs.EnvPort()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
