package routes

import (
	controllers "github.com/Pragathi917/Shopkart/controllers/products"
	"github.com/Pragathi917/Shopkart/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoute(app *fiber.App) {
	app.Get("/api/products", controllers.GetAllProducts)
	app.Get("/api/products/top", controllers.GetTopProducts)
	app.Get("/api/products/categories", controllers.GetProductCategories)
	app.Get("/api/products/:id", controllers.GetProductById)

	app.Post("/api/products/:id/reviews", middlewares.Protect, controllers.CreateProductReview)

	// Admin catalog management
	app.Post("/api/products", middlewares.Protect, middlewares.Admin, controllers.CreateProduct)
	app.Put("/api/products/:id", middlewares.Protect, middlewares.Admin, controllers.UpdateProduct)
	app.Delete("/api/products/:id", middlewares.Protect, middlewares.Admin, controllers.DeleteProduct)
}
