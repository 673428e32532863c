package routes

import (
	controllers "github.com/Pragathi917/Shopkart/controllers/orders"
	"github.com/Pragathi917/Shopkart/middlewares"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	app.Post("/api/orders", middlewares.Protect, controllers.CreateOrder)
	app.Get("/api/orders/myorders", middlewares.Protect, controllers.GetUserOrders)
	app.Get("/api/orders", middlewares.Protect, middlewares.Admin, controllers.GetAllOrders)
	app.Get("/api/orders/:id", middlewares.Protect, controllers.GetOrderById)
	app.Put("/api/orders/:id/pay", middlewares.Protect, controllers.UpdateOrderToPaid)
	app.Put("/api/orders/:id/status", middlewares.Protect, middlewares.Admin, controllers.UpdateOrderStatus)
	app.Delete("/api/orders/:id", middlewares.Protect, controllers.DeleteOrder)
}
