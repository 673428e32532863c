package routes

import (
	controllers "github.com/Pragathi917/Shopkart/controllers/wishlist"
	"github.com/Pragathi917/Shopkart/middlewares"

	"github.com/gofiber/fiber/v2"
)

func WishlistRoutes(app *fiber.App) {
	app.Get("/api/wishlist", middlewares.Protect, controllers.GetWishlist)
	app.Post("/api/wishlist", middlewares.Protect, controllers.AddToWishlist)
	app.Delete("/api/wishlist", middlewares.Protect, controllers.ClearWishlist)
	app.Delete("/api/wishlist/:id", middlewares.Protect, controllers.RemoveFromWishlist)
}
