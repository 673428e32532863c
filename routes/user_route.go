package routes

import (
	controllers "github.com/Pragathi917/Shopkart/controllers/users"
	"github.com/Pragathi917/Shopkart/middlewares"

	"github.com/gofiber/fiber/v2"
)

func UserRoute(app *fiber.App) {
	app.Post("/api/users/signup", controllers.Signup)
	app.Post("/api/users/login", controllers.Login)

	app.Get("/api/users/profile", middlewares.Protect, controllers.GetProfile)
	app.Put("/api/users/profile", middlewares.Protect, controllers.UpdateProfile)

	// Registered before /:id so "pending-admins" is not taken for an id.
	app.Get("/api/users/pending-admins", middlewares.Protect, middlewares.SuperAdmin, controllers.GetPendingAdmins)

	app.Get("/api/users", middlewares.Protect, middlewares.Admin, controllers.GetAllUsers)
	app.Get("/api/users/:id", middlewares.Protect, middlewares.Admin, controllers.GetUserById)
	app.Put("/api/users/:id", middlewares.Protect, middlewares.Admin, controllers.UpdateUser)
	app.Delete("/api/users/:id", middlewares.Protect, middlewares.SuperAdmin, controllers.DeleteUser)

	app.Put("/api/users/:id/approve", middlewares.Protect, middlewares.SuperAdmin, controllers.ApproveAdmin)
	app.Put("/api/users/:id/revoke", middlewares.Protect, middlewares.SuperAdmin, controllers.RevokeAdmin)
	app.Put("/api/users/:id/reject", middlewares.Protect, middlewares.SuperAdmin, controllers.RejectAdmin)
}
