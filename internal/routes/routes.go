package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Barkatzx/medicare-server/internal/handlers"
	"github.com/Barkatzx/medicare-server/internal/metrics"
	"github.com/Barkatzx/medicare-server/internal/middleware"
	"github.com/Barkatzx/medicare-server/internal/utils"
)

// Setup registers the full route table. The fixed-path user routes must be
// registered before the admin "/:id" routes so they match first.
func Setup(app *fiber.App, h *handlers.Handler, tokens *utils.TokenManager, limiter *middleware.RateLimiter) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, this is the backend for the MediCare App.")
	})
	app.Get("/metrics", metrics.Handler())

	protect := middleware.Protect(tokens)

	api := app.Group("/api/v1")
	users := api.Group("/users")

	// Public
	users.Post("/register", limiter.ByIP(), h.Register)
	users.Post("/login", limiter.ByIP(), h.Login)

	// Profile
	users.Get("/profile", protect, h.GetProfile)
	users.Put("/profile", protect, h.UpdateProfile)
	users.Put("/update-password", protect, h.UpdatePassword)

	// Cart
	users.Post("/cart", protect, h.AddToCart)
	users.Delete("/cart/:productId", protect, h.RemoveFromCart)

	// Wishlist
	users.Post("/wishlist", protect, h.AddToWishlist)
	users.Delete("/wishlist/:productId", protect, h.RemoveFromWishlist)

	// Admin
	users.Get("/", protect, middleware.AdminOnly, h.ListUsers)
	users.Get("/:id", protect, middleware.AdminOnly, h.GetUserByID)
	users.Put("/:id", protect, middleware.AdminOnly, h.UpdateUser)
	users.Delete("/:id", protect, middleware.AdminOnly, h.DeleteUser)
}
