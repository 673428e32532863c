package middlewares

import (
	"context"
	"strings"
	"time"

	"github.com/Pragathi917/Shopkart/auth"
	"github.com/Pragathi917/Shopkart/configs"
	"github.com/Pragathi917/Shopkart/models"
	"github.com/Pragathi917/Shopkart/responses"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var userCollection *mongo.Collection = configs.GetCollection(configs.DB, "users")

const localsUserKey = "user"

// TokenLifetime is how long issued bearer tokens stay valid.
const TokenLifetime = 30 * 24 * time.Hour

// JWT returns the token service used by both the middleware and the login
// handlers.
func JWT() *auth.JWTService {
	return auth.NewJWTService(configs.EnvJWTSecret(), TokenLifetime)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return is false when the header is malformed.
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Protect verifies the bearer token, resolves the user document and stores it
// in the request locals.
func Protect(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return responses.Error(c, fiber.StatusUnauthorized, "Not authorized, no token provided")
	}

	token, ok := BearerToken(header)
	if !ok {
		return responses.Error(c, fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	userId, err := JWT().ValidateToken(token)
	if err != nil {
		return responses.Error(c, fiber.StatusUnauthorized, "Not authorized, token failed")
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return responses.Error(c, fiber.StatusUnauthorized, "Not authorized, token failed")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err = userCollection.FindOne(ctx, bson.M{"_id": userObjectID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return responses.Error(c, fiber.StatusUnauthorized, "User not found - token invalid")
	} else if err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching user data")
	}

	c.Locals(localsUserKey, &user)
	return c.Next()
}

// CurrentUser returns the user resolved by Protect.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

// Admin requires an approved admin account. Runs after Protect.
func Admin(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil || user.Role != models.RoleAdmin {
		return responses.Error(c, fiber.StatusForbidden, "Not authorized as an admin")
	}
	if !user.IsApproved {
		return responses.Error(c, fiber.StatusForbidden, "Admin account pending approval")
	}
	return c.Next()
}

// SuperAdmin requires the super admin account. Runs after Protect.
func SuperAdmin(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil || !user.IsSuperAdmin {
		return responses.Error(c, fiber.StatusForbidden, "Not authorized - Super Admin access required")
	}
	return c.Next()
}
