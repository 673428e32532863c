package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/Pragathi917/Shopkart/auth"
	"github.com/Pragathi917/Shopkart/configs"
	"github.com/Pragathi917/Shopkart/middlewares"
	"github.com/Pragathi917/Shopkart/models"
	"github.com/Pragathi917/Shopkart/responses"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var userCollection *mongo.Collection = configs.GetCollection(configs.DB, "users")

var validate = validator.New()

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup registers a new account. The first admin ever registered becomes the
// super admin; later admin signups start out pending approval and get no
// token until a super admin approves them.
func Signup(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Please provide all required fields")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	err := userCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return responses.Error(c, fiber.StatusBadRequest, "User with this email already exists")
	} else if err != mongo.ErrNoDocuments {
		log.Error().Err(err).Msg("signup: user lookup failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error checking user existence")
	}

	// Read-then-decide: two concurrent first-admin signups can both observe
	// zero admins. The unique email index narrows but does not close the race.
	var adminCount int64
	if role == models.RoleAdmin {
		adminCount, err = userCollection.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
		if err != nil {
			log.Error().Err(err).Msg("signup: admin count failed")
			return responses.Error(c, fiber.StatusInternalServerError, "Error checking admin accounts")
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error hashing password")
	}

	user := models.NewUser(strings.TrimSpace(req.Name), email, hashed, role, adminCount)

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return responses.Error(c, fiber.StatusBadRequest, "User with this email already exists")
		}
		log.Error().Err(err).Msg("signup: insert failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error in saving user, please try again later")
	}

	if user.PendingApproval() {
		return responses.Created(c, "Admin account created successfully. Please wait for approval from a super administrator.", &fiber.Map{
			"needsApproval": true,
			"user":          user,
		})
	}

	token, err := middlewares.JWT().GenerateToken(user.Id.Hex())
	if err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error while generating token")
	}

	message := "User registered successfully"
	if user.IsSuperAdmin {
		message = "Super Admin account created successfully"
	}
	return responses.Created(c, message, &fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login authenticates by email and password. Pending admins are refused with
// a dedicated message and never reach token issuance.
func Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Please provide email and password")
	}

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return responses.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	} else if err != nil {
		log.Error().Err(err).Msg("login: user lookup failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching from database")
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return responses.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if user.PendingApproval() {
		return responses.Error(c, fiber.StatusForbidden, "Your admin account is pending approval. Please contact a super administrator.")
	}

	token, err := middlewares.JWT().GenerateToken(user.Id.Hex())
	if err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error while generating token")
	}

	return responses.OK(c, "Login successful", &fiber.Map{
		"user":  user,
		"token": token,
	})
}

// GetProfile returns the authenticated user's own account.
func GetProfile(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	return responses.OK(c, "", &fiber.Map{"user": user})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// UpdateProfile changes the caller's name, email or password. A fresh token is
// returned since clients typically re-store credentials after this call.
func UpdateProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user := middlewares.CurrentUser(c)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Please enter a valid email address")
	}

	update := bson.M{"updatedAt": time.Now()}

	if name := strings.TrimSpace(req.Name); name != "" {
		update["name"] = name
	}

	if req.Email != "" {
		email := strings.ToLower(req.Email)
		if email != user.Email {
			err := userCollection.FindOne(ctx, bson.M{
				"email": email,
				"_id":   bson.M{"$ne": user.Id},
			}).Err()
			if err == nil {
				return responses.Error(c, fiber.StatusBadRequest, "Email already in use")
			} else if err != mongo.ErrNoDocuments {
				log.Error().Err(err).Msg("update profile: email lookup failed")
				return responses.Error(c, fiber.StatusInternalServerError, "Error checking user existence")
			}
		}
		update["email"] = email
	}

	if req.Password != "" {
		if err := auth.ValidatePassword(req.Password); err != nil {
			return responses.Error(c, fiber.StatusBadRequest, err.Error())
		}
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return responses.Error(c, fiber.StatusInternalServerError, "Error hashing password")
		}
		update["password"] = hashed
	}

	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, bson.M{"$set": update}); err != nil {
		log.Error().Err(err).Msg("update profile: update failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating user profile")
	}

	var updated models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": user.Id}).Decode(&updated); err != nil {
		log.Error().Err(err).Msg("update profile: reload failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching user data")
	}

	token, err := middlewares.JWT().GenerateToken(updated.Id.Hex())
	if err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error while generating token")
	}

	return responses.OK(c, "Profile updated successfully", &fiber.Map{
		"user":  updated,
		"token": token,
	})
}
