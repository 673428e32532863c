package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Pragathi917/Shopkart/middlewares"
	"github.com/Pragathi917/Shopkart/models"
	"github.com/Pragathi917/Shopkart/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// findUserByParam resolves the :id route parameter into a user document.
func findUserByParam(ctx context.Context, c *fiber.Ctx) (*models.User, int, error) {
	userObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("Invalid user ID format")
	}

	var user models.User
	err = userCollection.FindOne(ctx, bson.M{"_id": userObjectID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, fiber.StatusNotFound, errors.New("User not found")
	} else if err != nil {
		log.Error().Err(err).Msg("user lookup failed")
		return nil, fiber.StatusInternalServerError, errors.New("Error fetching user data")
	}
	return &user, fiber.StatusOK, nil
}

// GetAllUsers lists every account.
func GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	cursor, err := userCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Error().Err(err).Msg("list users: find failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching users")
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error parsing users")
	}

	return responses.OK(c, "", &fiber.Map{
		"count": len(users),
		"users": users,
	})
}

// GetUserById returns a single account.
func GetUserById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, status, err := findUserByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}
	return responses.OK(c, "", &fiber.Map{"user": user})
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UpdateUser lets an admin change another account's name, email or role.
func UpdateUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, status, err := findUserByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid role. Must be either user or admin")
	}

	update := bson.M{"updatedAt": time.Now()}
	if name := strings.TrimSpace(req.Name); name != "" {
		update["name"] = name
	}
	if req.Email != "" {
		update["email"] = strings.ToLower(req.Email)
	}
	if req.Role != "" {
		update["role"] = req.Role
	}

	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, bson.M{"$set": update}); err != nil {
		log.Error().Err(err).Msg("update user: update failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating user")
	}

	var updated models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": user.Id}).Decode(&updated); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching user data")
	}

	return responses.OK(c, "User updated successfully", &fiber.Map{"user": updated})
}

// DeleteUser removes an account. A super admin account can only be deleted by
// itself.
func DeleteUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, status, err := findUserByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	actor := middlewares.CurrentUser(c)
	if err := user.DeletableBy(actor); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := userCollection.DeleteOne(ctx, bson.M{"_id": user.Id}); err != nil {
		log.Error().Err(err).Msg("delete user: delete failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error deleting user")
	}

	return responses.OK(c, "User removed successfully", nil)
}

// ApproveAdmin approves a pending admin account.
func ApproveAdmin(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, status, err := findUserByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	if err := user.Approve(); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := saveApprovalState(ctx, user); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating user")
	}

	return responses.OK(c, fmt.Sprintf("Admin %s has been approved", user.Name), &fiber.Map{"user": user})
}

// RevokeAdmin withdraws approval from an approved admin.
func RevokeAdmin(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, status, err := findUserByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	if err := user.Revoke(); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := saveApprovalState(ctx, user); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating user")
	}

	return responses.OK(c, fmt.Sprintf("Admin privileges revoked for %s", user.Name), &fiber.Map{"user": user})
}

// RejectAdmin turns an admin request back into a regular user account.
func RejectAdmin(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, status, err := findUserByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	if err := user.Reject(); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := saveApprovalState(ctx, user); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating user")
	}

	return responses.OK(c, fmt.Sprintf("Admin request rejected. %s is now a regular user", user.Name), &fiber.Map{"user": user})
}

func saveApprovalState(ctx context.Context, user *models.User) error {
	_, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, bson.M{"$set": bson.M{
		"role":       user.Role,
		"isApproved": user.IsApproved,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		log.Error().Err(err).Msg("approval state: update failed")
	}
	return err
}

// GetPendingAdmins lists admin accounts waiting for approval. The filter
// matches any approval state other than an explicit true so that documents
// with a missing or legacy field still show up.
func GetPendingAdmins(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	cursor, err := userCollection.Find(ctx, bson.M{
		"role":       models.RoleAdmin,
		"isApproved": bson.M{"$ne": true},
	})
	if err != nil {
		log.Error().Err(err).Msg("pending admins: find failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching users")
	}

	var admins []models.User
	if err := cursor.All(ctx, &admins); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error parsing users")
	}

	pending := make([]models.User, 0, len(admins))
	for _, admin := range admins {
		if !admin.IsSuperAdmin {
			pending = append(pending, admin)
		}
	}

	return responses.OK(c, "", &fiber.Map{
		"count":         len(pending),
		"pendingAdmins": pending,
	})
}
