package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Pragathi917/Shopkart/middlewares"
	"github.com/Pragathi917/Shopkart/models"
	"github.com/Pragathi917/Shopkart/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	errInvalidProductID = errors.New("Invalid product ID format")
	errProductLookup    = errors.New("Error fetching product details")
)

type reviewRequest struct {
	Rating  *float64 `json:"rating" validate:"required"`
	Comment string   `json:"comment" validate:"required"`
}

// CreateProductReview appends a review and persists the recomputed rating
// aggregate. A user can review a product only once.
func CreateProductReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Please provide rating and comment")
	}

	product, status, err := findProductByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	user := middlewares.CurrentUser(c)
	review := models.Review{
		Name:      user.Name,
		Rating:    *req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		User:      user.Id,
		CreatedAt: time.Now(),
	}

	if err := product.AddReview(review); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	_, err = productCollection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": bson.M{
		"reviews":    product.Reviews,
		"numReviews": product.NumReviews,
		"rating":     product.Rating,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		log.Error().Err(err).Msg("create review: update failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error saving review")
	}

	return responses.Created(c, "Review added successfully", nil)
}
