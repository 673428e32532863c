package controllers

import (
	"context"
	"time"

	"github.com/Pragathi917/Shopkart/configs"
	"github.com/Pragathi917/Shopkart/middlewares"
	"github.com/Pragathi917/Shopkart/models"
	"github.com/Pragathi917/Shopkart/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var wishlistCollection *mongo.Collection = configs.GetCollection(configs.DB, "wishlists")
var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

// GetWishlist returns the caller's wishlist, creating an empty one on first
// access.
func GetWishlist(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user := middlewares.CurrentUser(c)

	var wishlist models.Wishlist
	err := wishlistCollection.FindOne(ctx, bson.M{"user": user.Id}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		wishlist = models.NewWishlist(user.Id)
		if _, err := wishlistCollection.InsertOne(ctx, wishlist); err != nil {
			log.Error().Err(err).Msg("wishlist: insert failed")
			return responses.Error(c, fiber.StatusInternalServerError, "Failed to fetch wishlist")
		}
	} else if err != nil {
		log.Error().Err(err).Msg("wishlist: lookup failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Failed to fetch wishlist")
	}

	return responses.OK(c, "", &fiber.Map{"wishlist": wishlist.Items})
}

type addWishlistRequest struct {
	ProductID string `json:"productId"`
}

// AddToWishlist snapshots a product into the caller's wishlist. Duplicates
// are rejected.
func AddToWishlist(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user := middlewares.CurrentUser(c)

	var req addWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	productObjectID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid product ID format")
	}

	var product models.Product
	err = productCollection.FindOne(ctx, bson.M{"_id": productObjectID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return responses.Error(c, fiber.StatusNotFound, "Product not found")
	} else if err != nil {
		log.Error().Err(err).Msg("wishlist add: product lookup failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Failed to add product to wishlist")
	}

	var wishlist models.Wishlist
	err = wishlistCollection.FindOne(ctx, bson.M{"user": user.Id}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		wishlist = models.NewWishlist(user.Id)
	} else if err != nil {
		log.Error().Err(err).Msg("wishlist add: lookup failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Failed to add product to wishlist")
	}

	if err := wishlist.Add(&product); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	_, err = wishlistCollection.UpdateOne(ctx,
		bson.M{"user": user.Id},
		bson.M{
			"$set":         bson.M{"items": wishlist.Items, "updatedAt": time.Now()},
			"$setOnInsert": bson.M{"createdAt": wishlist.CreatedAt},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Error().Err(err).Msg("wishlist add: save failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Failed to add product to wishlist")
	}

	return responses.Created(c, "Product added to wishlist", &fiber.Map{"wishlist": wishlist.Items})
}

// RemoveFromWishlist drops a product from the wishlist. Removing a product
// that is not present succeeds as a no-op, but a missing wishlist is an error.
func RemoveFromWishlist(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user := middlewares.CurrentUser(c)

	productObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid product ID format")
	}

	var wishlist models.Wishlist
	err = wishlistCollection.FindOne(ctx, bson.M{"user": user.Id}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		return responses.Error(c, fiber.StatusNotFound, "Wishlist not found")
	} else if err != nil {
		log.Error().Err(err).Msg("wishlist remove: lookup failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Failed to remove product from wishlist")
	}

	wishlist.Remove(productObjectID)

	_, err = wishlistCollection.UpdateOne(ctx, bson.M{"user": user.Id}, bson.M{
		"$set": bson.M{"items": wishlist.Items, "updatedAt": time.Now()},
	})
	if err != nil {
		log.Error().Err(err).Msg("wishlist remove: save failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Failed to remove product from wishlist")
	}

	return responses.OK(c, "Product removed from wishlist", &fiber.Map{"wishlist": wishlist.Items})
}

// ClearWishlist empties the caller's wishlist.
func ClearWishlist(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user := middlewares.CurrentUser(c)

	result, err := wishlistCollection.UpdateOne(ctx, bson.M{"user": user.Id}, bson.M{
		"$set": bson.M{"items": []models.WishlistItem{}, "updatedAt": time.Now()},
	})
	if err != nil {
		log.Error().Err(err).Msg("wishlist clear: save failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Failed to clear wishlist")
	}
	if result.MatchedCount == 0 {
		return responses.Error(c, fiber.StatusNotFound, "Wishlist not found")
	}

	return responses.OK(c, "Wishlist cleared", &fiber.Map{"wishlist": []models.WishlistItem{}})
}
