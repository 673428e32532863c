package controllers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Pragathi917/Shopkart/configs"
	"github.com/Pragathi917/Shopkart/middlewares"
	"github.com/Pragathi917/Shopkart/models"
	"github.com/Pragathi917/Shopkart/responses"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

var validate = validator.New()

// GetAllProducts lists the catalog with keyword search, category and price
// filters, pagination and sorting.
func GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	query := ParseCatalogQuery(c)
	filter := query.Filter()

	count, err := productCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("list products: count failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error counting products")
	}

	findOptions := options.Find().
		SetSort(query.Sort()).
		SetSkip(query.Skip()).
		SetLimit(query.PageSize)

	cursor, err := productCollection.Find(ctx, filter, findOptions)
	if err != nil {
		log.Error().Err(err).Msg("list products: find failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching products")
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error parsing products")
	}

	return responses.OK(c, "", &fiber.Map{
		"products": products,
		"page":     query.Page,
		"pages":    Pages(count, query.PageSize),
		"count":    count,
		"pageSize": query.PageSize,
	})
}

// GetProductById returns a single catalog item with its reviews.
func GetProductById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	product, status, err := findProductByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	return responses.OK(c, "", &fiber.Map{"product": product})
}

// GetTopProducts returns the highest rated items.
func GetTopProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	limit, err := strconv.ParseInt(c.Query("limit", "3"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 3
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(limit)

	cursor, err := productCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Error().Err(err).Msg("top products: find failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching products")
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error parsing products")
	}

	return responses.OK(c, "", &fiber.Map{"products": products})
}

// GetProductCategories returns the distinct category names in the catalog.
func GetProductCategories(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	categories, err := productCollection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		log.Error().Err(err).Msg("categories: distinct failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching categories")
	}

	return responses.OK(c, "", &fiber.Map{"categories": categories})
}

type productRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Price        *float64 `json:"price" validate:"required"`
	Image        string   `json:"image"`
	Category     string   `json:"category" validate:"required"`
	Subcategory  string   `json:"subcategory"`
	Brand        string   `json:"brand"`
	CountInStock int      `json:"countInStock"`
}

// CreateProduct adds a catalog item.
func CreateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Error parsing product data")
	}
	if err := validate.Struct(req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Please provide all required fields: name, description, price, category")
	}
	if *req.Price < 0 {
		return responses.Error(c, fiber.StatusBadRequest, "Price cannot be negative")
	}
	if req.CountInStock < 0 {
		return responses.Error(c, fiber.StatusBadRequest, "Stock count cannot be negative")
	}

	image := req.Image
	if image == "" {
		image = models.DefaultProductImage
	}

	now := time.Now()
	product := models.Product{
		ID:           primitive.NewObjectID(),
		User:         middlewares.CurrentUser(c).Id,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        *req.Price,
		Image:        image,
		Category:     strings.TrimSpace(req.Category),
		Subcategory:  strings.TrimSpace(req.Subcategory),
		Brand:        strings.TrimSpace(req.Brand),
		CountInStock: req.CountInStock,
		Reviews:      []models.Review{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := productCollection.InsertOne(ctx, product); err != nil {
		log.Error().Err(err).Msg("create product: insert failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error inserting product")
	}

	return responses.Created(c, "Product created successfully", &fiber.Map{"product": product})
}

// UpdateProduct edits the provided fields of a catalog item.
func UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	product, status, err := findProductByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	var req struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Price        *float64 `json:"price"`
		Image        string   `json:"image"`
		Category     string   `json:"category"`
		Subcategory  string   `json:"subcategory"`
		Brand        string   `json:"brand"`
		CountInStock *int     `json:"countInStock"`
	}
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Error parsing product data")
	}

	if req.Price != nil && *req.Price < 0 {
		return responses.Error(c, fiber.StatusBadRequest, "Price cannot be negative")
	}
	if req.CountInStock != nil && *req.CountInStock < 0 {
		return responses.Error(c, fiber.StatusBadRequest, "Stock count cannot be negative")
	}

	update := bson.M{"updatedAt": time.Now()}
	if name := strings.TrimSpace(req.Name); name != "" {
		update["name"] = name
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		update["description"] = description
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Image != "" {
		update["image"] = req.Image
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		update["category"] = category
	}
	if subcategory := strings.TrimSpace(req.Subcategory); subcategory != "" {
		update["subcategory"] = subcategory
	}
	if brand := strings.TrimSpace(req.Brand); brand != "" {
		update["brand"] = brand
	}
	if req.CountInStock != nil {
		update["countInStock"] = *req.CountInStock
	}

	if _, err := productCollection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": update}); err != nil {
		log.Error().Err(err).Msg("update product: update failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating product")
	}

	var updated models.Product
	if err := productCollection.FindOne(ctx, bson.M{"_id": product.ID}).Decode(&updated); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching product details")
	}

	return responses.OK(c, "Product updated successfully", &fiber.Map{"product": updated})
}

// DeleteProduct removes a catalog item.
func DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	product, status, err := findProductByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	if _, err := productCollection.DeleteOne(ctx, bson.M{"_id": product.ID}); err != nil {
		log.Error().Err(err).Msg("delete product: delete failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error deleting product")
	}

	return responses.OK(c, "Product deleted successfully", nil)
}

func findProductByParam(ctx context.Context, c *fiber.Ctx) (*models.Product, int, error) {
	objectId, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, errInvalidProductID
	}

	var product models.Product
	err = productCollection.FindOne(ctx, bson.M{"_id": objectId}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, fiber.StatusNotFound, models.ErrProductNotFound
	} else if err != nil {
		log.Error().Err(err).Msg("product lookup failed")
		return nil, fiber.StatusInternalServerError, errProductLookup
	}
	return &product, fiber.StatusOK, nil
}
