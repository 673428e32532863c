package controllers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Pragathi917/Shopkart/configs"
	"github.com/Pragathi917/Shopkart/middlewares"
	"github.com/Pragathi917/Shopkart/models"
	"github.com/Pragathi917/Shopkart/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = configs.GetCollection(configs.DB, "orders")
var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

type createOrderRequest struct {
	OrderItems      []models.OrderItem     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      float64                `json:"itemsPrice"`
	TaxPrice        float64                `json:"taxPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

// CreateOrder validates the order, checks stock for every line item before
// touching anything, persists the order, then decrements stock and bumps the
// purchase counter per item. The per-item updates are independent writes, not
// a transaction.
func CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		User:            middlewares.CurrentUser(c).Id,
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := order.Validate(); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	err := models.CheckStock(order.OrderItems, func(id primitive.ObjectID) (*models.Product, error) {
		var product models.Product
		if err := productCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			return nil, err
		}
		return &product, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return responses.Error(c, fiber.StatusNotFound, err.Error())
		}
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := orderCollection.InsertOne(ctx, order); err != nil {
		log.Error().Err(err).Msg("create order: insert failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error saving order")
	}

	for _, item := range order.OrderItems {
		_, err := productCollection.UpdateOne(ctx, bson.M{"_id": item.Product}, bson.M{
			"$inc": bson.M{"countInStock": -item.Qty, "numPurchases": item.Qty},
		})
		if err != nil {
			// The order is already saved; a failed stock write leaves it
			// inconsistent until corrected manually.
			log.Error().Err(err).Str("product", item.Product.Hex()).Msg("create order: stock update failed")
		}
	}

	return responses.Created(c, "Order created successfully", &fiber.Map{"order": order})
}

// GetUserOrders lists the caller's own orders, newest first.
func GetUserOrders(c *fiber.Ctx) error {
	return listOrders(c, bson.M{"user": middlewares.CurrentUser(c).Id})
}

// GetAllOrders lists every order, with an optional status filter.
func GetAllOrders(c *fiber.Ctx) error {
	filter := bson.M{}
	switch c.Query("status") {
	case "paid":
		filter["isPaid"] = true
	case "unpaid":
		filter["isPaid"] = false
	case "delivered":
		filter["isDelivered"] = true
	case "pending":
		filter["isDelivered"] = false
	}
	return listOrders(c, filter)
}

func listOrders(c *fiber.Ctx, filter bson.M) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.ParseInt(c.Query("pageSize", "10"), 10, 64)
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	sortBy := c.Query("sortBy", "createdAt")
	sortOrder := -1
	if c.Query("sortOrder") == "asc" {
		sortOrder = 1
	}

	count, err := orderCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("list orders: count failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error counting orders")
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: sortOrder}}).
		SetSkip(pageSize * (page - 1)).
		SetLimit(pageSize)

	cursor, err := orderCollection.Find(ctx, filter, findOptions)
	if err != nil {
		log.Error().Err(err).Msg("list orders: find failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error fetching orders")
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error parsing orders")
	}

	pages := (count + pageSize - 1) / pageSize

	return responses.OK(c, "", &fiber.Map{
		"orders": orders,
		"page":   page,
		"pages":  pages,
		"count":  count,
	})
}

// GetOrderById returns an order to its owner or to an admin.
func GetOrderById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	order, status, err := findOrderByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	user := middlewares.CurrentUser(c)
	if !order.OwnedBy(user.Id) && user.Role != models.RoleAdmin {
		return responses.Error(c, fiber.StatusForbidden, "Not authorized to view this order")
	}

	return responses.OK(c, "", &fiber.Map{"order": order})
}

type payOrderRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// UpdateOrderToPaid records a payment callback for the caller's own order.
func UpdateOrderToPaid(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	order, status, err := findOrderByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	if !order.OwnedBy(middlewares.CurrentUser(c).Id) {
		return responses.Error(c, fiber.StatusForbidden, "Not authorized to update this order")
	}

	var req payOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	result := models.PaymentResult{
		ID:           req.ID,
		Status:       req.Status,
		UpdateTime:   req.UpdateTime,
		EmailAddress: req.Payer.EmailAddress,
	}
	if err := order.MarkPaid(result); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := savePaymentState(ctx, order); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating order")
	}

	return responses.OK(c, "Order paid successfully", &fiber.Map{"order": order})
}

type orderStatusRequest struct {
	Action    string `json:"action"`
	PaymentID string `json:"paymentId"`
}

// UpdateOrderStatus lets an admin mark an order paid or delivered.
func UpdateOrderStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if req.Action == "" {
		return responses.Error(c, fiber.StatusBadRequest, "Please specify an action (markPaid, markDelivered)")
	}

	order, status, err := findOrderByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	switch req.Action {
	case "markPaid":
		reference := req.PaymentID
		if reference == "" {
			reference = "admin_" + uuid.NewString()
		}
		result := models.PaymentResult{
			ID:         reference,
			Status:     "completed",
			UpdateTime: time.Now().UTC().Format(time.RFC3339),
		}
		if err := order.MarkPaid(result); err != nil {
			return responses.Error(c, fiber.StatusBadRequest, err.Error())
		}
	case "markDelivered":
		if err := order.MarkDelivered(); err != nil {
			return responses.Error(c, fiber.StatusBadRequest, err.Error())
		}
	default:
		return responses.Error(c, fiber.StatusBadRequest, "Invalid action. Use markPaid or markDelivered")
	}

	if err := savePaymentState(ctx, order); err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error updating order")
	}

	message := "Order marked as paid successfully"
	if req.Action == "markDelivered" {
		message = "Order marked as delivered successfully"
	}
	return responses.OK(c, message, &fiber.Map{"order": order})
}

func savePaymentState(ctx context.Context, order *models.Order) error {
	_, err := orderCollection.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": bson.M{
		"isPaid":        order.IsPaid,
		"paidAt":        order.PaidAt,
		"paymentResult": order.PaymentResult,
		"isDelivered":   order.IsDelivered,
		"deliveredAt":   order.DeliveredAt,
		"updatedAt":     time.Now(),
	}})
	if err != nil {
		log.Error().Err(err).Msg("order state: update failed")
	}
	return err
}

// DeleteOrder cancels an unpaid, undelivered order and restores the stock it
// had reserved. Stock restores are independent writes, not a transaction.
func DeleteOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	order, status, err := findOrderByParam(ctx, c)
	if err != nil {
		return responses.Error(c, status, err.Error())
	}

	user := middlewares.CurrentUser(c)
	if !order.OwnedBy(user.Id) && user.Role != models.RoleAdmin {
		return responses.Error(c, fiber.StatusForbidden, "Not authorized to delete this order")
	}

	if err := order.Deletable(); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, err.Error())
	}

	for _, item := range order.OrderItems {
		_, err := productCollection.UpdateOne(ctx, bson.M{"_id": item.Product}, bson.M{
			"$inc": bson.M{"countInStock": item.Qty},
		})
		if err != nil {
			log.Error().Err(err).Str("product", item.Product.Hex()).Msg("delete order: stock restore failed")
		}
	}

	if _, err := orderCollection.DeleteOne(ctx, bson.M{"_id": order.ID}); err != nil {
		log.Error().Err(err).Msg("delete order: delete failed")
		return responses.Error(c, fiber.StatusInternalServerError, "Error deleting order")
	}

	return responses.OK(c, "Order deleted successfully", nil)
}

func findOrderByParam(ctx context.Context, c *fiber.Ctx) (*models.Order, int, error) {
	orderObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("Invalid order ID format")
	}

	var order models.Order
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderObjectID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, fiber.StatusNotFound, errors.New("Order not found")
	} else if err != nil {
		log.Error().Err(err).Msg("order lookup failed")
		return nil, fiber.StatusInternalServerError, errors.New("Error fetching order")
	}
	return &order, fiber.StatusOK, nil
}
