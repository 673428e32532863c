package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoOrderItems      = errors.New("No order items provided")
	ErrIncompleteAddress = errors.New("Please provide complete shipping address")
	ErrNoPaymentMethod   = errors.New("Please select a payment method")
	ErrBadPaymentMethod  = errors.New("Invalid payment method")
	ErrBadQuantity       = errors.New("Quantity must be at least 1")
	ErrProductNotFound   = errors.New("Product not found")
	ErrInsufficientStock = errors.New("Insufficient stock for product")
	ErrAlreadyPaid       = errors.New("Order is already paid")
	ErrAlreadyDelivered  = errors.New("Order is already delivered")
	ErrNotPaidYet        = errors.New("Order must be paid before marking as delivered")
	ErrDeletePaidOrder   = errors.New("Cannot delete order that has been paid")
	ErrDeleteDelivered   = errors.New("Cannot delete order that has been delivered")
)

// PaymentMethods are the accepted values for Order.PaymentMethod.
var PaymentMethods = []string{"PayPal", "Stripe", "Cash on Delivery", "Bank Transfer"}

// OrderItem is a line item. Name, image and price are snapshots of the product
// at order time, not live references.
type OrderItem struct {
	Name    string             `bson:"name" json:"name"`
	Qty     int                `bson:"qty" json:"qty"`
	Image   string             `bson:"image" json:"image"`
	Price   float64            `bson:"price" json:"price"`
	Product primitive.ObjectID `bson:"product" json:"product"`
}

type ShippingAddress struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// PaymentResult records what the payment provider (or an admin override)
// reported when the order was paid.
type PaymentResult struct {
	ID           string `bson:"id,omitempty" json:"id,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
	UpdateTime   string `bson:"update_time,omitempty" json:"update_time,omitempty"`
	EmailAddress string `bson:"email_address,omitempty" json:"email_address,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentResult   PaymentResult      `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	ItemsPrice      float64            `bson:"itemsPrice" json:"itemsPrice"`
	TaxPrice        float64            `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice   float64            `bson:"shippingPrice" json:"shippingPrice"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the fields required at creation time.
func (o *Order) Validate() error {
	if len(o.OrderItems) == 0 {
		return ErrNoOrderItems
	}
	for _, item := range o.OrderItems {
		if item.Qty < 1 {
			return ErrBadQuantity
		}
	}
	a := o.ShippingAddress
	if a.Address == "" || a.City == "" || a.PostalCode == "" || a.Country == "" {
		return ErrIncompleteAddress
	}
	if o.PaymentMethod == "" {
		return ErrNoPaymentMethod
	}
	valid := false
	for _, m := range PaymentMethods {
		if o.PaymentMethod == m {
			valid = true
			break
		}
	}
	if !valid {
		return ErrBadPaymentMethod
	}
	if o.ItemsPrice < 0 || o.TaxPrice < 0 || o.ShippingPrice < 0 || o.TotalPrice < 0 {
		return errors.New("Prices cannot be negative")
	}
	return nil
}

// CheckStock verifies every line item references an existing product with
// enough stock, without mutating anything. The first offending item aborts the
// check, so a failed order never touches inventory.
func CheckStock(items []OrderItem, find func(primitive.ObjectID) (*Product, error)) error {
	for _, item := range items {
		product, err := find(item.Product)
		if err != nil || product == nil {
			return fmt.Errorf("%w: %s", ErrProductNotFound, item.Name)
		}
		if product.CountInStock < item.Qty {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}
	}
	return nil
}

// MarkPaid transitions the order to paid and records the payment result.
func (o *Order) MarkPaid(result PaymentResult) error {
	if o.IsPaid {
		return ErrAlreadyPaid
	}
	now := time.Now()
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = result
	return nil
}

// MarkDelivered transitions a paid order to delivered.
func (o *Order) MarkDelivered() error {
	if !o.IsPaid {
		return ErrNotPaidYet
	}
	if o.IsDelivered {
		return ErrAlreadyDelivered
	}
	now := time.Now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	return nil
}

// Deletable reports whether the order may still be cancelled. Paid or
// delivered orders are permanent.
func (o *Order) Deletable() error {
	if o.IsPaid {
		return ErrDeletePaidOrder
	}
	if o.IsDelivered {
		return ErrDeleteDelivered
	}
	return nil
}

// OwnedBy reports whether the order belongs to the given user.
func (o *Order) OwnedBy(userID primitive.ObjectID) bool {
	return o.User == userID
}
