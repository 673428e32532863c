package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validOrder() Order {
	return Order{
		OrderItems: []OrderItem{
			{Name: "Keyboard", Qty: 2, Price: 49.99, Product: primitive.NewObjectID()},
		},
		ShippingAddress: ShippingAddress{
			Address:    "1 Main St",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "USA",
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    99.98,
		TaxPrice:      10.0,
		ShippingPrice: 5.0,
		TotalPrice:    114.98,
	}
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr error
	}{
		{"valid", func(o *Order) {}, nil},
		{"no items", func(o *Order) { o.OrderItems = nil }, ErrNoOrderItems},
		{"zero quantity", func(o *Order) { o.OrderItems[0].Qty = 0 }, ErrBadQuantity},
		{"missing address", func(o *Order) { o.ShippingAddress.Address = "" }, ErrIncompleteAddress},
		{"missing city", func(o *Order) { o.ShippingAddress.City = "" }, ErrIncompleteAddress},
		{"missing postal code", func(o *Order) { o.ShippingAddress.PostalCode = "" }, ErrIncompleteAddress},
		{"missing country", func(o *Order) { o.ShippingAddress.Country = "" }, ErrIncompleteAddress},
		{"no payment method", func(o *Order) { o.PaymentMethod = "" }, ErrNoPaymentMethod},
		{"unknown payment method", func(o *Order) { o.PaymentMethod = "Barter" }, ErrBadPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)
			err := order.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOrder_Validate_AcceptsEveryPaymentMethod(t *testing.T) {
	for _, method := range PaymentMethods {
		order := validOrder()
		order.PaymentMethod = method
		assert.NoError(t, order.Validate())
	}
}

func TestCheckStock_AllItemsAvailable(t *testing.T) {
	id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
	catalog := map[primitive.ObjectID]*Product{
		id1: {ID: id1, Name: "Keyboard", CountInStock: 10},
		id2: {ID: id2, Name: "Mouse", CountInStock: 10},
	}
	items := []OrderItem{
		{Name: "Keyboard", Qty: 2, Product: id1},
		{Name: "Mouse", Qty: 3, Product: id2},
	}

	err := CheckStock(items, func(id primitive.ObjectID) (*Product, error) {
		return catalog[id], nil
	})
	assert.NoError(t, err)
}

func TestCheckStock_StopsAtFirstOffendingItem(t *testing.T) {
	id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
	catalog := map[primitive.ObjectID]*Product{
		id1: {ID: id1, Name: "Keyboard", CountInStock: 1},
		id2: {ID: id2, Name: "Mouse", CountInStock: 10},
	}
	items := []OrderItem{
		{Name: "Keyboard", Qty: 5, Product: id1},
		{Name: "Mouse", Qty: 1, Product: id2},
	}

	var looked []primitive.ObjectID
	err := CheckStock(items, func(id primitive.ObjectID) (*Product, error) {
		looked = append(looked, id)
		return catalog[id], nil
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Keyboard")
	// The check aborts before looking past the failing item.
	assert.Equal(t, []primitive.ObjectID{id1}, looked)
}

func TestCheckStock_UnknownProduct(t *testing.T) {
	items := []OrderItem{{Name: "Ghost", Qty: 1, Product: primitive.NewObjectID()}}

	err := CheckStock(items, func(id primitive.ObjectID) (*Product, error) {
		return nil, ErrProductNotFound
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestOrder_MarkPaid(t *testing.T) {
	order := validOrder()
	result := PaymentResult{ID: "PAY-1", Status: "COMPLETED", EmailAddress: "buyer@example.com"}

	require.NoError(t, order.MarkPaid(result))
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, result, order.PaymentResult)

	assert.ErrorIs(t, order.MarkPaid(result), ErrAlreadyPaid)
}

func TestOrder_MarkDelivered_RequiresPayment(t *testing.T) {
	order := validOrder()

	assert.ErrorIs(t, order.MarkDelivered(), ErrNotPaidYet)
	assert.False(t, order.IsDelivered)

	require.NoError(t, order.MarkPaid(PaymentResult{ID: "PAY-1"}))
	require.NoError(t, order.MarkDelivered())
	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)

	assert.ErrorIs(t, order.MarkDelivered(), ErrAlreadyDelivered)
}

func TestOrder_Deletable(t *testing.T) {
	order := validOrder()
	assert.NoError(t, order.Deletable())

	require.NoError(t, order.MarkPaid(PaymentResult{ID: "PAY-1"}))
	assert.ErrorIs(t, order.Deletable(), ErrDeletePaidOrder)

	require.NoError(t, order.MarkDelivered())
	assert.ErrorIs(t, order.Deletable(), ErrDeletePaidOrder)
}

func TestOrder_OwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	order := Order{User: owner}

	assert.True(t, order.OwnedBy(owner))
	assert.False(t, order.OwnedBy(primitive.NewObjectID()))
}
