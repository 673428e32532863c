package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWishlist_Add_SnapshotsProductFields(t *testing.T) {
	product := Product{
		ID:           primitive.NewObjectID(),
		Name:         "Keyboard",
		Image:        "/images/keyboard.jpg",
		Price:        49.99,
		CountInStock: 7,
	}
	wishlist := NewWishlist(primitive.NewObjectID())

	require.NoError(t, wishlist.Add(&product))
	require.Len(t, wishlist.Items, 1)

	item := wishlist.Items[0]
	assert.Equal(t, product.ID, item.Product)
	assert.Equal(t, "Keyboard", item.Name)
	assert.Equal(t, "/images/keyboard.jpg", item.Image)
	assert.Equal(t, 49.99, item.Price)
	assert.Equal(t, 7, item.CountInStock)

	// Later product edits must not affect the stored snapshot.
	product.Price = 99.99
	assert.Equal(t, 49.99, wishlist.Items[0].Price)
}

func TestWishlist_Add_DuplicateRejected(t *testing.T) {
	product := Product{ID: primitive.NewObjectID(), Name: "Keyboard"}
	wishlist := NewWishlist(primitive.NewObjectID())

	require.NoError(t, wishlist.Add(&product))
	assert.ErrorIs(t, wishlist.Add(&product), ErrAlreadyInWishlist)
	assert.Len(t, wishlist.Items, 1)
}

func TestWishlist_Remove(t *testing.T) {
	first := Product{ID: primitive.NewObjectID(), Name: "Keyboard"}
	second := Product{ID: primitive.NewObjectID(), Name: "Mouse"}
	wishlist := NewWishlist(primitive.NewObjectID())
	require.NoError(t, wishlist.Add(&first))
	require.NoError(t, wishlist.Add(&second))

	wishlist.Remove(first.ID)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, second.ID, wishlist.Items[0].Product)

	// Removing something that is not there is a no-op.
	wishlist.Remove(primitive.NewObjectID())
	assert.Len(t, wishlist.Items, 1)
}
