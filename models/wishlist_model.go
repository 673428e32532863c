package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrAlreadyInWishlist = errors.New("Product already in wishlist")

// WishlistItem snapshots the product's display fields at the time it was
// added. It is not kept in sync with later product edits.
type WishlistItem struct {
	Product      primitive.ObjectID `bson:"product" json:"product"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	Price        float64            `bson:"price" json:"price"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type Wishlist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Items     []WishlistItem     `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewWishlist builds the lazily created, empty wishlist for a user.
func NewWishlist(userID primitive.ObjectID) Wishlist {
	now := time.Now()
	return Wishlist{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Items:     []WishlistItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add snapshots a product into the wishlist. Adding a product that is already
// present is rejected rather than silently ignored.
func (w *Wishlist) Add(p *Product) error {
	for _, item := range w.Items {
		if item.Product == p.ID {
			return ErrAlreadyInWishlist
		}
	}
	w.Items = append(w.Items, WishlistItem{
		Product:      p.ID,
		Name:         p.Name,
		Image:        p.Image,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		CreatedAt:    time.Now(),
	})
	return nil
}

// Remove drops a product from the wishlist. Removing a product that is not
// present is a no-op.
func (w *Wishlist) Remove(productID primitive.ObjectID) {
	items := w.Items[:0]
	for _, item := range w.Items {
		if item.Product != productID {
			items = append(items, item)
		}
	}
	w.Items = items
}
