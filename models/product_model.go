package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrAlreadyReviewed  = errors.New("Product already reviewed by this user")
	ErrRatingOutOfRange = errors.New("Rating must be between 1 and 5")
)

const DefaultProductImage = "/images/sample.jpg"

type Review struct {
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Category     string             `bson:"category" json:"category"`
	Subcategory  string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Brand        string             `bson:"brand,omitempty" json:"brand,omitempty"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	Rating       float64            `bson:"rating" json:"rating"`
	NumReviews   int                `bson:"numReviews" json:"numReviews"`
	NumPurchases int                `bson:"numPurchases" json:"numPurchases"`
	Reviews      []Review           `bson:"reviews" json:"reviews"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddReview appends a review and recomputes the derived rating fields. A user
// may review a product at most once.
func (p *Product) AddReview(r Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrRatingOutOfRange
	}
	for _, existing := range p.Reviews {
		if existing.User == r.User {
			return ErrAlreadyReviewed
		}
	}
	p.Reviews = append(p.Reviews, r)
	p.NumReviews = len(p.Reviews)

	var sum float64
	for _, rev := range p.Reviews {
		sum += rev.Rating
	}
	p.Rating = sum / float64(len(p.Reviews))
	return nil
}
