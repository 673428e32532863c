package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProduct_AddReview_RecomputesMean(t *testing.T) {
	p := Product{Name: "Keyboard"}

	require.NoError(t, p.AddReview(Review{User: primitive.NewObjectID(), Rating: 5}))
	require.NoError(t, p.AddReview(Review{User: primitive.NewObjectID(), Rating: 3}))

	assert.Equal(t, 2, p.NumReviews)
	assert.Equal(t, 4.0, p.Rating)

	// (5+3+4)/3 is still exactly 4.0
	require.NoError(t, p.AddReview(Review{User: primitive.NewObjectID(), Rating: 4}))
	assert.Equal(t, 3, p.NumReviews)
	assert.Equal(t, 4.0, p.Rating)
}

func TestProduct_AddReview_SecondReviewBySameUserRejected(t *testing.T) {
	reviewer := primitive.NewObjectID()
	p := Product{Name: "Keyboard"}

	require.NoError(t, p.AddReview(Review{User: reviewer, Rating: 5}))

	err := p.AddReview(Review{User: reviewer, Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, 1, p.NumReviews)
	assert.Equal(t, 5.0, p.Rating)
}

func TestProduct_AddReview_RatingBounds(t *testing.T) {
	p := Product{Name: "Keyboard"}

	assert.ErrorIs(t, p.AddReview(Review{User: primitive.NewObjectID(), Rating: 0}), ErrRatingOutOfRange)
	assert.ErrorIs(t, p.AddReview(Review{User: primitive.NewObjectID(), Rating: 6}), ErrRatingOutOfRange)
	assert.Empty(t, p.Reviews)

	assert.NoError(t, p.AddReview(Review{User: primitive.NewObjectID(), Rating: 1}))
	assert.NoError(t, p.AddReview(Review{User: primitive.NewObjectID(), Rating: 5}))
}
