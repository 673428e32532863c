package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func floatPtr(f float64) *float64 { return &f }

func TestCatalogQuery_Filter_Empty(t *testing.T) {
	q := CatalogQuery{}
	assert.Equal(t, bson.M{}, q.Filter())
}

func TestCatalogQuery_Filter_Keyword(t *testing.T) {
	q := CatalogQuery{Keyword: "usb"}

	regex := bson.M{"$regex": "usb", "$options": "i"}
	assert.Equal(t, bson.M{
		"$or": []bson.M{
			{"name": regex},
			{"description": regex},
			{"category": regex},
		},
	}, q.Filter())
}

func TestCatalogQuery_Filter_AllClausesCombined(t *testing.T) {
	q := CatalogQuery{
		Keyword:  "usb",
		Category: "electronics",
		MinPrice: floatPtr(10),
		MaxPrice: floatPtr(50),
	}

	filter := q.Filter()
	assert.Contains(t, filter, "$or")
	assert.Equal(t, bson.M{"$regex": "electronics", "$options": "i"}, filter["category"])
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.0}, filter["price"])
}

func TestCatalogQuery_Filter_PriceRangeHalfOpen(t *testing.T) {
	min := CatalogQuery{MinPrice: floatPtr(10)}
	assert.Equal(t, bson.M{"price": bson.M{"$gte": 10.0}}, min.Filter())

	max := CatalogQuery{MaxPrice: floatPtr(50)}
	assert.Equal(t, bson.M{"price": bson.M{"$lte": 50.0}}, max.Filter())
}

func TestCatalogQuery_SortAndSkip(t *testing.T) {
	q := CatalogQuery{Page: 3, PageSize: 10, SortBy: "price", SortOrder: 1}

	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, q.Sort())
	assert.Equal(t, int64(20), q.Skip())
}

func TestPages(t *testing.T) {
	tests := []struct {
		count    int64
		pageSize int64
		want     int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pages(tt.count, tt.pageSize))
	}
}
