package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// CatalogQuery holds the parsed listing parameters: free-text keyword,
// category substring, inclusive price range, pagination and sort.
type CatalogQuery struct {
	Keyword   string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	Page      int64
	PageSize  int64
	SortBy    string
	SortOrder int
}

// ParseCatalogQuery reads the listing parameters from the request query
// string, applying the defaults the original API used.
func ParseCatalogQuery(c *fiber.Ctx) CatalogQuery {
	q := CatalogQuery{
		Keyword:   c.Query("keyword"),
		Category:  c.Query("category"),
		Page:      1,
		PageSize:  10,
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: -1,
	}

	if page, err := strconv.ParseInt(c.Query("pageNumber"), 10, 64); err == nil && page > 0 {
		q.Page = page
	}
	if size, err := strconv.ParseInt(c.Query("pageSize"), 10, 64); err == nil && size > 0 {
		q.PageSize = size
	}
	if c.Query("sortOrder") == "asc" {
		q.SortOrder = 1
	}
	if min, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		q.MinPrice = &min
	}
	if max, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		q.MaxPrice = &max
	}
	return q
}

// Filter builds the Mongo filter. The keyword matches name, description or
// category case-insensitively; all other clauses are AND-combined with it.
func (q CatalogQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Keyword != "" {
		regex := bson.M{"$regex": q.Keyword, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
			{"category": regex},
		}
	}

	if q.Category != "" {
		filter["category"] = bson.M{"$regex": q.Category, "$options": "i"}
	}

	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

// Sort builds the find sort document.
func (q CatalogQuery) Sort() bson.D {
	return bson.D{{Key: q.SortBy, Value: q.SortOrder}}
}

// Skip is the number of documents before the requested page.
func (q CatalogQuery) Skip() int64 {
	return q.PageSize * (q.Page - 1)
}

// Pages computes the page count for a result set.
func Pages(count, pageSize int64) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
