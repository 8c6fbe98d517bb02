package service

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/shopspring/decimal"
)

var catalogQueryKeys = map[string]bool{
	"category":     true,
	"name":         true,
	"q":            true,
	"minPrice":     true,
	"maxPrice":     true,
	"freeDelivery": true,
	"available":    true,
	"sort":         true,
	"page":         true,
	"limit":        true,
}

// ParseCatalogQuery validates catalog listing parameters. Unknown keys are
// rejected rather than ignored.
func ParseCatalogQuery(values url.Values) (domain.CatalogQuery, error) {
	const op = "catalog.query"

	q := domain.CatalogQuery{
		Sort:  domain.SortNovelty,
		Page:  1,
		Limit: domain.DefaultPageSize,
	}
	fields := map[string]string{}

	var unknown []string
	for key := range values {
		if !catalogQueryKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		fields[key] = "unknown parameter"
	}

	if raw := values.Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			fields["category"] = "must be a positive integer"
		} else {
			q.CategoryID = &id
		}
	}

	q.Name = strings.TrimSpace(values.Get("name"))
	if q.Name == "" {
		q.Name = strings.TrimSpace(values.Get("q"))
	}

	q.MinPrice = parsePrice(values.Get("minPrice"), "minPrice", fields)
	q.MaxPrice = parsePrice(values.Get("maxPrice"), "maxPrice", fields)
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		fields["minPrice"] = "must not exceed maxPrice"
	}

	q.FreeDelivery = parseFlag(values.Get("freeDelivery"), "freeDelivery", fields)
	q.Available = parseFlag(values.Get("available"), "available", fields)

	if raw := values.Get("sort"); raw != "" {
		key := domain.SortKey(raw)
		if !key.Valid() {
			fields["sort"] = "must be one of: price, -price, popularity, reviews, novelty"
		} else {
			q.Sort = key
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields["page"] = "must be a positive integer"
		} else {
			q.Page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > domain.MaxPageSize {
			fields["limit"] = "must be between 1 and " + strconv.Itoa(domain.MaxPageSize)
		} else {
			q.Limit = limit
		}
	}

	// The row offset is sent to Postgres as a 32-bit integer.
	if _, bad := fields["page"]; !bad && int64(q.Page-1)*int64(q.Limit) > math.MaxInt32 {
		fields["page"] = "is too large"
	}

	if len(fields) > 0 {
		return domain.CatalogQuery{}, &domain.ValidationError{Op: op, Fields: fields}
	}
	return q, nil
}

// ParseCategoryParam reads the optional category filter shared by the tags
// and filters endpoints.
func ParseCategoryParam(values url.Values) (*int64, error) {
	raw := values.Get("category")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, domain.NewValidationError("catalog.category", "category", "must be a positive integer")
	}
	return &id, nil
}

func parsePrice(raw, field string, fields map[string]string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		fields[field] = "must be a non-negative number"
		return nil
	}
	return &d
}

func parseFlag(raw, field string, fields map[string]string) bool {
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		fields[field] = "must be true or false"
		return false
	}
	return v
}
