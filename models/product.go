package models

import (
	"math"
	"strconv"
	"strings"
)

// Product is the storefront representation of a catalog row after the
// picture and size fan-out has been folded back into a single record.
type Product struct {
	ID            int         `json:"id"`
	ProductName   string      `json:"product_name"`
	Price         float64     `json:"price"`
	DiscountPrice *float64    `json:"discount_price"`
	Description   string      `json:"description"`
	CategoryName  string      `json:"category_name"`
	BrandName     string      `json:"brand_name"`
	Pictures      []string    `json:"pictures"`
	Sizes         []SizeStock `json:"sizes"`
}

// SizeStock is one stock entry. Size is empty for one-size products.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// RecommendedProduct is the thin card shown in the "similar products" strip.
type RecommendedProduct struct {
	ID            int      `json:"id"`
	ProductName   string   `json:"product_name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	BrandName     string   `json:"brand_name"`
	Pictures      []string `json:"pictures"`
}

// CatalogData is the payload of the product listing endpoint.
type CatalogData struct {
	Products     []Product `json:"products"`
	Total        int       `json:"total"`
	OverallTotal int       `json:"overallTotal"`
}

// EffectivePrice returns the discount price when it is a real markdown,
// otherwise the list price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// SafePrice normalizes a price-like value so that NaN or negative garbage
// never reaches sorting or arithmetic on the client.
func SafePrice(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SplitPictures turns the STRING_AGG picture column into the ordered list
// the storefront expects. The first entry matching "-1." is the default
// image, the first matching "-2." the hover image.
func SplitPictures(agg string) []string {
	if agg == "" {
		return []string{}
	}
	parts := strings.Split(agg, ",")
	pictures := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pictures = append(pictures, p)
		}
	}
	return pictures
}

// ParseSizes turns the STRING_AGG size column ("S:3,M:0,42") into stock
// entries. Entries without a label are one-size stock rows. Malformed
// quantities normalize to 0.
func ParseSizes(agg string) []SizeStock {
	if agg == "" {
		return []SizeStock{}
	}
	parts := strings.Split(agg, ",")
	sizes := make([]SizeStock, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, stockStr := "", part
		if i := strings.LastIndex(part, ":"); i >= 0 {
			label, stockStr = part[:i], part[i+1:]
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			stock = 0
		}
		sizes = append(sizes, SizeStock{Size: label, Stock: stock})
	}
	return sizes
}
