package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductForm is the raw text an operator typed into the product editor.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Stock       string
	Rating      string
	CategoryID  uint
	BrandID     uint
	TagIDs      []uint
}

// ParseProductForm converts form text into a ProductInput. The price may be
// typed with decimals and is rounded to a whole amount; the rating is rounded
// to one decimal place. Both round half to even.
func ParseProductForm(f ProductForm) (ProductInput, error) {
	fields := make(map[string]string)
	in := ProductInput{
		Name:        f.Name,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		BrandID:     f.BrandID,
		TagIDs:      f.TagIDs,
	}

	if price, msg := parseDecimal(f.Price); msg != "" {
		fields["Price"] = msg
	} else if !price.IsPositive() {
		fields["Price"] = "must be positive"
	} else if price.GreaterThan(decimal.NewFromInt(100000)) {
		fields["Price"] = "must be at most 100000"
	} else {
		in.Price = int(price.RoundBank(0).IntPart())
	}

	if strings.TrimSpace(f.Stock) == "" {
		fields["Stock"] = "is required"
	} else if stock, err := strconv.Atoi(strings.TrimSpace(f.Stock)); err != nil {
		fields["Stock"] = "must be a whole number"
	} else {
		in.Stock = stock
	}

	if rating, msg := parseDecimal(f.Rating); msg != "" {
		fields["Rating"] = msg
	} else if rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(5)) {
		fields["Rating"] = "must be between 0 and 5"
	} else {
		in.Rating = rating.RoundBank(1)
	}

	if len(fields) > 0 {
		return ProductInput{}, &ValidationError{Fields: fields}
	}
	return in, nil
}

func parseDecimal(s string) (decimal.Decimal, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, "is required"
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, "must be a number"
	}
	return d, ""
}
