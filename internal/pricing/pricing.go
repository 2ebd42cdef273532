package pricing

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// SalePrice computes the discounted price from a base price and a discount
// percentage. Percentages outside the open interval (0, 100) yield nil, which
// downstream code treats as "no sale".
func SalePrice(price decimal.Decimal, discountPercentage *float64) *decimal.Decimal {
	if discountPercentage == nil {
		return nil
	}
	pct := *discountPercentage
	if pct <= 0 || pct >= 100 {
		return nil
	}

	factor := oneHundred.Sub(decimal.NewFromFloat(pct)).Div(oneHundred)
	sale := price.Mul(factor).Round(2)
	return &sale
}

// Effective returns the price a buyer actually pays: the sale price when one
// is set, the base price otherwise.
func Effective(price decimal.Decimal, salePrice *decimal.Decimal) decimal.Decimal {
	if salePrice != nil {
		return *salePrice
	}
	return price
}

// DiscountPercent derives the displayed percentage from base and sale prices,
// rounded to the nearest whole percent. Zero when no discount applies.
func DiscountPercent(price decimal.Decimal, salePrice *decimal.Decimal) int {
	if salePrice == nil || price.IsZero() {
		return 0
	}
	if salePrice.GreaterThanOrEqual(price) {
		return 0
	}
	ratio := price.Sub(*salePrice).Div(price).Mul(oneHundred)
	return int(ratio.Round(0).IntPart())
}

// OnSale reports whether a sale price undercuts the base price.
func OnSale(price decimal.Decimal, salePrice *decimal.Decimal) bool {
	return salePrice != nil && salePrice.LessThan(price)
}
