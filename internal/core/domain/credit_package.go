package domain

import "github.com/shopspring/decimal"

// CreditPackage is a purchasable bundle of credits identified by its billable product.
type CreditPackage struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	ProductID          string          `json:"productID"`
	CreditsPerPackage  int64           `json:"creditsPerPackage"`
	Price              decimal.Decimal `json:"price"`
	ValidityYears      int             `json:"validityYears"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

// PricePerCredit is the package price spread over its credits.
func (p CreditPackage) PricePerCredit() decimal.Decimal {
	if p.CreditsPerPackage == 0 {
		return decimal.Zero
	}
	return p.Price.Div(decimal.NewFromInt(p.CreditsPerPackage))
}

// Validity defaults to one year when unset.
func (p CreditPackage) Validity() int {
	if p.ValidityYears <= 0 {
		return 1
	}
	return p.ValidityYears
}

// CreditPackageCatalog maps billable product ids to packages.
type CreditPackageCatalog map[string]CreditPackage

// ByCode finds a package by its code.
func (c CreditPackageCatalog) ByCode(code string) (CreditPackage, bool) {
	for _, p := range c {
		if p.Code == code {
			return p, true
		}
	}
	return CreditPackage{}, false
}
