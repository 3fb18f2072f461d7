package dto

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditPackageResponse defines the data returned for a catalog package.
type CreditPackageResponse struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	ProductID          string          `json:"productID"`
	CreditsPerPackage  int64           `json:"creditsPerPackage"`
	Price              decimal.Decimal `json:"price"`
	PricePerCredit     decimal.Decimal `json:"pricePerCredit"`
	ValidityYears      int             `json:"validityYears"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

// ToCreditPackageResponse converts a domain.CreditPackage to CreditPackageResponse DTO.
func ToCreditPackageResponse(p domain.CreditPackage) CreditPackageResponse {
	return CreditPackageResponse{
		Code:               p.Code,
		Name:               p.Name,
		ProductID:          p.ProductID,
		CreditsPerPackage:  p.CreditsPerPackage,
		Price:              p.Price,
		PricePerCredit:     p.PricePerCredit(),
		ValidityYears:      p.Validity(),
		DiscountPercentage: p.DiscountPercentage,
	}
}

// SellCreditPackageRequest defines a package sale to a member.
type SellCreditPackageRequest struct {
	MemberID string `json:"memberID" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

// BillingRequestResponse defines the data returned for a pending sale order.
type BillingRequestResponse struct {
	BillingRequestID string                     `json:"billingRequestID"`
	PartnerID        string                     `json:"partnerID"`
	Origin           string                     `json:"origin"`
	State            domain.BillingRequestState `json:"state"`
	AmountTotal      decimal.Decimal            `json:"amountTotal"`
}

// ToBillingRequestResponse converts a domain.BillingRequest to BillingRequestResponse DTO.
func ToBillingRequestResponse(b *domain.BillingRequest) BillingRequestResponse {
	return BillingRequestResponse{
		BillingRequestID: b.BillingRequestID,
		PartnerID:        b.PartnerID,
		Origin:           b.Origin,
		State:            b.State,
		AmountTotal:      b.AmountTotal,
	}
}
