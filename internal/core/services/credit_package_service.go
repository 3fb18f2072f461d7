package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/shopspring/decimal"
)

// creditPackageService sells credit packages and turns confirmed sale orders into ledger entries.
type creditPackageService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	ledgerRepo portsrepo.LedgerRepositoryFacade
	ledgerSvc  portssvc.LedgerSvcFacade
	billing    gateways.BillingGateway
	catalog    domain.CreditPackageCatalog
	clock      gateways.Clock
}

// NewCreditPackageService creates a new credit package service over a fixed catalog.
func NewCreditPackageService(
	repos portsrepo.RepositoryProvider,
	ledgerSvc portssvc.LedgerSvcFacade,
	billing gateways.BillingGateway,
	catalog domain.CreditPackageCatalog,
	clock gateways.Clock,
) portssvc.CreditPackageSvcFacade {
	if catalog == nil {
		catalog = domain.CreditPackageCatalog{}
	}
	return &creditPackageService{
		txManager:  repos.TxManager,
		ledgerRepo: repos.LedgerRepo,
		ledgerSvc:  ledgerSvc,
		billing:    billing,
		catalog:    catalog,
		clock:      clock,
	}
}

var _ portssvc.CreditPackageSvcFacade = (*creditPackageService)(nil)

func (s *creditPackageService) ListPackages(_ context.Context) []domain.CreditPackage {
	packages := make([]domain.CreditPackage, 0, len(s.catalog))
	for _, p := range s.catalog {
		packages = append(packages, p)
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].Code < packages[j].Code })
	return packages
}

func (s *creditPackageService) SyncProducts(ctx context.Context) error {
	for _, p := range s.ListPackages(ctx) {
		if _, err := s.billing.UpsertProduct(ctx, domain.BillableProduct{
			ProductID: p.ProductID,
			Name:      p.Name,
			ListPrice: p.Price,
			IsService: true,
		}); err != nil {
			s.LogError(ctx, err, "Failed to sync credit package product", slog.String("code", p.Code))
			return err
		}
	}
	return nil
}

func (s *creditPackageService) SellPackage(ctx context.Context, code string, req dto.SellCreditPackageRequest, userID string) (*domain.BillingRequest, error) {
	pkg, ok := s.catalog.ByCode(code)
	if !ok {
		return nil, fmt.Errorf("%w: credit package %q", apperrors.ErrNotFound, code)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	request, err := s.billing.CreateBillingRequest(ctx, req.MemberID, pkg.Code, []domain.InvoiceLine{{
		ProductID:   pkg.ProductID,
		Description: pkg.Name,
		Quantity:    decimal.NewFromInt(req.Quantity),
		UnitPrice:   pkg.Price,
	}})
	if err != nil {
		s.LogError(ctx, err, "Failed to sell credit package",
			slog.String("code", code),
			slog.String("member_id", req.MemberID))
		return nil, err
	}
	s.LogInfo(ctx, "Credit package sale opened",
		slog.String("code", code),
		slog.String("member_id", req.MemberID),
		slog.String("billing_request_id", request.BillingRequestID),
		slog.String("user_id", userID))
	return request, nil
}

// ApplyConfirmedOrder is idempotent per order reference: an order already booked into the
// ledger appends nothing. The order reference stays locked while it is checked and booked.
func (s *creditPackageService) ApplyConfirmedOrder(ctx context.Context, order domain.ConfirmedOrder) ([]domain.LedgerEntry, error) {
	if order.OrderRef == "" || order.PartnerID == "" {
		return nil, fmt.Errorf("%w: confirmed orders need a reference and a partner", apperrors.ErrValidation)
	}

	var applied []domain.LedgerEntry
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledgerRepo.LockSaleOrder(ctx, order.OrderRef); err != nil {
			return err
		}
		existing, _, err := s.ledgerRepo.ListEntries(ctx, domain.LedgerFilter{
			MemberID:     order.PartnerID,
			Entitlement:  domain.EntitlementCredits,
			SaleOrderRef: order.OrderRef,
		}, 1, nil)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		today := domain.DateOf(s.clock.Now())
		orderRef := order.OrderRef
		for _, line := range order.Lines {
			pkg, ok := s.catalog[line.ProductID]
			if !ok || !line.Quantity.IsPositive() {
				continue
			}
			credits := line.Quantity.Mul(decimal.NewFromInt(pkg.CreditsPerPackage))
			pricePerCredit := pkg.PricePerCredit()
			if line.UnitPrice.IsPositive() && pkg.CreditsPerPackage > 0 {
				pricePerCredit = line.UnitPrice.Div(decimal.NewFromInt(pkg.CreditsPerPackage))
			}
			expiresOn := domain.AddYears(today, pkg.Validity())
			entry, err := s.ledgerSvc.Append(ctx, domain.LedgerEntry{
				MemberID:     order.PartnerID,
				Entitlement:  domain.EntitlementCredits,
				Kind:         domain.LedgerPurchased,
				Amount:       credits,
				Description:  fmt.Sprintf("%s x %s (%s)", line.Quantity, pkg.Name, orderRef),
				ExpiresOn:    &expiresOn,
				PricePerUnit: &pricePerCredit,
				SaleOrderRef: &orderRef,
			})
			if err != nil {
				return err
			}
			applied = append(applied, *entry)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to apply confirmed order", slog.String("order_ref", order.OrderRef))
		return nil, err
	}

	s.LogInfo(ctx, "Confirmed order applied",
		slog.String("order_ref", order.OrderRef),
		slog.Int("entries", len(applied)))
	return applied, nil
}

func (s *creditPackageService) PurchaseCredits(ctx context.Context, memberID string, req dto.PurchaseCreditsRequest, userID string) (*domain.LedgerEntry, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}
	if req.PricePerCredit.IsNegative() {
		return nil, fmt.Errorf("%w: price per credit cannot be negative", apperrors.ErrValidation)
	}
	validity := req.ValidityYears
	if validity <= 0 {
		validity = 1
	}

	var entry *domain.LedgerEntry
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		amount := decimal.NewFromInt(req.Amount)
		pricePerCredit := req.PricePerCredit
		var invoiceID *string
		if pricePerCredit.IsPositive() {
			invoice, err := s.billing.CreateInvoice(ctx, memberID, "credit purchase", []domain.InvoiceLine{{
				ProductID:   req.ProductID,
				Description: fmt.Sprintf("%d credits", req.Amount),
				Quantity:    amount,
				UnitPrice:   pricePerCredit,
			}})
			if err != nil {
				return err
			}
			invoiceID = &invoice.InvoiceID
		}
		expiresOn := domain.AddYears(s.clock.Now(), validity)
		var err error
		entry, err = s.ledgerSvc.Append(ctx, domain.LedgerEntry{
			MemberID:     memberID,
			Entitlement:  domain.EntitlementCredits,
			Kind:         domain.LedgerPurchased,
			Amount:       amount,
			Description:  fmt.Sprintf("Purchase of %d credits", req.Amount),
			ExpiresOn:    &expiresOn,
			PricePerUnit: &pricePerCredit,
			InvoiceID:    invoiceID,
			CreatedBy:    userID,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to purchase credits", slog.String("member_id", memberID))
		return nil, err
	}
	return entry, nil
}
