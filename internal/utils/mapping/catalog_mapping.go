package mapping

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/models"
)

// ToModelPlan converts a domain MembershipPlan to a model MembershipPlan
func ToModelPlan(d domain.MembershipPlan) models.MembershipPlan {
	policyIDs := d.PolicyIDs
	if policyIDs == nil {
		policyIDs = []string{}
	}
	return models.MembershipPlan{
		PlanID:                d.PlanID,
		Name:                  d.Name,
		Description:           d.Description,
		SpaceType:             string(d.SpaceType),
		DurationUnit:          string(d.DurationUnit),
		DurationValue:         d.DurationValue,
		Price:                 d.Price,
		CurrencyCode:          d.CurrencyCode,
		CreditsIncluded:       d.CreditsIncluded,
		PassesIncluded:        d.PassesIncluded,
		CallRoomHoursIncluded: d.CallRoomHoursIncluded,
		IsRecurring:           d.IsRecurring,
		AutoRenew:             d.AutoRenew,
		RequiresDeposit:       d.RequiresDeposit,
		DepositAmount:         d.DepositAmount,
		AllowsExclusiveFloor:  d.AllowsExclusiveFloor,
		PolicyIDs:             policyIDs,
		ProductID:             d.ProductID,
		IsActive:              d.IsActive,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlan converts a model MembershipPlan to a domain MembershipPlan
func ToDomainPlan(m models.MembershipPlan) domain.MembershipPlan {
	policyIDs := m.PolicyIDs
	if policyIDs == nil {
		policyIDs = []string{}
	}
	return domain.MembershipPlan{
		PlanID:                m.PlanID,
		Name:                  m.Name,
		Description:           m.Description,
		SpaceType:             domain.SpaceType(m.SpaceType),
		DurationUnit:          domain.DurationUnit(m.DurationUnit),
		DurationValue:         m.DurationValue,
		Price:                 m.Price,
		CurrencyCode:          m.CurrencyCode,
		CreditsIncluded:       m.CreditsIncluded,
		PassesIncluded:        m.PassesIncluded,
		CallRoomHoursIncluded: m.CallRoomHoursIncluded,
		IsRecurring:           m.IsRecurring,
		AutoRenew:             m.AutoRenew,
		RequiresDeposit:       m.RequiresDeposit,
		DepositAmount:         m.DepositAmount,
		AllowsExclusiveFloor:  m.AllowsExclusiveFloor,
		PolicyIDs:             policyIDs,
		ProductID:             m.ProductID,
		IsActive:              m.IsActive,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelService converts a domain Service to a model Service
func ToModelService(d domain.Service) models.Service {
	return models.Service{
		ServiceID:          d.ServiceID,
		Name:               d.Name,
		Code:               d.Code,
		Description:        d.Description,
		ServiceType:        string(d.ServiceType),
		SpaceType:          string(d.SpaceType),
		IsPaid:             d.IsPaid,
		Price:              d.Price,
		CreditsCost:        d.CreditsCost,
		AllowCreditPayment: d.AllowCreditPayment,
		RequiresApproval:   d.RequiresApproval,
		ProductID:          d.ProductID,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainService converts a model Service to a domain Service
func ToDomainService(m models.Service) domain.Service {
	return domain.Service{
		ServiceID:          m.ServiceID,
		Name:               m.Name,
		Code:               m.Code,
		Description:        m.Description,
		ServiceType:        domain.ServiceType(m.ServiceType),
		SpaceType:          domain.ServiceSpaceType(m.SpaceType),
		IsPaid:             m.IsPaid,
		Price:              m.Price,
		CreditsCost:        m.CreditsCost,
		AllowCreditPayment: m.AllowCreditPayment,
		RequiresApproval:   m.RequiresApproval,
		ProductID:          m.ProductID,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelResource converts a domain Resource to a model Resource
func ToModelResource(d domain.Resource) models.Resource {
	return models.Resource{
		ResourceID:    d.ResourceID,
		Kind:          string(d.Kind),
		Name:          d.Name,
		Code:          d.Code,
		ResourceType:  d.ResourceType,
		FloorID:       d.FloorID,
		Building:      d.Building,
		Address:       d.Address,
		City:          d.City,
		RoomNumber:    d.RoomNumber,
		Capacity:      d.Capacity,
		PricePerHour:  d.PricePerHour,
		PricePerDay:   d.PricePerDay,
		PricePerMonth: d.PricePerMonth,
		IsExclusive:   d.IsExclusive,
		State:         string(d.State),
		MemberID:      d.MemberID,
		MembershipID:  d.MembershipID,
		DateStart:     d.DateStart,
		DateEnd:       d.DateEnd,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainResource converts a model Resource to a domain Resource
func ToDomainResource(m models.Resource) domain.Resource {
	return domain.Resource{
		ResourceID:    m.ResourceID,
		Kind:          domain.ResourceKind(m.Kind),
		Name:          m.Name,
		Code:          m.Code,
		ResourceType:  m.ResourceType,
		FloorID:       m.FloorID,
		Building:      m.Building,
		Address:       m.Address,
		City:          m.City,
		RoomNumber:    m.RoomNumber,
		Capacity:      m.Capacity,
		PricePerHour:  m.PricePerHour,
		PricePerDay:   m.PricePerDay,
		PricePerMonth: m.PricePerMonth,
		IsExclusive:   m.IsExclusive,
		State:         domain.ResourceState(m.State),
		MemberID:      m.MemberID,
		MembershipID:  m.MembershipID,
		DateStart:     m.DateStart,
		DateEnd:       m.DateEnd,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
