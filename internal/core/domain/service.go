package domain

import "github.com/shopspring/decimal"

// ServiceType is the bookable service taxonomy.
type ServiceType string

const (
	ServiceMeetingRoom ServiceType = "meeting_room"
	ServiceEventHall   ServiceType = "event_hall"
	ServiceSharedSpace ServiceType = "shared_space"
	ServiceCafeteria   ServiceType = "cafeteria"
	ServiceLocker      ServiceType = "locker"
	ServiceParking     ServiceType = "parking"
	ServiceInternet    ServiceType = "internet"
	ServicePrinting    ServiceType = "printing"
	ServicePhoneBooth  ServiceType = "phone_booth"
	ServiceOther       ServiceType = "other"
)

var serviceTypes = map[ServiceType]bool{
	ServiceMeetingRoom: true, ServiceEventHall: true, ServiceSharedSpace: true, ServiceCafeteria: true,
	ServiceLocker: true, ServiceParking: true, ServiceInternet: true, ServicePrinting: true,
	ServicePhoneBooth: true, ServiceOther: true,
}

// Valid reports whether t is a known service type.
func (t ServiceType) Valid() bool {
	return serviceTypes[t]
}

// Day passes cover shared areas and meeting rooms; call-room hours cover phone booths.
var (
	passEligibleServiceTypes    = map[ServiceType]bool{ServiceSharedSpace: true, ServiceMeetingRoom: true}
	callRoomEligibleServiceType = ServicePhoneBooth
)

// ServiceSpaceType says which memberships may book a service.
type ServiceSpaceType string

const (
	ServiceForCoworking ServiceSpaceType = "coworking"
	ServiceForColiving  ServiceSpaceType = "coliving"
	ServiceForBoth      ServiceSpaceType = "both"
)

// Valid reports whether s is a known service space type.
func (s ServiceSpaceType) Valid() bool {
	return s == ServiceForCoworking || s == ServiceForColiving || s == ServiceForBoth
}

// Service is a bookable catalog entry priced per hour.
type Service struct {
	ServiceID          string           `json:"serviceID"`
	Name               string           `json:"name"`
	Code               string           `json:"code"`
	Description        string           `json:"description"`
	ServiceType        ServiceType      `json:"serviceType"`
	SpaceType          ServiceSpaceType `json:"spaceType"`
	IsPaid             bool             `json:"isPaid"`
	Price              decimal.Decimal  `json:"price"`
	CreditsCost        decimal.Decimal  `json:"creditsCost"`
	AllowCreditPayment bool             `json:"allowCreditPayment"`
	RequiresApproval   bool             `json:"requiresApproval"`
	ProductID          *string          `json:"productID,omitempty"`
	IsActive           bool             `json:"isActive"`
	AuditFields
}

// IsPassEligible reports whether day passes may pay for the service.
func (s Service) IsPassEligible() bool {
	return passEligibleServiceTypes[s.ServiceType]
}

// IsCallRoomEligible reports whether call-room hours may pay for the service.
func (s Service) IsCallRoomEligible() bool {
	return s.ServiceType == callRoomEligibleServiceType
}

// AvailableFor reports whether members of the given space may book the service.
func (s Service) AvailableFor(space SpaceType) bool {
	return s.SpaceType == ServiceForBoth || string(s.SpaceType) == string(space)
}

// PriceFor is the service price for a duration in hours.
func (s Service) PriceFor(hours decimal.Decimal) decimal.Decimal {
	return s.Price.Mul(hours)
}

// CreditsCostFor is the credit cost for a duration, truncated toward zero.
func (s Service) CreditsCostFor(hours decimal.Decimal) int64 {
	return s.CreditsCost.Mul(hours).IntPart()
}
