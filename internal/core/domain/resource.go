package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ResourceKind distinguishes the allocatable units.
type ResourceKind string

const (
	ResourceDesk  ResourceKind = "desk"
	ResourceBed   ResourceKind = "bed"
	ResourceFloor ResourceKind = "floor"
)

// Valid reports whether k is a known resource kind.
func (k ResourceKind) Valid() bool {
	return k == ResourceDesk || k == ResourceBed || k == ResourceFloor
}

// ResourceState is the availability state of a resource.
type ResourceState string

const (
	ResourceAvailable   ResourceState = "available"
	ResourceReserved    ResourceState = "reserved"
	ResourceOccupied    ResourceState = "occupied"
	ResourceMaintenance ResourceState = "maintenance"
	ResourceRented      ResourceState = "rented" // floors only
)

// Desk and bed type taxonomies.
const (
	DeskFlexible     = "flexible"
	DeskPrivateCabin = "private_cabin"
	DeskMeetingRoom  = "meeting_room"
	DeskHotDesk      = "hot_desk"

	BedSingle      = "single"
	BedShared      = "shared"
	BedBunk        = "bunk"
	BedPrivateRoom = "private_room"
)

var resourceTypes = map[ResourceKind]map[string]bool{
	ResourceDesk: {DeskFlexible: true, DeskPrivateCabin: true, DeskMeetingRoom: true, DeskHotDesk: true},
	ResourceBed:  {BedSingle: true, BedShared: true, BedBunk: true, BedPrivateRoom: true},
}

// ValidResourceType reports whether t belongs to the taxonomy of kind. Floors have no taxonomy.
func ValidResourceType(kind ResourceKind, t string) bool {
	if kind == ResourceFloor {
		return t == ""
	}
	return resourceTypes[kind][t]
}

// Resource is a desk, bed or floor. Desks and beds sit on a floor; floors may be rented exclusively.
type Resource struct {
	ResourceID    string          `json:"resourceID"`
	Kind          ResourceKind    `json:"kind"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	ResourceType  string          `json:"resourceType,omitempty"`
	FloorID       *string         `json:"floorID,omitempty"`
	Building      string          `json:"building,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city"`
	RoomNumber    string          `json:"roomNumber,omitempty"`
	Capacity      int             `json:"capacity"`
	PricePerHour  decimal.Decimal `json:"pricePerHour"`
	PricePerDay   decimal.Decimal `json:"pricePerDay"`
	PricePerMonth decimal.Decimal `json:"pricePerMonth"`
	IsExclusive   bool            `json:"isExclusive"`
	State         ResourceState   `json:"state"`
	MemberID      *string         `json:"memberID,omitempty"`
	MembershipID  *string         `json:"membershipID,omitempty"`
	DateStart     *time.Time      `json:"dateStart,omitempty"`
	DateEnd       *time.Time      `json:"dateEnd,omitempty"`
	AuditFields
}

// ResourceFilter narrows inventory listings. Empty fields match everything.
type ResourceFilter struct {
	Kind         ResourceKind
	ResourceType string
	City         string
	State        ResourceState
}

// Matches reports whether r satisfies the filter.
func (f ResourceFilter) Matches(r Resource) bool {
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	if f.ResourceType != "" && r.ResourceType != f.ResourceType {
		return false
	}
	if f.City != "" && r.City != f.City {
		return false
	}
	if f.State != "" && r.State != f.State {
		return false
	}
	return true
}

// IsBound reports whether a membership currently holds the resource.
func (r Resource) IsBound() bool {
	return r.MembershipID != nil
}

// Reserve binds the resource to a membership. Desks and beds become reserved;
// exclusive floors become rented for the membership window.
func (r *Resource) Reserve(memberID, membershipID string, start, end time.Time) error {
	if r.State != ResourceAvailable {
		return fmt.Errorf("%w: %s %s is %s", apperrors.ErrResourceUnavailable, r.Kind, r.ResourceID, r.State)
	}
	if r.Kind == ResourceFloor && !r.IsExclusive {
		return fmt.Errorf("%w: floor %s is not rentable exclusively", apperrors.ErrResourceUnavailable, r.ResourceID)
	}
	r.MemberID = &memberID
	r.MembershipID = &membershipID
	if r.Kind == ResourceFloor {
		r.State = ResourceRented
		r.DateStart = &start
		r.DateEnd = &end
		return nil
	}
	r.State = ResourceReserved
	return nil
}

// Occupy marks a reserved desk or bed as in use. Rented floors stay rented.
func (r *Resource) Occupy() {
	if r.Kind == ResourceFloor {
		return
	}
	r.State = ResourceOccupied
}

// Release returns the resource to the available pool and clears its bindings.
func (r *Resource) Release() {
	r.State = ResourceAvailable
	r.MemberID = nil
	r.MembershipID = nil
	if r.Kind == ResourceFloor {
		r.DateStart = nil
		r.DateEnd = nil
	}
}

// SetMaintenance takes an unbound resource out of the pool.
func (r *Resource) SetMaintenance() error {
	if r.IsBound() || r.State != ResourceAvailable {
		return fmt.Errorf("%w: %s %s is %s", apperrors.ErrInvalidTransition, r.Kind, r.ResourceID, r.State)
	}
	r.State = ResourceMaintenance
	return nil
}

// ReleaseMaintenance puts a resource under maintenance back into the pool.
func (r *Resource) ReleaseMaintenance() error {
	if r.State != ResourceMaintenance {
		return fmt.Errorf("%w: %s %s is not under maintenance", apperrors.ErrInvalidTransition, r.Kind, r.ResourceID)
	}
	r.State = ResourceAvailable
	return nil
}
