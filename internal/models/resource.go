package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resource is the resources row shared by desks, beds and floors.
type Resource struct {
	ResourceID    string          `db:"resource_id"`
	Kind          string          `db:"kind"`
	Name          string          `db:"name"`
	Code          string          `db:"code"`
	ResourceType  string          `db:"resource_type"`
	FloorID       *string         `db:"floor_id"` // Nullable
	Building      string          `db:"building"`
	Address       string          `db:"address"`
	City          string          `db:"city"`
	RoomNumber    string          `db:"room_number"`
	Capacity      int             `db:"capacity"`
	PricePerHour  decimal.Decimal `db:"price_per_hour"`
	PricePerDay   decimal.Decimal `db:"price_per_day"`
	PricePerMonth decimal.Decimal `db:"price_per_month"`
	IsExclusive   bool            `db:"is_exclusive"`
	State         string          `db:"state"`
	MemberID      *string         `db:"member_id"`     // Nullable
	MembershipID  *string         `db:"membership_id"` // Nullable
	DateStart     *time.Time      `db:"date_start"`    // Floors only
	DateEnd       *time.Time      `db:"date_end"`      // Floors only
	AuditFields
}
