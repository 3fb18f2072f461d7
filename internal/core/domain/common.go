package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// SystemUserID is recorded in audit fields for changes made by background jobs.
const SystemUserID = "system"

// SpaceType separates coworking (desks) from coliving (beds).
type SpaceType string

const (
	SpaceCoworking SpaceType = "coworking"
	SpaceColiving  SpaceType = "coliving"
)

// Valid reports whether s is a known space type.
func (s SpaceType) Valid() bool {
	return s == SpaceCoworking || s == SpaceColiving
}

// DateOf truncates t to its calendar day. The result is midnight UTC of t's local date,
// so dates compare equal regardless of the zone the clock reports in.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsFutureDay reports whether day falls on a calendar day after now's.
func IsFutureDay(day, now time.Time) bool {
	return DateOf(day).After(DateOf(now))
}

// AddYears returns the same calendar day n years later.
func AddYears(date time.Time, n int) time.Time {
	return DateOf(date).AddDate(n, 0, 0)
}
