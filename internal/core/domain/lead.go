package domain

import "time"

// Lead is a prospective member captured by the public intake form.
type Lead struct {
	LeadID                string     `json:"leadID"`
	ContactName           string     `json:"contactName"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone,omitempty"`
	SpaceType             SpaceType  `json:"spaceType"`
	PreferredResourceType string     `json:"preferredResourceType,omitempty"`
	City                  string     `json:"city,omitempty"`
	RequestedStart        *time.Time `json:"requestedStart,omitempty"`
	Requirements          string     `json:"requirements,omitempty"`
	IsCoworkLead          bool       `json:"isCoworkLead"`
	MemberID              *string    `json:"memberID,omitempty"`
	MembershipID          *string    `json:"membershipID,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}
