package domain

import (
	"fmt"
	"time"
)

// NoteSubject names the kind of record a note is attached to.
type NoteSubject string

const (
	NoteOnMembership    NoteSubject = "membership"
	NoteOnAccessRequest NoteSubject = "access_request"
)

// RecordNote is an annotation on a membership or access request.
type RecordNote struct {
	NoteID    string      `json:"noteID"`
	Subject   NoteSubject `json:"subject"`
	RecordID  string      `json:"recordID"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"createdAt"`
	CreatedBy string      `json:"createdBy"`
}

// SequenceCode selects the reference sequence of a record type.
type SequenceCode string

const (
	SequenceMembership    SequenceCode = "membership"
	SequenceAccessRequest SequenceCode = "access_request"
	SequenceDeposit       SequenceCode = "security_deposit"
)

// Notification template identifiers.
const (
	TemplateAccessRequestSubmitted = "access_request.submitted"
	TemplateAccessRequestApproved  = "access_request.approved"
	TemplateAccessRequestRejected  = "access_request.rejected"
	TemplateMembershipReminder     = "membership.renewal_reminder"
)

var sequencePrefixes = map[SequenceCode]string{
	SequenceMembership:    "MEM",
	SequenceAccessRequest: "REQ",
	SequenceDeposit:       "DEP",
}

// FormatReference renders the n-th reference of a sequence, e.g. MEM-000042.
func (c SequenceCode) FormatReference(n int64) string {
	prefix, ok := sequencePrefixes[c]
	if !ok {
		prefix = "REF"
	}
	return fmt.Sprintf("%s-%06d", prefix, n)
}
