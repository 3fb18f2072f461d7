package mapping

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/models"
)

// ToModelDeposit converts a domain SecurityDeposit to a model SecurityDeposit
func ToModelDeposit(d domain.SecurityDeposit) models.SecurityDeposit {
	return models.SecurityDeposit{
		DepositID:      d.DepositID,
		Reference:      d.Reference,
		MembershipID:   d.MembershipID,
		MemberID:       d.MemberID,
		Amount:         d.Amount,
		State:          string(d.State),
		DatePaid:       d.DatePaid,
		DateReturned:   d.DateReturned,
		WithholdReason: d.WithholdReason,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeposit converts a model SecurityDeposit to a domain SecurityDeposit
func ToDomainDeposit(m models.SecurityDeposit) domain.SecurityDeposit {
	return domain.SecurityDeposit{
		DepositID:      m.DepositID,
		Reference:      m.Reference,
		MembershipID:   m.MembershipID,
		MemberID:       m.MemberID,
		Amount:         m.Amount,
		State:          domain.DepositState(m.State),
		DatePaid:       m.DatePaid,
		DateReturned:   m.DateReturned,
		WithholdReason: m.WithholdReason,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLead converts a domain Lead to a model Lead
func ToModelLead(d domain.Lead) models.Lead {
	return models.Lead{
		LeadID:                d.LeadID,
		ContactName:           d.ContactName,
		Email:                 d.Email,
		Phone:                 d.Phone,
		SpaceType:             string(d.SpaceType),
		PreferredResourceType: d.PreferredResourceType,
		City:                  d.City,
		RequestedStart:        d.RequestedStart,
		Requirements:          d.Requirements,
		IsCoworkLead:          d.IsCoworkLead,
		MemberID:              d.MemberID,
		MembershipID:          d.MembershipID,
		CreatedAt:             d.CreatedAt,
	}
}

// ToDomainLead converts a model Lead to a domain Lead
func ToDomainLead(m models.Lead) domain.Lead {
	return domain.Lead{
		LeadID:                m.LeadID,
		ContactName:           m.ContactName,
		Email:                 m.Email,
		Phone:                 m.Phone,
		SpaceType:             domain.SpaceType(m.SpaceType),
		PreferredResourceType: m.PreferredResourceType,
		City:                  m.City,
		RequestedStart:        m.RequestedStart,
		Requirements:          m.Requirements,
		IsCoworkLead:          m.IsCoworkLead,
		MemberID:              m.MemberID,
		MembershipID:          m.MembershipID,
		CreatedAt:             m.CreatedAt,
	}
}

// ToModelRating converts a domain MembershipRating to a model MembershipRating
func ToModelRating(d domain.MembershipRating) models.MembershipRating {
	return models.MembershipRating{
		RatingID:     d.RatingID,
		MembershipID: d.MembershipID,
		MemberID:     d.MemberID,
		SpaceType:    string(d.SpaceType),
		Score:        d.Score,
		Feedback:     d.Feedback,
		RatedOn:      d.RatedOn,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRating converts a model MembershipRating to a domain MembershipRating
func ToDomainRating(m models.MembershipRating) domain.MembershipRating {
	return domain.MembershipRating{
		RatingID:     m.RatingID,
		MembershipID: m.MembershipID,
		MemberID:     m.MemberID,
		SpaceType:    domain.SpaceType(m.SpaceType),
		Score:        m.Score,
		Feedback:     m.Feedback,
		RatedOn:      m.RatedOn,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelNote converts a domain RecordNote to a model RecordNote
func ToModelNote(d domain.RecordNote) models.RecordNote {
	return models.RecordNote{
		NoteID:    d.NoteID,
		Subject:   string(d.Subject),
		RecordID:  d.RecordID,
		Body:      d.Body,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainNote converts a model RecordNote to a domain RecordNote
func ToDomainNote(m models.RecordNote) domain.RecordNote {
	return domain.RecordNote{
		NoteID:    m.NoteID,
		Subject:   domain.NoteSubject(m.Subject),
		RecordID:  m.RecordID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
