package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// NoteRepositoryFacade defines persistence for record notes
type NoteRepositoryFacade interface {
	AddNote(ctx context.Context, note domain.RecordNote) error
	ListNotes(ctx context.Context, subject domain.NoteSubject, recordID string) ([]domain.RecordNote, error)
}
