package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
)

// AccessRequestReaderSvc defines read operations for access requests
type AccessRequestReaderSvc interface {
	GetAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error)
	ListAccessRequests(ctx context.Context, params dto.ListAccessRequestsParams) (*dto.ListAccessRequestsResponse, error)
	ListNotes(ctx context.Context, requestID string) ([]domain.RecordNote, error)
}

// AccessRequestWriterSvc defines creation and edits; both enforce the slot overlap rule
type AccessRequestWriterSvc interface {
	CreateAccessRequest(ctx context.Context, req dto.CreateAccessRequestRequest, userID string) (*domain.AccessRequest, error)
	UpdateAccessRequest(ctx context.Context, requestID string, req dto.UpdateAccessRequestRequest, userID string) (*domain.AccessRequest, error)
}

// AccessRequestWorkflowSvc defines the approval workflow and settlement
type AccessRequestWorkflowSvc interface {
	Submit(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error)
	Approve(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error)
	Reject(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error)
	Cancel(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error)
}

// AccessRequestSvcFacade combines all access-request service interfaces
type AccessRequestSvcFacade interface {
	AccessRequestReaderSvc
	AccessRequestWriterSvc
	AccessRequestWorkflowSvc
}
