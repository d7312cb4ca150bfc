// service/document_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilsag/hrbridge/cache"
	"github.com/nikhilsag/hrbridge/client"
	"github.com/nikhilsag/hrbridge/confirm"
	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/policy"
	"github.com/nikhilsag/hrbridge/util"
)

type IDocumentService interface {
	ListDocuments(ctx context.Context, filter model.DocumentFilter) ([]model.Document, error)
	UploadDocument(ctx context.Context, payload model.UploadDocumentPayload) (*model.Document, error)
	UploadDocuments(ctx context.Context, payloads []model.UploadDocumentPayload) ([]model.Document, error)
	ArchiveDocument(ctx context.Context, id int64) (*model.Document, error)
	DeleteDocument(ctx context.Context, id int64, confirmationToken string) (*model.OperationPreview, error)
}

type DocumentService struct {
	apiClient     *client.Client
	cache         *cache.Cache
	confirmations *confirm.Manager
	validation    *util.ValidationUtil
	eventBus      *util.EventBus
}

func NewDocumentService(
	apiClient *client.Client,
	store *cache.Cache,
	confirmations *confirm.Manager,
	validation *util.ValidationUtil,
	eventBus *util.EventBus,
) *DocumentService {
	return &DocumentService{
		apiClient:     apiClient,
		cache:         store,
		confirmations: confirmations,
		validation:    validation,
		eventBus:      eventBus,
	}
}

var _ IDocumentService = &DocumentService{}

func (s *DocumentService) ListDocuments(ctx context.Context, filter model.DocumentFilter) ([]model.Document, error) {
	key := cache.Key("documents", filter.Params())
	return cache.Cached(s.cache, key, cache.TTLFor("documents"), func() ([]model.Document, error) {
		return s.apiClient.ListDocuments(ctx, filter)
	})
}

func (s *DocumentService) UploadDocument(ctx context.Context, payload model.UploadDocumentPayload) (*model.Document, error) {
	if err := s.validation.ValidateUploadDocument(payload); err != nil {
		return nil, apierrors.NewPayloadValidationError(err.Error())
	}

	document, err := s.apiClient.UploadDocument(ctx, payload, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("documents")
	s.publish(ctx, "upload_document", document.ID, false, map[string]any{
		"employee_id": payload.EmployeeID,
		"filename":    payload.Filename,
	})
	return document, nil
}

// UploadDocuments uploads a bounded batch. Every payload is validated
// before the first upload so a bad entry cannot leave a partial batch
// behind for an avoidable reason.
func (s *DocumentService) UploadDocuments(ctx context.Context, payloads []model.UploadDocumentPayload) ([]model.Document, error) {
	pol := policy.Lookup("upload_document")
	if len(payloads) == 0 {
		return nil, apierrors.NewPayloadValidationError("batch cannot be empty")
	}
	if pol.MaxBatchSize > 0 && len(payloads) > pol.MaxBatchSize {
		return nil, apierrors.NewPayloadValidationError(
			fmt.Sprintf("batch of %d exceeds the limit of %d documents", len(payloads), pol.MaxBatchSize))
	}
	for i, payload := range payloads {
		if err := s.validation.ValidateUploadDocument(payload); err != nil {
			return nil, apierrors.NewPayloadValidationError(fmt.Sprintf("document %d: %v", i+1, err))
		}
	}

	documents := make([]model.Document, 0, len(payloads))
	for _, payload := range payloads {
		document, err := s.apiClient.UploadDocument(ctx, payload, uuid.NewString())
		if err != nil {
			// Uploads already made stand; the caller gets the error and
			// can retry the remainder.
			return documents, err
		}
		documents = append(documents, *document)
	}

	s.cache.InvalidatePrefix("documents")
	for _, document := range documents {
		s.publish(ctx, "upload_document", document.ID, false, map[string]any{
			"employee_id": document.EmployeeID,
			"filename":    document.Filename,
		})
	}
	return documents, nil
}

func (s *DocumentService) ArchiveDocument(ctx context.Context, id int64) (*model.Document, error) {
	document, err := s.apiClient.ArchiveDocument(ctx, id, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("documents")
	s.publish(ctx, "archive_document", id, false, nil)
	return document, nil
}

// DeleteDocument is confirmation-gated: unlike archiving, deletion destroys
// the stored file upstream.
func (s *DocumentService) DeleteDocument(ctx context.Context, id int64, confirmationToken string) (*model.OperationPreview, error) {
	pol := policy.Lookup("delete_document")
	if pol.RequiresConfirmation && confirmationToken == "" {
		_, preview := s.confirmations.RequestConfirmation(
			"delete_document", "document", &id, "",
			nil, nil, []string{pol.ImpactDescription})
		return &preview, nil
	}

	pending, err := s.confirmations.Confirm(confirmationToken)
	if err != nil {
		return nil, err
	}
	if pending.Operation != "delete_document" || pending.Preview.EntityID == nil || *pending.Preview.EntityID != id {
		return nil, apierrors.NewConfirmationExpiredError(confirmationToken)
	}

	if err := s.apiClient.DeleteDocument(ctx, id); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("documents")
	s.publish(ctx, "delete_document", id, true, nil)
	return nil, nil
}

func (s *DocumentService) publish(ctx context.Context, operation string, entityID int64, confirmed bool, payload map[string]any) {
	s.eventBus.Publish(ctx, operation, model.OperationEvent{
		Operation:  operation,
		EntityType: "document",
		EntityID:   entityID,
		Confirmed:  confirmed,
		Payload:    payload,
		Timestamp:  time.Now(),
	})
}
