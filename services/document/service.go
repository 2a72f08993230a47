package document

import (
	"context"
	"fmt"
	"time"

	documentRepo "siteworks/database/repository/document"
	"siteworks/models"
	"siteworks/services/storage"
	"siteworks/utils"

	"go.uber.org/zap"
)

const secureURLLifetime = 15 * time.Minute

// DocumentService manages project files: drawings, permits, contracts.
// Binaries live in Cloudinary; metadata lives in Mongo.
type DocumentService interface {
	Upload(ctx context.Context, req UploadRequest) (*models.Document, error)
	GetWithURL(ctx context.Context, id string) (*models.Document, string, error)
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)
}

// UploadRequest describes a file already written to a local temp path by
// the handler's multipart parsing.
type UploadRequest struct {
	ProjectID     string
	Name          string
	LocalPath     string
	ResourceType  string
	SizeBytes     int64
	UploadedBy    string
	Private       bool
	EncryptionKey string
}

// DefaultDocumentService is the production implementation.
type DefaultDocumentService struct {
	Repo    documentRepo.DocumentRepository
	Storage storage.StorageService
}

// Upload pushes the binary to storage and records the metadata.
func (s *DefaultDocumentService) Upload(ctx context.Context, req UploadRequest) (*models.Document, error) {
	logger := utils.GetLogger()

	folder := fmt.Sprintf("projects/%s/documents", req.ProjectID)
	var (
		publicID string
		err      error
	)
	if req.Private {
		publicID, err = s.Storage.UploadPrivateFile(ctx, req.LocalPath, folder, req.EncryptionKey)
	} else {
		publicID, err = s.Storage.UploadFile(ctx, req.LocalPath, folder)
	}
	if err != nil {
		return nil, fmt.Errorf("document upload: %w", err)
	}

	resourceType := req.ResourceType
	if resourceType == "" {
		resourceType = "raw"
	}

	doc, err := s.Repo.Create(ctx, models.Document{
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: resourceType,
		SizeBytes:    req.SizeBytes,
		UploadedBy:   req.UploadedBy,
	})
	if err != nil {
		// The binary is already in storage; clean it up rather than leak it.
		if delErr := s.Storage.DeleteFile(ctx, publicID); delErr != nil {
			logger.Error("document upload: failed to clean up orphaned binary",
				zap.String("publicId", publicID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("document upload: %w", err)
	}

	logger.Info("Document uploaded",
		zap.String("documentId", doc.ID),
		zap.String("projectId", doc.ProjectID),
		zap.String("publicId", doc.PublicID))
	return doc, nil
}

// GetWithURL returns the metadata plus a short-lived signed download URL.
func (s *DefaultDocumentService) GetWithURL(ctx context.Context, id string) (*models.Document, string, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	url, err := s.Storage.GetSecureDownloadURL(ctx, doc.ResourceType, doc.PublicID, secureURLLifetime)
	if err != nil {
		return nil, "", err
	}
	return doc, url, nil
}

// Delete removes both the binary and the metadata record.
func (s *DefaultDocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Storage.DeleteFile(ctx, doc.PublicID); err != nil {
		return err
	}
	return s.Repo.DeleteByID(ctx, id)
}

// ListByProject returns the project's document metadata.
func (s *DefaultDocumentService) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	return s.Repo.ListByProject(ctx, projectID)
}
