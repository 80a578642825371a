package application

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/domain/attachment"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/storage"
	"github.com/linskybing/simtrack/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrAttachmentTooLarge = errors.New("attachment exceeds the size limit")
	ErrEmptyAttachment    = errors.New("attachment is empty")
	ErrStorageUnavailable = errors.New("attachment storage is not configured")
)

type AttachmentService struct {
	Repos *repository.Repos
	Store storage.ObjectStore
}

func NewAttachmentService(repos *repository.Repos, store storage.ObjectStore) *AttachmentService {
	return &AttachmentService{
		Repos: repos,
		Store: store,
	}
}

// ObjectKey is where an attachment's bytes live in the bucket.
func ObjectKey(requestID uuid.UUID, fileName string) string {
	return fmt.Sprintf("requests/%s/%s-%s", requestID, uuid.NewString(), sanitizeFileName(fileName))
}

func (s *AttachmentService) Upload(c *gin.Context, requestID uuid.UUID, fileName, contentType string, r io.Reader, size int64) (*attachment.Attachment, error) {
	if s.Store == nil {
		return nil, ErrStorageUnavailable
	}
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if size <= 0 {
		return nil, ErrEmptyAttachment
	}
	if config.MaxAttachmentSize > 0 && size > config.MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}
	if _, err := s.Repos.Request.GetRequestByID(requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	a := &attachment.Attachment{
		RequestID:    requestID,
		FileName:     path.Base(fileName),
		ObjectKey:    ObjectKey(requestID, fileName),
		ContentType:  contentType,
		Size:         size,
		UploadedByID: uid,
	}
	ctx := requestContext(c)
	if err := s.Store.Put(ctx, a.ObjectKey, contentType, r, size); err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}
	if err := s.Repos.Attachment.CreateAttachment(a); err != nil {
		if derr := s.Store.Delete(ctx, a.ObjectKey); derr != nil {
			log.Printf("[Attachment] failed to remove orphan object %s: %v", a.ObjectKey, derr)
		}
		return nil, err
	}

	utils.LogAuditWithConsole(c, audit.ActionCreate, "attachment", a.ID.String(), nil, a, "", s.Repos.Audit)
	return a, nil
}

func (s *AttachmentService) List(requestID uuid.UUID) ([]attachment.Attachment, error) {
	return s.Repos.Attachment.ListByRequest(requestID)
}

func (s *AttachmentService) Get(id uuid.UUID) (*attachment.Attachment, error) {
	a, err := s.Repos.Attachment.GetAttachmentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Open returns the attachment metadata and a reader over its bytes. The
// caller closes the reader.
func (s *AttachmentService) Open(c *gin.Context, id uuid.UUID) (*attachment.Attachment, io.ReadCloser, error) {
	if s.Store == nil {
		return nil, nil, ErrStorageUnavailable
	}
	a, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.Store.Get(requestContext(c), a.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read attachment: %w", err)
	}
	return a, rc, nil
}

// Delete removes the row first; a leftover object is only logged.
func (s *AttachmentService) Delete(c *gin.Context, id uuid.UUID) error {
	claims, err := utils.GetClaims(c)
	if err != nil {
		return ErrUnauthenticated
	}
	a, err := s.Get(id)
	if err != nil {
		return err
	}
	if a.UploadedByID != claims.UserID && !claims.Role.IsManagerOrAdmin() {
		return ErrForbidden
	}

	if err := s.Repos.Attachment.DeleteAttachment(id); err != nil {
		return err
	}
	if s.Store != nil {
		if err := s.Store.Delete(requestContext(c), a.ObjectKey); err != nil {
			log.Printf("[Attachment] failed to remove object %s: %v", a.ObjectKey, err)
		}
	}

	utils.LogAuditWithConsole(c, audit.ActionDelete, "attachment", a.ID.String(), a, nil, "", s.Repos.Audit)
	return nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
