package application_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/attachment"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return nil
}

func (m *memStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func setupAttachmentMocks(t *testing.T) (*application.AttachmentService, *mock.MockAttachmentRepo, *mock.MockRequestRepo, *memStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })
	silenceAudit(t)

	mockAttachment := mock.NewMockAttachmentRepo(ctrl)
	mockRequest := mock.NewMockRequestRepo(ctrl)
	store := newMemStore()
	repos := &repository.Repos{
		Attachment: mockAttachment,
		Request:    mockRequest,
	}
	return application.NewAttachmentService(repos, store), mockAttachment, mockRequest, store
}

func TestObjectKey(t *testing.T) {
	rid := uuid.New()
	key := application.ObjectKey(rid, `..\..\etc/pass wd.txt`)
	assert.True(t, strings.HasPrefix(key, "requests/"+rid.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "-pass_wd.txt"))
	assert.NotContains(t, strings.TrimPrefix(key, "requests/"+rid.String()+"/"), "/")
}

func TestAttachmentUploadAndOpen(t *testing.T) {
	svc, mockAttachment, mockRequest, store := setupAttachmentMocks(t)
	rid := uuid.New()
	body := "mesh=fine\n"

	mockRequest.EXPECT().GetRequestByID(rid).Return(request.Request{ID: rid}, nil)
	var saved attachment.Attachment
	mockAttachment.EXPECT().CreateAttachment(gomock.Any()).DoAndReturn(func(a *attachment.Attachment) error {
		a.ID = uuid.New()
		saved = *a
		return nil
	})

	c := testContext(3, "req", user.RoleRequester)
	a, err := svc.Upload(c, rid, "input.cfg", "text/plain", strings.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, "input.cfg", a.FileName)
	assert.Equal(t, uint(3), a.UploadedByID)
	assert.Len(t, store.objects, 1)

	mockAttachment.EXPECT().GetAttachmentByID(saved.ID).Return(saved, nil)
	_, rc, err := svc.Open(c, saved.ID)
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, body, string(got))
}

func TestAttachmentUpload_Rejections(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		svc, _, _, _ := setupAttachmentMocks(t)
		c := testContext(3, "req", user.RoleRequester)
		_, err := svc.Upload(c, uuid.New(), "a.txt", "text/plain", strings.NewReader(""), 0)
		assert.ErrorIs(t, err, application.ErrEmptyAttachment)
	})

	t.Run("unknown request", func(t *testing.T) {
		svc, _, mockRequest, _ := setupAttachmentMocks(t)
		rid := uuid.New()
		mockRequest.EXPECT().GetRequestByID(rid).Return(request.Request{}, gorm.ErrRecordNotFound)

		c := testContext(3, "req", user.RoleRequester)
		_, err := svc.Upload(c, rid, "a.txt", "text/plain", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, application.ErrRequestNotFound)
	})

	t.Run("row insert fails removes object", func(t *testing.T) {
		svc, mockAttachment, mockRequest, store := setupAttachmentMocks(t)
		rid := uuid.New()
		mockRequest.EXPECT().GetRequestByID(rid).Return(request.Request{ID: rid}, nil)
		mockAttachment.EXPECT().CreateAttachment(gomock.Any()).Return(errors.New("insert failed"))

		c := testContext(3, "req", user.RoleRequester)
		_, err := svc.Upload(c, rid, "a.txt", "text/plain", strings.NewReader("x"), 1)
		assert.Error(t, err)
		assert.Empty(t, store.objects)
	})

	t.Run("no store", func(t *testing.T) {
		svc := application.NewAttachmentService(&repository.Repos{}, nil)
		c := testContext(3, "req", user.RoleRequester)
		_, err := svc.Upload(c, uuid.New(), "a.txt", "text/plain", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, application.ErrStorageUnavailable)
	})
}

func TestAttachmentDelete(t *testing.T) {
	t.Run("other requester", func(t *testing.T) {
		svc, mockAttachment, _, _ := setupAttachmentMocks(t)
		a := attachment.Attachment{ID: uuid.New(), UploadedByID: 3, ObjectKey: "requests/x/y"}
		mockAttachment.EXPECT().GetAttachmentByID(a.ID).Return(a, nil)

		c := testContext(4, "other", user.RoleRequester)
		assert.ErrorIs(t, svc.Delete(c, a.ID), application.ErrForbidden)
	})

	t.Run("manager", func(t *testing.T) {
		svc, mockAttachment, _, store := setupAttachmentMocks(t)
		a := attachment.Attachment{ID: uuid.New(), UploadedByID: 3, ObjectKey: "requests/x/y"}
		store.objects[a.ObjectKey] = []byte("x")
		mockAttachment.EXPECT().GetAttachmentByID(a.ID).Return(a, nil)
		mockAttachment.EXPECT().DeleteAttachment(a.ID).Return(nil)

		c := testContext(7, "mgr", user.RoleManager)
		require.NoError(t, svc.Delete(c, a.ID))
		assert.Empty(t, store.objects)
	})
}
