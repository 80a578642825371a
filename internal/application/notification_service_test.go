package application_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotificationHub_SubscribePublish(t *testing.T) {
	hub := application.NewNotificationHub()

	ch, cancel := hub.Subscribe(5)
	assert.Equal(t, 1, hub.Subscribers(5))

	hub.Publish(&notification.Notification{UserID: 6, Message: "not yours"})
	hub.Publish(&notification.Notification{UserID: 5, Message: "hello"})

	got := <-ch
	assert.Equal(t, "hello", got.Message)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected notification %q", extra.Message)
	default:
	}

	cancel()
	assert.Equal(t, 0, hub.Subscribers(5))
	_, open := <-ch
	assert.False(t, open)
}

func TestNotificationHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := application.NewNotificationHub()
	_, cancel := hub.Subscribe(1)
	defer cancel()

	for i := 0; i < 100; i++ {
		hub.Publish(&notification.Notification{UserID: 1})
	}
}

func TestNotificationService_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockRepo := mock.NewMockNotificationRepo(ctrl)
	hub := application.NewNotificationHub()
	svc := application.NewNotificationService(&repository.Repos{Notification: mockRepo}, hub)

	ch, cancel := hub.Subscribe(2)
	defer cancel()

	var stored []uint
	mockRepo.EXPECT().CreateNotification(gomock.Any()).DoAndReturn(func(n *notification.Notification) error {
		stored = append(stored, n.UserID)
		if n.UserID == 4 {
			return errors.New("insert failed")
		}
		return nil
	}).Times(3)

	svc.Notify([]uint{2, 0, 3, 2, 4}, notification.TypeAssigned, "assigned", map[string]int{"n": 1})

	assert.Equal(t, []uint{2, 3, 4}, stored)
	got := <-ch
	assert.Equal(t, notification.TypeAssigned, got.Type)
	assert.JSONEq(t, `{"n":1}`, string(got.Payload))
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockRepo := mock.NewMockNotificationRepo(ctrl)
	svc := application.NewNotificationService(&repository.Repos{Notification: mockRepo}, nil)

	mockRepo.EXPECT().MarkRead(uint(10), uint(2)).Return(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.MarkRead(10, 2), application.ErrNotificationNotFound)

	mockRepo.EXPECT().ListByUser(uint(2), true, 50).Return([]notification.Notification{{ID: 1}}, nil)
	list, err := svc.List(2, true, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
