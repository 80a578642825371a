package application

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/internal/repository"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationHub fans notifications out to the live connections of a user.
// Slow subscribers miss messages rather than block the publisher.
type NotificationHub struct {
	mu    sync.RWMutex
	chans map[uint][]chan *notification.Notification
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		chans: make(map[uint][]chan *notification.Notification),
	}
}

// Subscribe registers a channel for userID. The returned func removes and
// closes it and must be called exactly once.
func (h *NotificationHub) Subscribe(userID uint) (<-chan *notification.Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *notification.Notification, 16)
	h.chans[userID] = append(h.chans[userID], ch)

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		subs := h.chans[userID]
		for i, c := range subs {
			if c == ch {
				h.chans[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
		if len(h.chans[userID]) == 0 {
			delete(h.chans, userID)
		}
	}
}

func (h *NotificationHub) Publish(n *notification.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.chans[n.UserID] {
		select {
		case ch <- n:
		default:
		}
	}
}

// Subscribers returns the number of live channels for userID.
func (h *NotificationHub) Subscribers(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.chans[userID])
}

type NotificationService struct {
	Repos *repository.Repos
	Hub   *NotificationHub
}

func NewNotificationService(repos *repository.Repos, hub *NotificationHub) *NotificationService {
	return &NotificationService{
		Repos: repos,
		Hub:   hub,
	}
}

// Notify persists a notification for each distinct non-zero recipient and
// pushes it to their open connections. Failures are logged, never returned.
func (s *NotificationService) Notify(recipients []uint, typ notification.Type, message string, payload any) {
	var raw []byte
	if payload != nil {
		var err error
		if raw, err = json.Marshal(payload); err != nil {
			log.Printf("[Notify] marshal payload error: %v", err)
		}
	}

	seen := make(map[uint]bool, len(recipients))
	for _, uid := range recipients {
		if uid == 0 || seen[uid] {
			continue
		}
		seen[uid] = true

		n := &notification.Notification{
			UserID:  uid,
			Type:    typ,
			Message: message,
			Payload: raw,
		}
		if err := s.Repos.Notification.CreateNotification(n); err != nil {
			log.Printf("[Notify] failed to store notification for user %d: %v", uid, err)
			continue
		}
		if s.Hub != nil {
			s.Hub.Publish(n)
		}
	}
}

func (s *NotificationService) List(userID uint, unreadOnly bool, limit int) ([]notification.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repos.Notification.ListByUser(userID, unreadOnly, limit)
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	err := s.Repos.Notification.MarkRead(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	return s.Repos.Notification.MarkAllRead(userID)
}
