package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "finfacil/internal/errors"
	"finfacil/internal/events"
	"finfacil/internal/logger"
	"finfacil/internal/models"
	"finfacil/internal/pagination"
	"finfacil/internal/repository"
	"finfacil/internal/uuid"
)

// notificationService handles the notification inbox.
type notificationService struct {
	mu        sync.Mutex
	repo      repository.Repository[models.Notification]
	publisher events.Publisher
	now       func() time.Time
	log       *zap.SugaredLogger
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(repo repository.Repository[models.Notification], publisher events.Publisher) NotificationServicer {
	if publisher == nil {
		publisher = events.Discard
	}
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
		log:       logger.Named("notifications"),
	}
}

// Create stores a new unread notification and announces it.
func (s *notificationService) Create(ctx context.Context, req NotificationRequest) (*models.Notification, error) {
	if !req.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid notification type")
	}
	if req.Priority == "" {
		req.Priority = models.NotificationPriorityMedium
	}
	if !req.Priority.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid notification priority")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Notification title is required")
	}

	n := models.Notification{
		ID:        uuid.New(),
		Type:      req.Type,
		Priority:  req.Priority,
		Title:     strings.TrimSpace(req.Title),
		Message:   req.Message,
		CreatedAt: s.now(),
		ActionURL: req.ActionURL,
		Metadata:  req.Metadata,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Put(ctx, n); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Debugw("notification created", "notification_id", n.ID, "type", n.Type, "priority", n.Priority)

	published := n
	s.publisher.Publish(events.Event{Type: events.NotificationCreated, Notification: &published})
	return &n, nil
}

// Notify implements Notifier.
func (s *notificationService) Notify(ctx context.Context, req NotificationRequest) error {
	_, err := s.Create(ctx, req)
	return err
}

// GetNotifications returns a page of notifications, newest first.
func (s *notificationService) GetNotifications(page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Notification], error) {
	var list []models.Notification
	for _, n := range s.sorted() {
		if unreadOnly && n.Read {
			continue
		}
		list = append(list, n)
	}

	result := pagination.Slice(list, page)
	return &result, nil
}

// GetNotificationByID returns a single notification.
func (s *notificationService) GetNotificationByID(id string) (*models.Notification, error) {
	n, ok := s.repo.Get(id)
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	return &n, nil
}

// GetStats counts notifications by read state, type and priority.
func (s *notificationService) GetStats() NotificationStats {
	stats := NotificationStats{
		ByType:     make(map[models.NotificationType]int, len(models.NotificationTypes)),
		ByPriority: make(map[models.NotificationPriority]int, len(models.NotificationPriorities)),
	}
	for _, t := range models.NotificationTypes {
		stats.ByType[t] = 0
	}
	for _, p := range models.NotificationPriorities {
		stats.ByPriority[p] = 0
	}

	for _, n := range s.repo.List() {
		stats.Total++
		if !n.Read {
			stats.Unread++
		}
		stats.ByType[n.Type]++
		stats.ByPriority[n.Priority]++
	}
	return stats
}

// MarkAsRead flags one notification as read.
func (s *notificationService) MarkAsRead(ctx context.Context, id string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.repo.Get(id)
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	if n.Read {
		return &n, nil
	}

	n.Read = true
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &n, nil
}

// MarkAllAsRead flags every unread notification and returns how many changed.
func (s *notificationService) MarkAllAsRead(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, n := range s.repo.List() {
		if n.Read {
			continue
		}
		n.Read = true
		if err := s.repo.Put(ctx, n); err != nil {
			return changed, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		changed++
	}
	return changed, nil
}

// DeleteNotification removes a single notification.
func (s *notificationService) DeleteNotification(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !deleted {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// DeleteAll empties the inbox and returns how many notifications were removed.
func (s *notificationService) DeleteAll(ctx context.Context) (int, error) {
	return s.deleteWhere(ctx, func(models.Notification) bool { return true })
}

// DeleteRead removes read notifications and returns how many were removed.
func (s *notificationService) DeleteRead(ctx context.Context) (int, error) {
	return s.deleteWhere(ctx, func(n models.Notification) bool { return n.Read })
}

func (s *notificationService) deleteWhere(ctx context.Context, match func(models.Notification) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, n := range s.repo.List() {
		if !match(n) {
			continue
		}
		if _, err := s.repo.Delete(ctx, n.ID); err != nil {
			return removed, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		removed++
	}
	return removed, nil
}

// sorted returns every notification, newest first.
func (s *notificationService) sorted() []models.Notification {
	list := s.repo.List()
	slices.SortStableFunc(list, func(a, b models.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return list
}
