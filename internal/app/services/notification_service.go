package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/errors"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 50
	defaultLatest    = 5
	maxLatest        = 20
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db: db,
	}
}

// Notify inserts an inbox entry for a user. The data payload carries the
// identifiers the client needs for deep-linking.
func (s *NotificationService) Notify(userID uuid.UUID, notificationType models.NotificationType, title, message string, data map[string]interface{}) error {
	var dataJSON *string
	if data != nil {
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
		strJSON := string(jsonBytes)
		dataJSON = &strJSON
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    dataJSON,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create notification")
	}
	return nil
}

// List returns one page of the user's notifications, newest first, with
// pagination metadata. Limit is clamped to 50.
func (s *NotificationService) List(userID uuid.UUID, page, limit int) ([]models.Notification, *models.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := (page - 1) * limit

	var total int64
	if err := s.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, nil, errors.NewInternalServerError(err, "Failed to fetch notifications")
	}

	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		return nil, nil, errors.NewInternalServerError(err, "Failed to fetch notifications")
	}

	pagination := models.NewPagination(page, limit, total)
	return notifications, &pagination, nil
}

// Latest returns the newest notifications for a user. Limit is clamped to
// 1..20 and defaults to 5. A store failure degrades to an empty list so the
// client widget never breaks.
func (s *NotificationService) Latest(userID uuid.UUID, limit int) []models.Notification {
	if limit <= 0 {
		limit = defaultLatest
	}
	if limit > maxLatest {
		limit = maxLatest
	}

	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		logrus.Errorf("latest notifications fetch failed for %s: %v", userID, err)
		return []models.Notification{}
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications
}

// UnreadCount returns the user's unread count, degrading to 0 on a store
// failure rather than surfacing an error.
func (s *NotificationService) UnreadCount(userID uuid.UUID) int64 {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		logrus.Errorf("unread notification count failed for %s: %v", userID, err)
		return 0
	}
	return count
}

// MarkRead flips the read flag on one of the user's notifications. The
// ownership predicate means a foreign notification matches zero rows and the
// call is a silent no-op.
func (s *NotificationService) MarkRead(userID uuid.UUID, notificationID string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return errors.NewBadRequestError("Invalid notification ID format")
	}

	if err := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to mark notification as read")
	}
	return nil
}

// Delete removes one of the user's notifications, with the same ownership
// scoping as MarkRead.
func (s *NotificationService) Delete(userID uuid.UUID, notificationID string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return errors.NewBadRequestError("Invalid notification ID format")
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{}).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete notification")
	}
	return nil
}
