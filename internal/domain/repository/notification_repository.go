package repository

import "github.com/tu-usuario/rentpro/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByRecipient(recipientID string, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id, recipientID string) error
}
