package notification

import (
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// NotificationUseCase lectura de notificaciones del usuario autenticado.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List devuelve las notificaciones del destinatario, más recientes primero.
func (uc *NotificationUseCase) List(recipientID string, page dto.PageRequest) ([]*entity.Notification, error) {
	page.DefaultPage()
	return uc.repo.ListByRecipient(recipientID, page.Limit, page.Offset)
}

// MarkRead marca una notificación como leída; el filtro por destinatario evita
// marcar notificaciones ajenas.
func (uc *NotificationUseCase) MarkRead(id, recipientID string) error {
	return uc.repo.MarkRead(id, recipientID)
}
