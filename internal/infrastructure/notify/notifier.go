package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
	"github.com/tu-usuario/rentpro/pkg/logger"
)

var _ ports.Notifier = (*DBNotifier)(nil)

// DBNotifier persiste notificaciones en la tabla notifications. Es el sumidero
// no bloqueante del sistema: un fallo de inserción se loguea y se descarta,
// nunca afecta la operación que disparó el aviso.
type DBNotifier struct {
	repo repository.NotificationRepository
	log  *logger.Logger
}

// New construye el notificador.
func New(repo repository.NotificationRepository, log *logger.Logger) *DBNotifier {
	return &DBNotifier{repo: repo, log: log}
}

// Notify registra la notificación. No devuelve error: el canal es best-effort.
func (n *DBNotifier) Notify(ctx context.Context, recipientID, notificationType, title, message, relatedID string) {
	if recipientID == "" {
		return
	}
	now := time.Now()
	err := n.repo.Create(&entity.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		n.log.Error().Err(err).
			Str("recipient_id", recipientID).
			Str("type", notificationType).
			Msg("no se pudo registrar la notificación")
	}
}
