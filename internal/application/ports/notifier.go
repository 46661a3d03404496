package ports

import "context"

// Notifier define el puerto de salida hacia el canal de notificaciones.
// Es fire-and-forget para el núcleo: un error del canal se loguea y no
// revierte la transacción de negocio que lo disparó.
type Notifier interface {
	Notify(ctx context.Context, recipientID, notificationType, title, message, relatedID string)
}
