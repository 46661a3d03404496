package entity

import "time"

// Tipos de notificación.
const (
	NotificationPaymentDue        = "payment_due"
	NotificationPaymentReceived   = "payment_received"
	NotificationLeaseCreated      = "lease_created"
	NotificationLeaseUpdate       = "lease_update"
	NotificationLeaseTerminated   = "lease_terminated"
	NotificationMaintenanceUpdate = "maintenance_update"
	NotificationSystem            = "system"
)

// Notification aviso dirigido a un usuario. El canal de notificación es un
// efecto secundario no bloqueante: su fallo nunca revierte la transacción de
// negocio que lo disparó.
type Notification struct {
	ID          string
	RecipientID string // usuario destinatario
	Type        string // ver constantes Notification*
	Title       string
	Message     string
	RelatedID   string // ID de la entidad relacionada (factura, contrato...)
	IsRead      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
