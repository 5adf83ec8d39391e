package port

import (
	"context"

	"colorcode-receiver/internal/domain/entity"
)

// Notifier интерфейс уведомления хост-приложения о событиях приёма
type Notifier interface {
	// Notify доставляет событие; ошибки доставки остаются на стороне реализации
	Notify(ctx context.Context, event entity.ReceiveEvent)
}
