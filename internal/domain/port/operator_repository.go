package port

import (
	"context"

	"colorcode-receiver/internal/domain/entity"
)

// OperatorRepository интерфейс хранилища операторов
type OperatorRepository interface {
	// Get возвращает оператора по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.Operator, error)

	// Save сохраняет состояние оператора
	Save(ctx context.Context, operator *entity.Operator) error

	// ListByState возвращает операторов в указанном состоянии
	ListByState(ctx context.Context, state entity.OperatorState) ([]*entity.Operator, error)
}
