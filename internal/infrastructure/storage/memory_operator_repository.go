package storage

import (
	"context"
	"sort"
	"sync"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// MemoryOperatorRepository in-memory хранилище операторов
type MemoryOperatorRepository struct {
	mu        sync.RWMutex
	operators map[int64]*entity.Operator
}

// NewMemoryOperatorRepository создаёт новое in-memory хранилище
func NewMemoryOperatorRepository() *MemoryOperatorRepository {
	return &MemoryOperatorRepository{
		operators: make(map[int64]*entity.Operator),
	}
}

// Get возвращает оператора по ID, создаёт нового если не найден
func (r *MemoryOperatorRepository) Get(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	r.mu.RLock()
	operator, exists := r.operators[userID]
	r.mu.RUnlock()

	if exists {
		copied := *operator
		return &copied, nil
	}

	// Создаём нового оператора
	newOperator := entity.NewOperator(userID, chatID)

	r.mu.Lock()
	if existing, ok := r.operators[userID]; ok {
		newOperator = existing
	} else {
		r.operators[userID] = newOperator
	}
	copied := *newOperator
	r.mu.Unlock()

	return &copied, nil
}

// Save сохраняет состояние оператора
func (r *MemoryOperatorRepository) Save(ctx context.Context, operator *entity.Operator) error {
	copied := *operator

	r.mu.Lock()
	r.operators[operator.ID] = &copied
	r.mu.Unlock()

	return nil
}

// ListByState возвращает операторов в указанном состоянии, упорядоченных по ID
func (r *MemoryOperatorRepository) ListByState(ctx context.Context, state entity.OperatorState) ([]*entity.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Operator, 0)
	for _, operator := range r.operators {
		if operator.State == state {
			copied := *operator
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Проверка реализации интерфейса
var _ port.OperatorRepository = (*MemoryOperatorRepository)(nil)
