package app

import (
	"context"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

type OperatorService struct {
	repo port.OperatorRepository
}

func NewOperatorService(repo port.OperatorRepository) *OperatorService {
	return &OperatorService{repo: repo}
}

func (s *OperatorService) Get(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *OperatorService) SetState(ctx context.Context, userID, chatID int64, state entity.OperatorState) (*entity.Operator, error) {
	operator, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	operator.SetState(state)
	if err := s.repo.Save(ctx, operator); err != nil {
		return nil, err
	}

	return operator, nil
}

func (s *OperatorService) BeginReceive(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.SetState(ctx, userID, chatID, entity.StateReceiving)
}

func (s *OperatorService) AwaitSequence(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingSequence)
}

func (s *OperatorService) Cancel(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// Receiving возвращает операторов, ожидающих результата приёма
func (s *OperatorService) Receiving(ctx context.Context) ([]*entity.Operator, error) {
	return s.repo.ListByState(ctx, entity.StateReceiving)
}

// FinishReceive возвращает всех ожидающих операторов в главное меню
func (s *OperatorService) FinishReceive(ctx context.Context) ([]*entity.Operator, error) {
	operators, err := s.Receiving(ctx)
	if err != nil {
		return nil, err
	}

	for _, operator := range operators {
		operator.SetState(entity.StateMainMenu)
		if err := s.repo.Save(ctx, operator); err != nil {
			return nil, err
		}
	}
	return operators, nil
}
