package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/infrastructure/storage"
)

func TestOperatorService_BeginReceiveAndCancel(t *testing.T) {
	svc := NewOperatorService(storage.NewMemoryOperatorRepository())
	ctx := context.Background()

	operator, err := svc.BeginReceive(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateReceiving, operator.State)

	operator, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, operator.State)
}

func TestOperatorService_AwaitSequence(t *testing.T) {
	svc := NewOperatorService(storage.NewMemoryOperatorRepository())

	operator, err := svc.AwaitSequence(context.Background(), 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSequence, operator.State)
}

func TestOperatorService_FinishReceive(t *testing.T) {
	svc := NewOperatorService(storage.NewMemoryOperatorRepository())
	ctx := context.Background()

	_, err := svc.BeginReceive(ctx, 3, 30)
	require.NoError(t, err)
	_, err = svc.BeginReceive(ctx, 1, 10)
	require.NoError(t, err)
	_, err = svc.AwaitSequence(ctx, 2, 20)
	require.NoError(t, err)

	finished, err := svc.FinishReceive(ctx)
	require.NoError(t, err)
	require.Len(t, finished, 2)
	require.Equal(t, int64(1), finished[0].ID)
	require.Equal(t, int64(3), finished[1].ID)

	receiving, err := svc.Receiving(ctx)
	require.NoError(t, err)
	require.Empty(t, receiving)

	operator, err := svc.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSequence, operator.State)
}
