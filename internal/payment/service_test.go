package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imobo/imobo/internal/payment"
)

func TestService_MarkPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	svc := payment.NewService(repo)

	id := uuid.New()
	paidAt := time.Date(2024, 3, 12, 14, 30, 0, 0, time.UTC)

	repo.EXPECT().MarkPaid(gomock.Any(), id, paidAt).Return(nil)

	assert.NoError(t, svc.MarkPaid(context.Background(), id, paidAt))
}

func TestService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	svc := payment.NewService(repo)

	id := uuid.New()
	repo.EXPECT().UpdateStatus(gomock.Any(), id, payment.StatusCancelled).Return(nil)

	assert.NoError(t, svc.Cancel(context.Background(), id))
}

func TestService_ListByContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	svc := payment.NewService(repo)

	contractID := uuid.New()

	repo.EXPECT().
		ListPayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
			require.NotNil(t, filter.ContractID)
			assert.Equal(t, contractID, *filter.ContractID)
			return []*payment.Payment{{ID: uuid.New(), ContractID: contractID}}, nil
		})

	got, err := svc.ListByContract(context.Background(), contractID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_DeleteByContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	svc := payment.NewService(repo)

	contractID := uuid.New()
	repo.EXPECT().DeleteByContract(gomock.Any(), contractID).Return(int64(12), nil)

	n, err := svc.DeleteByContract(context.Background(), contractID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}
