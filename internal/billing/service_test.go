package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imobo/imobo/internal/billing"
	"github.com/imobo/imobo/internal/contract"
	"github.com/imobo/imobo/internal/payment"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_GenerateSchedule_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	stx := payment.NewMockScheduleTx(ctrl)

	c := activeContract(date(2024, 1, 15), date(2024, 3, 15))
	svc := billing.NewService(contracts, payments, fixedClock(date(2024, 1, 1)))

	contracts.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), c.ID).Return(stx, nil)
	stx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(0, nil)
	stx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	schedule, err := svc.GenerateSchedule(context.Background(), c.ID, false)
	require.NoError(t, err)
	require.Len(t, schedule, 3)
	assert.Equal(t, date(2024, 1, 15), schedule[0].DueDate)
	assert.Equal(t, date(2024, 3, 15), schedule[2].DueDate)
}

func TestService_GenerateSchedule_ContractNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	svc := billing.NewService(contracts, payments, nil)

	id := uuid.New()
	contracts.EXPECT().GetContract(gomock.Any(), id).Return(nil, contract.ErrNotFound)

	schedule, err := svc.GenerateSchedule(context.Background(), id, false)
	assert.ErrorIs(t, err, contract.ErrNotFound)
	assert.Nil(t, schedule)
}

func TestService_GenerateSchedule_InactiveContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	svc := billing.NewService(contracts, payments, nil)

	c := activeContract(date(2024, 1, 15), date(2024, 3, 15))
	c.Status = contract.StatusDraft

	contracts.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)

	schedule, err := svc.GenerateSchedule(context.Background(), c.ID, false)
	require.NoError(t, err)
	assert.Empty(t, schedule)
}

func TestService_GenerateSchedule_AlreadyGenerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	stx := payment.NewMockScheduleTx(ctrl)

	c := activeContract(date(2024, 1, 15), date(2024, 3, 15))
	svc := billing.NewService(contracts, payments, fixedClock(date(2024, 1, 1)))

	contracts.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), c.ID).Return(stx, nil)
	stx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(3, nil)
	stx.EXPECT().Rollback().Return(nil)

	schedule, err := svc.GenerateSchedule(context.Background(), c.ID, false)
	require.NoError(t, err)
	assert.Empty(t, schedule)
}

func TestService_GenerateSchedule_ForceBypassesGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	stx := payment.NewMockScheduleTx(ctrl)

	c := activeContract(date(2024, 1, 15), date(2024, 2, 15))
	svc := billing.NewService(contracts, payments, fixedClock(date(2024, 1, 1)))

	contracts.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), c.ID).Return(stx, nil)
	stx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(2, nil)
	stx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	schedule, err := svc.GenerateSchedule(context.Background(), c.ID, true)
	require.NoError(t, err)
	assert.Len(t, schedule, 2)
}

func TestService_GenerateSchedule_CreateFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	stx := payment.NewMockScheduleTx(ctrl)

	c := activeContract(date(2024, 1, 15), date(2024, 3, 15))
	svc := billing.NewService(contracts, payments, fixedClock(date(2024, 1, 1)))

	contracts.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), c.ID).Return(stx, nil)
	stx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(0, nil)
	stx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	stx.EXPECT().Rollback().Return(nil)

	schedule, err := svc.GenerateSchedule(context.Background(), c.ID, false)
	assert.Error(t, err)
	assert.Nil(t, schedule)
}

func TestService_GenerateSchedule_CommitError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	stx := payment.NewMockScheduleTx(ctrl)

	c := activeContract(date(2024, 6, 1), date(2024, 6, 30))
	svc := billing.NewService(contracts, payments, fixedClock(date(2024, 6, 1)))

	contracts.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), c.ID).Return(stx, nil)
	stx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(0, nil)
	stx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	stx.EXPECT().Commit().Return(errors.New("commit failed"))
	stx.EXPECT().Rollback().Return(nil)

	schedule, err := svc.GenerateSchedule(context.Background(), c.ID, false)
	assert.Error(t, err)
	assert.Nil(t, schedule)
}

func TestRunner_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	stx := payment.NewMockScheduleTx(ctrl)

	ok := activeContract(date(2024, 1, 15), date(2024, 2, 15))
	covered := activeContract(date(2024, 1, 1), date(2024, 2, 1))

	svc := billing.NewService(contracts, payments, fixedClock(date(2024, 1, 1)))
	runner := billing.NewRunner(svc, time.Hour)

	active := contract.StatusActive
	contracts.EXPECT().
		ListContracts(gomock.Any(), contract.ListFilter{Status: &active}).
		Return([]*contract.Contract{ok, covered}, nil)

	// First contract gets a fresh schedule.
	contracts.EXPECT().GetContract(gomock.Any(), ok.ID).Return(ok, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), ok.ID).Return(stx, nil)
	stx.EXPECT().CountByContract(gomock.Any(), ok.ID).Return(0, nil)
	stx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	// Second already has payments and is skipped by the guard.
	covTx := payment.NewMockScheduleTx(ctrl)
	contracts.EXPECT().GetContract(gomock.Any(), covered.ID).Return(covered, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), covered.ID).Return(covTx, nil)
	covTx.EXPECT().CountByContract(gomock.Any(), covered.ID).Return(2, nil)
	covTx.EXPECT().Rollback().Return(nil)

	err := runner.Sweep(context.Background())
	require.NoError(t, err)
}

func TestRunner_Sweep_ContinuesAfterContractError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)
	stx := payment.NewMockScheduleTx(ctrl)

	broken := activeContract(date(2024, 1, 15), date(2024, 2, 15))
	healthy := activeContract(date(2024, 1, 15), date(2024, 2, 15))

	svc := billing.NewService(contracts, payments, fixedClock(date(2024, 1, 1)))
	runner := billing.NewRunner(svc, time.Hour)

	active := contract.StatusActive
	contracts.EXPECT().
		ListContracts(gomock.Any(), contract.ListFilter{Status: &active}).
		Return([]*contract.Contract{broken, healthy}, nil)

	contracts.EXPECT().GetContract(gomock.Any(), broken.ID).Return(nil, errors.New("db error"))

	contracts.EXPECT().GetContract(gomock.Any(), healthy.ID).Return(healthy, nil)
	payments.EXPECT().BeginSchedule(gomock.Any(), healthy.ID).Return(stx, nil)
	stx.EXPECT().CountByContract(gomock.Any(), healthy.ID).Return(0, nil)
	stx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	err := runner.Sweep(context.Background())
	require.NoError(t, err)
}

func TestRunner_Sweep_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contracts := billing.NewMockContractStore(ctrl)
	payments := billing.NewMockPaymentStore(ctrl)

	svc := billing.NewService(contracts, payments, nil)
	runner := billing.NewRunner(svc, time.Hour)

	contracts.EXPECT().
		ListContracts(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	err := runner.Sweep(context.Background())
	assert.Error(t, err)
}
