package contract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imobo/imobo/internal/contract"
)

func validParams() contract.CreateParams {
	return contract.CreateParams{
		TenantID:    uuid.New(),
		OwnerID:     uuid.New(),
		PropertyRef: "T2 Rua das Flores 12",
		StartDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		RentAmount:  decimal.NewFromInt(850),
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    func() contract.CreateParams
		setupMock func(m *contract.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					CreateContract(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *contract.Contract) error {
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "EndBeforeStart",
			params: func() contract.CreateParams {
				p := validParams()
				p.EndDate = p.StartDate.AddDate(0, -1, 0)
				return p
			},
			wantErr: true,
		},
		{
			name: "ZeroRent",
			params: func() contract.CreateParams {
				p := validParams()
				p.RentAmount = decimal.Zero
				return p
			},
			wantErr: true,
		},
		{
			name: "NegativeRent",
			params: func() contract.CreateParams {
				p := validParams()
				p.RentAmount = decimal.NewFromInt(-100)
				return p
			},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: validParams,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					CreateContract(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := contract.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, contract.StatusDraft, got.Status)
		})
	}
}

func TestService_Create_StartEqualsEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	repo.EXPECT().CreateContract(gomock.Any(), gomock.Any()).Return(nil)

	svc := contract.NewService(repo)

	p := validParams()
	p.EndDate = p.StartDate

	got, err := svc.Create(context.Background(), p)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestService_Activate(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *contract.MockRepository, id uuid.UUID)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *contract.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetContract(gomock.Any(), id).
					Return(&contract.Contract{ID: id, Status: contract.StatusDraft}, nil)
				m.EXPECT().
					UpdateContractStatus(gomock.Any(), id, contract.StatusActive).
					Return(nil)
			},
		},
		{
			name: "AlreadyActive",
			setupMock: func(m *contract.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetContract(gomock.Any(), id).
					Return(&contract.Contract{ID: id, Status: contract.StatusActive}, nil)
			},
			wantErr: contract.ErrNotDraft,
		},
		{
			name: "Terminated",
			setupMock: func(m *contract.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetContract(gomock.Any(), id).
					Return(&contract.Contract{ID: id, Status: contract.StatusTerminated}, nil)
			},
			wantErr: contract.ErrNotDraft,
		},
		{
			name: "NotFound",
			setupMock: func(m *contract.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetContract(gomock.Any(), id).
					Return(nil, contract.ErrNotFound)
			},
			wantErr: contract.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			id := uuid.New()
			tt.setupMock(repo, id)

			svc := contract.NewService(repo)
			got, err := svc.Activate(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, contract.StatusActive, got.Status)
		})
	}
}

func TestService_Terminate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().
		UpdateContractStatus(gomock.Any(), id, contract.StatusTerminated).
		Return(nil)

	svc := contract.NewService(repo)
	assert.NoError(t, svc.Terminate(context.Background(), id))
}

func TestContract_BillingDay(t *testing.T) {
	c := &contract.Contract{
		StartDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 31, c.BillingDay())
}
