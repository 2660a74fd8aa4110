package lead_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imobo/imobo/internal/lead"
)

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := lead.NewMockRepository(ctrl)
	itx := lead.NewMockImportTx(ctrl)
	svc := lead.NewService(repo)

	params := []lead.CreateParams{
		{
			Name:        "Ana Costa",
			Email:       "ana.costa@example.com",
			Phone:       "912 345 678",
			PropertyRef: "ID-4412",
			Source:      "idealista",
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), "idealista").Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateLeads(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), "idealista", params)
	require.NoError(t, err)
	require.Len(t, result.Imported, 1)
	assert.Equal(t, lead.StatusNew, result.Imported[0].Status)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := lead.NewMockRepository(ctrl)
	itx := lead.NewMockImportTx(ctrl)
	svc := lead.NewService(repo)

	params := []lead.CreateParams{
		{
			Name:   "Ana Costa",
			Email:  "Ana.Costa@Example.com", // case differs from stored lead
			Phone:  "912-345-678",
			Source: "idealista",
		},
		{
			Name:   "Bruno Dias",
			Email:  "bruno.dias@example.com",
			Phone:  "933 111 222",
			Source: "idealista",
		},
	}

	existing := &lead.Lead{
		ID:    uuid.New(),
		Name:  "Ana Costa",
		Email: "ana.costa@example.com",
		Phone: "912345678",
	}

	repo.EXPECT().BeginImport(gomock.Any(), "idealista").Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*lead.Lead{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), "idealista", params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
	require.Len(t, result.New, 1)
	assert.Equal(t, "Bruno Dias", result.New[0].Name)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := lead.NewMockRepository(ctrl)
	svc := lead.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), "idealista", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_CreateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := lead.NewMockRepository(ctrl)
	itx := lead.NewMockImportTx(ctrl)
	svc := lead.NewService(repo)

	params := []lead.CreateParams{
		{Name: "Ana Costa", Email: "ana.costa@example.com", Source: "imovirtual"},
	}

	repo.EXPECT().BeginImport(gomock.Any(), "imovirtual").Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateLeads(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), "imovirtual", params)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := lead.NewMockRepository(ctrl)
	svc := lead.NewService(repo)

	repo.EXPECT().
		CreateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *lead.Lead) error {
			l.ID = uuid.New()
			return nil
		})

	got, err := svc.Create(context.Background(), lead.CreateParams{
		Name:   "Carla Nunes",
		Phone:  "961234567",
		Source: "manual",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, lead.StatusNew, got.Status)
}
