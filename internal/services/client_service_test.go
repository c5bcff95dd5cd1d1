package services

import (
	"context"
	"testing"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientFixture() (*ClientService, *mockClientRepo) {
	clientRepo := newMockClientRepo()
	return NewClientService(clientRepo, NewAuditService(nil)), clientRepo
}

func TestCreateClientRequiresName(t *testing.T) {
	svc, _ := newClientFixture()

	err := svc.Create(context.Background(), &models.Client{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateClientStartsActive(t *testing.T) {
	svc, _ := newClientFixture()

	client := &models.Client{Name: "Acme Ltda"}
	require.NoError(t, svc.Create(context.Background(), client))
	assert.True(t, client.Active)
}

func TestArchiveReactivateRoundTrip(t *testing.T) {
	svc, _ := newClientFixture()
	ctx := context.Background()

	client := &models.Client{Name: "Acme Ltda", TaxID: "12.345.678/0001-90", Email: "contato@acme.com.br"}
	require.NoError(t, svc.Create(ctx, client))

	require.NoError(t, svc.Archive(ctx, client.ID, 1))

	active, _, err := svc.List(ctx, repository.NewListQuery(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, _, err := svc.List(ctx, repository.NewListQuery(), false)
	require.NoError(t, err)
	require.Len(t, archived, 1)

	require.NoError(t, svc.Reactivate(ctx, client.ID, 1))

	active, _, err = svc.List(ctx, repository.NewListQuery(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)

	// The round trip only flips the active flag
	restored := active[0]
	assert.Equal(t, "Acme Ltda", restored.Name)
	assert.Equal(t, "12.345.678/0001-90", restored.TaxID)
	assert.Equal(t, "contato@acme.com.br", restored.Email)
	assert.True(t, restored.Active)
}

func TestArchiveUnknownClient(t *testing.T) {
	svc, _ := newClientFixture()

	err := svc.Archive(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClientPreservesActiveFlag(t *testing.T) {
	svc, _ := newClientFixture()
	ctx := context.Background()

	client := &models.Client{Name: "Acme Ltda"}
	require.NoError(t, svc.Create(ctx, client))

	updated, err := svc.Update(ctx, client.ID, &models.Client{Name: "Acme Engenharia Ltda", Phone: "(11) 99999-0000"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Engenharia Ltda", updated.Name)
	assert.Equal(t, "(11) 99999-0000", updated.Phone)
	assert.True(t, updated.Active)
}
