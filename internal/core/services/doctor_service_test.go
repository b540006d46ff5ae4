package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/ports/mocks"
)

func TestDoctorService_Healthy(t *testing.T) {
	registry, datasets := seedCatalog(t)

	report, err := NewDoctorService(registry, datasets).Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Healthy())
	assert.Equal(t, 3, report.Registered)
}

func TestDoctorService_FindsProblems(t *testing.T) {
	ctx := context.Background()
	registry, datasets := seedCatalog(t)

	registry.Seed("dddddddddddddddd", "Missing Folder")
	registry.Seed("eeeeeeeeeeeeeeee", "Empty Folder")
	require.NoError(t, datasets.Create(ctx, "eeeeeeeeeeeeeeee"))
	require.NoError(t, datasets.Create(ctx, "ffffffffffffffff")) // orphan
	require.NoError(t, datasets.Create(ctx, "not-a-hash"))       // ignored

	report, err := NewDoctorService(registry, datasets).Execute(ctx)
	require.NoError(t, err)

	assert.False(t, report.Healthy())
	assert.Equal(t, []string{"ffffffffffffffff"}, report.Orphans)
	require.Len(t, report.Missing, 1)
	assert.Equal(t, "Missing Folder", report.Missing[0].Name)
	require.Len(t, report.Empty, 1)
	assert.Equal(t, "eeeeeeeeeeeeeeee", report.Empty[0].Hash)
}

func TestDoctorService_CorruptRegistry(t *testing.T) {
	ctx := context.Background()
	registry := mocks.NewMockRegistryStore()
	registry.SetLoadError(domain.NewRegistryCorrupt("designer.json", errors.New("bad")))
	datasets := mocks.NewMockDatasetStore()
	require.NoError(t, datasets.Create(ctx, "0123456789abcdef"))

	report, err := NewDoctorService(registry, datasets).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, errors.Is(report.RegistryErr, domain.ErrRegistryCorrupt))
	assert.Equal(t, []string{"0123456789abcdef"}, report.Orphans)
	assert.False(t, report.Healthy())
}
