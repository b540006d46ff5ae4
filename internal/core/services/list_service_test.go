package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/ports/mocks"
)

func seedCatalog(t *testing.T) (*mocks.MockRegistryStore, *mocks.MockDatasetStore) {
	t.Helper()
	ctx := context.Background()
	registry := mocks.NewMockRegistryStore()
	datasets := mocks.NewMockDatasetStore()

	seed := []struct {
		hash   string
		name   string
		images int
	}{
		{"aaaaaaaaaaaaaaaa", "Carol", 1},
		{"bbbbbbbbbbbbbbbb", "alice", 3},
		{"cccccccccccccccc", "Bob Smith", 2},
	}
	for _, s := range seed {
		registry.Seed(s.hash, s.name)
		require.NoError(t, datasets.Create(ctx, s.hash))
		for i := 1; i <= s.images; i++ {
			require.NoError(t, datasets.Put(ctx, s.hash, domain.ImageFilename(i, "x.png"), strings.NewReader("x")))
		}
	}
	return registry, datasets
}

func designerNames(designers []domain.Designer) []string {
	names := make([]string, len(designers))
	for i, d := range designers {
		names[i] = d.Name
	}
	return names
}

func TestListService_Execute(t *testing.T) {
	registry, datasets := seedCatalog(t)
	svc := NewListService(registry, datasets)

	tests := []struct {
		name     string
		req      ListRequest
		expected []string
	}{
		{"default sorts by name", ListRequest{}, []string{"alice", "Bob Smith", "Carol"}},
		{"reverse name", ListRequest{Reverse: true}, []string{"Carol", "Bob Smith", "alice"}},
		{"by images", ListRequest{SortBy: "images"}, []string{"Carol", "Bob Smith", "alice"}},
		{"by hash", ListRequest{SortBy: "hash"}, []string{"Carol", "alice", "Bob Smith"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, 3, resp.Total)
			assert.Equal(t, tt.expected, designerNames(resp.Designers))
		})
	}
}

func TestListService_ExecuteCountsImages(t *testing.T) {
	registry, datasets := seedCatalog(t)
	registry.Seed("dddddddddddddddd", "Ghost") // folder missing

	resp, err := NewListService(registry, datasets).Execute(context.Background(), ListRequest{SortBy: "images"})
	require.NoError(t, err)

	counts := map[string]int{}
	for _, d := range resp.Designers {
		counts[d.Name] = d.ImageCount
	}
	assert.Equal(t, map[string]int{"Carol": 1, "alice": 3, "Bob Smith": 2, "Ghost": 0}, counts)
}

func TestListService_ExecuteRegistryError(t *testing.T) {
	registry := mocks.NewMockRegistryStore()
	registry.SetLoadError(domain.NewRegistryCorrupt("designer.json", errors.New("bad")))

	_, err := NewListService(registry, mocks.NewMockDatasetStore()).Execute(context.Background(), ListRequest{})
	assert.True(t, errors.Is(err, domain.ErrRegistryCorrupt))
}

func TestListService_Get(t *testing.T) {
	registry, datasets := seedCatalog(t)
	svc := NewListService(registry, datasets)
	ctx := context.Background()

	byHash, err := svc.Get(ctx, "cccccccccccccccc")
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", byHash.Name)
	assert.Equal(t, []string{"image_001.png", "image_002.png"}, byHash.Images)
	assert.Equal(t, 2, byHash.ImageCount)

	byName, err := svc.Get(ctx, " Bob Smith ")
	require.NoError(t, err)
	assert.Equal(t, "cccccccccccccccc", byName.Hash)

	_, err = svc.Get(ctx, "nobody")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestListService_Search(t *testing.T) {
	registry, datasets := seedCatalog(t)
	svc := NewListService(registry, datasets)
	ctx := context.Background()

	all, err := svc.Search(ctx, SearchRequest{Query: "  "})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	resp, err := svc.Search(ctx, SearchRequest{Query: "bsm"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Bob Smith", resp.Designers[0].Name)

	resp, err = svc.Search(ctx, SearchRequest{Query: "aaaa"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Carol", resp.Designers[0].Name)

	resp, err = svc.Search(ctx, SearchRequest{Query: "zzz"})
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
}

func TestFuzzyMatchScore(t *testing.T) {
	tests := []struct {
		text  string
		query string
		match bool
	}{
		{"Alice", "Alice", true},
		{"Alice", "alice", true},
		{"Bob Smith", "smi", true},
		{"Bob Smith", "bs", true},
		{"Bob Smith", "xyz", false},
		{"", "a", false},
	}

	for _, tt := range tests {
		if got := fuzzyMatchScore(tt.text, tt.query) > 0; got != tt.match {
			t.Errorf("fuzzyMatchScore(%q, %q) match = %v, want %v", tt.text, tt.query, got, tt.match)
		}
	}

	if fuzzyMatchScore("Alice", "Alice") <= fuzzyMatchScore("Alice", "ali") {
		t.Error("exact match should outrank prefix match")
	}
}
