package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/ports"
)

// DoctorService cross-checks the registry against the dataset folders
type DoctorService struct {
	registry ports.RegistryStore
	datasets ports.DatasetStore
}

// NewDoctorService creates a new doctor service
func NewDoctorService(registry ports.RegistryStore, datasets ports.DatasetStore) *DoctorService {
	return &DoctorService{
		registry: registry,
		datasets: datasets,
	}
}

// DoctorReport lists every inconsistency found
type DoctorReport struct {
	Registered  int
	Orphans     []string          // hash-named folders with no registry entry
	Missing     []domain.Designer // registry entries whose folder is gone
	Empty       []domain.Designer // registry entries whose folder has no images
	RegistryErr error             // set when the registry could not be read
}

// Healthy reports whether nothing needs attention
func (r *DoctorReport) Healthy() bool {
	return r.RegistryErr == nil && len(r.Orphans) == 0 && len(r.Missing) == 0 && len(r.Empty) == 0
}

// Execute builds the report. Only folder listing failures are returned as errors;
// a broken registry is part of the report.
func (s *DoctorService) Execute(ctx context.Context) (*DoctorReport, error) {
	report := &DoctorReport{}

	folders, err := s.datasets.ListHashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset folders: %w", err)
	}

	registry, err := s.registry.Load(ctx)
	if err != nil {
		report.RegistryErr = err
		registry = domain.NewRegistry()
	}
	report.Registered = registry.Count()

	for _, folder := range folders {
		if domain.IsValidHash(folder) && !registry.HasHash(folder) {
			report.Orphans = append(report.Orphans, folder)
		}
	}

	for _, hash := range registry.Hashes() {
		designer := domain.Designer{Hash: hash, Name: registry[hash]}
		if !s.datasets.Exists(ctx, hash) {
			report.Missing = append(report.Missing, designer)
			continue
		}
		files, err := s.datasets.List(ctx, hash)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset %s: %w", hash, err)
		}
		if len(files) == 0 {
			report.Empty = append(report.Empty, designer)
		}
	}

	return report, nil
}
