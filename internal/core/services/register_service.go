package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/ports"
	"github.com/kamal-hamza/metadesigner/internal/observability"
)

// maxHashAttempts bounds the regeneration loop when candidate hashes collide
const maxHashAttempts = 64

// RegisterService turns a designer name plus uploaded images into a dataset folder
// and a registry entry
type RegisterService struct {
	registry ports.RegistryStore
	datasets ports.DatasetStore
	hashes   domain.HashGenerator
	observer observability.Observer
	logger   *slog.Logger

	// serializes load-check-save so concurrent requests cannot lose entries
	mu sync.Mutex
}

// RegisterOption customizes a RegisterService
type RegisterOption func(*RegisterService)

// WithHashGenerator replaces the wall-clock hash generator
func WithHashGenerator(gen domain.HashGenerator) RegisterOption {
	return func(s *RegisterService) {
		s.hashes = gen
	}
}

// WithObserver sets the metrics observer
func WithObserver(observer observability.Observer) RegisterOption {
	return func(s *RegisterService) {
		s.observer = observer
	}
}

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) RegisterOption {
	return func(s *RegisterService) {
		s.logger = logger
	}
}

// NewRegisterService creates a new registration service
func NewRegisterService(registry ports.RegistryStore, datasets ports.DatasetStore, opts ...RegisterOption) *RegisterService {
	s := &RegisterService{
		registry: registry,
		datasets: datasets,
		hashes:   domain.NewClockHashGenerator(),
		observer: observability.NopObserver(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = observability.OrDiscard(s.logger)
	return s
}

// RegisterRequest represents a request to register a designer dataset
type RegisterRequest struct {
	Name   string
	Images []ports.ImageSource
}

// RegisterResponse represents a completed registration
type RegisterResponse struct {
	Name  string `json:"name"`
	Hash  string `json:"hash"`
	Count int    `json:"count"`
}

// Message returns the status line shown after a successful upload
func (r *RegisterResponse) Message() string {
	return domain.SuccessMessage(r.Name, r.Hash, r.Count)
}

// Execute validates the request, stores the images and records the designer.
// Every failure is a *domain.RegistrationError.
func (s *RegisterService) Execute(ctx context.Context, req RegisterRequest) (resp *RegisterResponse, err error) {
	start := time.Now()
	defer func() {
		result := observability.ResultOK
		count := 0
		if err != nil {
			result = string(domain.KindOf(err))
			if result == "" {
				result = string(domain.KindIOFailure)
			}
		} else {
			count = resp.Count
		}
		s.observer.RecordRegistration(time.Since(start), result, count)
	}()

	if err := domain.ValidateUpload(req.Name, len(req.Images)); err != nil {
		s.logger.Info("registration rejected", "name", req.Name, "images", len(req.Images), "reason", domain.KindOf(err))
		return nil, err
	}
	name := domain.NormalizeName(req.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	registry, err := s.registry.Load(ctx)
	if err != nil {
		if domain.KindOf(err) != "" {
			return nil, err
		}
		return nil, domain.NewIOFailure(name, err)
	}

	if registry.HasName(name) {
		s.logger.Info("registration rejected", "name", name, "reason", domain.KindDuplicateName)
		return nil, domain.NewDuplicateName(name)
	}

	hash, err := s.allocateHash(ctx, name, registry)
	if err != nil {
		return nil, domain.NewIOFailure(name, err)
	}

	if err := s.datasets.Create(ctx, hash); err != nil {
		return nil, domain.NewIOFailure(name, err)
	}

	count, err := s.copyImages(ctx, hash, req.Images)
	if err == nil {
		registry[hash] = name
		err = s.registry.Save(ctx, registry)
	}
	if err != nil {
		if rmErr := s.datasets.Remove(ctx, hash); rmErr != nil {
			s.logger.Warn("failed to remove partial dataset", "hash", hash, "error", rmErr)
		}
		s.logger.Error("registration failed", "name", name, "hash", hash, "error", err)
		return nil, domain.NewIOFailure(name, err)
	}

	s.logger.Info("designer registered", "name", name, "hash", hash, "images", count)
	return &RegisterResponse{
		Name:  name,
		Hash:  hash,
		Count: count,
	}, nil
}

// allocateHash regenerates until the hash is free in both the registry and the cache
func (s *RegisterService) allocateHash(ctx context.Context, name string, registry domain.Registry) (string, error) {
	for attempt := 0; attempt < maxHashAttempts; attempt++ {
		hash := s.hashes.Generate(name)
		if registry.HasHash(hash) || s.datasets.Exists(ctx, hash) {
			s.logger.Debug("hash collision, regenerating", "hash", hash, "attempt", attempt+1)
			continue
		}
		return hash, nil
	}
	return "", fmt.Errorf("could not allocate a unique hash after %d attempts", maxHashAttempts)
}

// copyImages writes image_001.ext, image_002.ext, ... in upload order.
// Nil entries are skipped but keep their number.
func (s *RegisterService) copyImages(ctx context.Context, hash string, images []ports.ImageSource) (int, error) {
	copied := 0
	for i, image := range images {
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		if image == nil {
			continue
		}

		filename := domain.ImageFilename(i+1, image.Name())
		if err := s.copyImage(ctx, hash, filename, image); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func (s *RegisterService) copyImage(ctx context.Context, hash, filename string, image ports.ImageSource) error {
	src, err := image.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	return s.datasets.Put(ctx, hash, filename, src)
}
