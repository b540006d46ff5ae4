package services

import (
	"context"

	"github.com/kamal-hamza/metadesigner/internal/observability"
)

// TrainNotImplemented is the fixed reply of the training stub
const TrainNotImplemented = "Training is not implemented yet."

// TrainService is a placeholder for model training
type TrainService struct {
	observer observability.Observer
}

// NewTrainService creates the training stub
func NewTrainService(observer observability.Observer) *TrainService {
	if observer == nil {
		observer = observability.NopObserver()
	}
	return &TrainService{observer: observer}
}

// Execute returns the "not implemented" status. It has no side effects on datasets.
func (s *TrainService) Execute(ctx context.Context) (string, error) {
	s.observer.RecordTrain()
	return TrainNotImplemented, nil
}
