package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	trains        int
	registrations []string
}

func (c *countingObserver) RecordRegistration(_ time.Duration, result string, _ int) {
	c.registrations = append(c.registrations, result)
}

func (c *countingObserver) RecordTrain() {
	c.trains++
}

func TestTrainService_Execute(t *testing.T) {
	observer := &countingObserver{}
	svc := NewTrainService(observer)

	msg, err := svc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TrainNotImplemented, msg)
	assert.Equal(t, 1, observer.trains)

	msg, err = NewTrainService(nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TrainNotImplemented, msg)
}
