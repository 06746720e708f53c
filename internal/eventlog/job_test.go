package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/ContestBot_Go/internal/metrics"
)

func TestCleanupJob_PrunesAndCounts(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("CleanupOldEvents", mock.Anything, 10).Return(int64(100), nil)
	before := testutil.ToFloat64(metrics.EventLogPruned)

	assert.NoError(t, NewCleanupJob(NewService(mockRepo), 10).Process(context.Background()))

	mockRepo.AssertExpectations(t)
	assert.Equal(t, before+100, testutil.ToFloat64(metrics.EventLogPruned))
}

func TestCleanupJob_Error(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("CleanupOldEvents", mock.Anything, 30).Return(int64(0), errors.New("timeout"))

	assert.Error(t, NewCleanupJob(NewService(mockRepo), 30).Process(context.Background()))
}

func TestCleanupJob_DisabledRetention(t *testing.T) {
	mockRepo := new(MockRepository)

	assert.NoError(t, NewCleanupJob(NewService(mockRepo), 0).Process(context.Background()))
	mockRepo.AssertNotCalled(t, "CleanupOldEvents", mock.Anything, mock.Anything)
}
