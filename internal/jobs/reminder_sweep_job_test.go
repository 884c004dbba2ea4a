package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChurnReportSource serves a fixed at-risk list and records the
// threshold each sweep asked for.
type fakeChurnReportSource struct {
	atRisk   []queries.ChurnReportQueryResponse
	err      error
	minRisks []float64
}

func (f *fakeChurnReportSource) Handle(
	_ context.Context, query queries.ChurnReportQuery,
) ([]queries.ChurnReportQueryResponse, error) {
	f.minRisks = append(f.minRisks, query.MinRisk())
	if f.err != nil {
		return nil, f.err
	}
	return f.atRisk, nil
}

// recordingSender captures outbound messages in memory.
type recordingSender struct {
	mu         sync.Mutex
	recipients []string
	err        error
}

func (s *recordingSender) Send(_ context.Context, recipient, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = append(s.recipients, recipient)
	return nil
}

// memoryDeliveryLog is an in-memory dedupe ledger.
type memoryDeliveryLog struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func newMemoryDeliveryLog() *memoryDeliveryLog {
	return &memoryDeliveryLog{keys: make(map[string]time.Time)}
}

func (l *memoryDeliveryLog) AlreadySent(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.keys[key]
	return ok, nil
}

func (l *memoryDeliveryLog) MarkSent(_ context.Context, key string, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.keys[key]; !ok {
		l.keys[key] = at
	}
	return nil
}

func atRiskCustomers(emails ...string) []queries.ChurnReportQueryResponse {
	atRisk := make([]queries.ChurnReportQueryResponse, 0, len(emails))
	for _, email := range emails {
		atRisk = append(atRisk, queries.ChurnReportQueryResponse{Email: email, ChurnRisk: 0.8})
	}
	return atRisk
}

func TestReminderSweepJob_SendsToEveryAtRiskCustomer(t *testing.T) {
	source := &fakeChurnReportSource{atRisk: atRiskCustomers("anna@example.com", "ben@example.com")}
	sender := &recordingSender{}
	dispatcher := services.NewNotificationDispatcher(sender, newMemoryDeliveryLog(), discardLogger())
	job := NewReminderSweepJob(source, dispatcher, discardLogger())

	err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"anna@example.com", "ben@example.com"}, sender.recipients)
	require.Len(t, source.minRisks, 1)
	assert.Equal(t, reminderRiskThreshold, source.minRisks[0])
}

func TestReminderSweepJob_SecondRunSameDaySendsNothing(t *testing.T) {
	source := &fakeChurnReportSource{atRisk: atRiskCustomers("anna@example.com", "ben@example.com")}
	sender := &recordingSender{}
	dispatcher := services.NewNotificationDispatcher(sender, newMemoryDeliveryLog(), discardLogger())
	job := NewReminderSweepJob(source, dispatcher, discardLogger())

	require.NoError(t, job.Run(context.Background()))
	require.NoError(t, job.Run(context.Background()))

	// The per-customer per-day dedupe key absorbs the second run entirely: a
	// manual rerun after the scheduled sweep must not nag anyone twice.
	assert.Equal(t, []string{"anna@example.com", "ben@example.com"}, sender.recipients)
}

func TestReminderSweepJob_FailedSendDoesNotStopSweepAndRetriesNextRun(t *testing.T) {
	source := &fakeChurnReportSource{atRisk: atRiskCustomers("anna@example.com", "ben@example.com")}
	sender := &recordingSender{err: errors.New("gateway unavailable")}
	dispatcher := services.NewNotificationDispatcher(sender, newMemoryDeliveryLog(), discardLogger())
	job := NewReminderSweepJob(source, dispatcher, discardLogger())

	require.NoError(t, job.Run(context.Background()))
	assert.Empty(t, sender.recipients)

	// Failed sends leave no dedupe record, so the next run reaches both.
	sender.err = nil
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []string{"anna@example.com", "ben@example.com"}, sender.recipients)
}

func TestReminderSweepJob_ChurnReportFailureIsReturned(t *testing.T) {
	source := &fakeChurnReportSource{err: errors.New("db down")}
	dispatcher := services.NewNotificationDispatcher(
		&recordingSender{}, newMemoryDeliveryLog(), discardLogger())
	job := NewReminderSweepJob(source, dispatcher, discardLogger())

	err := job.Run(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "churn report failed")
}
