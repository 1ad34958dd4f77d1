package mqtt

import (
	"fmt"
	"sync"

	"github.com/dkastrati/windlink/core/model"
)

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Summaries []model.RunSummary
	Fail      bool
	Closed    bool
	mu        sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishSummary records the summary or returns an error if configured to fail.
func (m *MockPublisher) PublishSummary(summary model.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Summaries = append(m.Summaries, summary)
	return nil
}

// Close marks the publisher as closed.
func (m *MockPublisher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}
