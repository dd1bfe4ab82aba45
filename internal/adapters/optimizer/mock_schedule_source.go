package optimizer

import (
	"context"

	"milk-collection-service/internal/ports"
)

// MockScheduleSource is an in-memory source/sink for handler tests.
type MockScheduleSource struct {
	Doc   ports.RawScheduleDocument
	Err   error
	Calls int
	Saved []ports.RawScheduleDocument
}

func (m *MockScheduleSource) FetchLatest(ctx context.Context) (ports.RawScheduleDocument, error) {
	m.Calls++
	if m.Err != nil {
		return ports.RawScheduleDocument{}, m.Err
	}
	return m.Doc, nil
}

func (m *MockScheduleSource) SaveManual(ctx context.Context, doc ports.RawScheduleDocument) error {
	if m.Err != nil {
		return m.Err
	}
	m.Saved = append(m.Saved, doc)
	return nil
}
