package services

import (
	"context"
	"fmt"
	"sync"
)

// MockLabelStorage is an in-memory LabelStorage implementation for testing
type MockLabelStorage struct {
	labels  map[string][]byte
	failKey string
	mu      sync.RWMutex
}

// NewMockLabelStorage creates a new mock label storage
func NewMockLabelStorage() *MockLabelStorage {
	return &MockLabelStorage{
		labels: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global label storage instance
func (m *MockLabelStorage) SetAsMockForTesting() {
	SetLabelStorage(m)
}

// FailUploadsFor makes uploads of the given key fail (for testing assertions)
func (m *MockLabelStorage) FailUploadsFor(key string) {
	m.mu.Lock()
	m.failKey = key
	m.mu.Unlock()
}

// UploadLabel simulates uploading a label
func (m *MockLabelStorage) UploadLabel(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failKey != "" && m.failKey == key {
		return fmt.Errorf("simulated upload failure for %s", key)
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.labels[key] = stored
	return nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockLabelStorage) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	m.mu.RLock()
	_, exists := m.labels[key]
	m.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("label not found in mock storage: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.eu-south-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteLabel simulates deleting a label
func (m *MockLabelStorage) DeleteLabel(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.labels, key)
	m.mu.Unlock()
	return nil
}

// Exists checks if a label exists in mock storage
func (m *MockLabelStorage) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.labels[key]
	return exists
}

// Stored returns a copy of all stored labels (for testing assertions)
func (m *MockLabelStorage) Stored() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.labels))
	for k, v := range m.labels {
		out[k] = v
	}
	return out
}

// Clear removes all labels from mock storage
func (m *MockLabelStorage) Clear() {
	m.mu.Lock()
	m.labels = make(map[string][]byte)
	m.mu.Unlock()
}
