// Package testutil provides testify/mock doubles for the verification
// shell's injected dependencies, in the style of the teacher's
// internal/testutil mocks.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sigcore/dnssecd/internal/core/ports"
)

var (
	_ ports.AnchorStore  = (*MockAnchorStore)(nil)
	_ ports.VerdictCache = (*MockVerdictCache)(nil)
)

// MockAnchorStore is a testify mock implementing ports.AnchorStore.
type MockAnchorStore struct {
	mock.Mock
}

// SaveVerifiedKey implements ports.AnchorStore.
func (m *MockAnchorStore) SaveVerifiedKey(ctx context.Context, zone string, keyTag uint16, algorithm uint8, verdict string) error {
	args := m.Called(ctx, zone, keyTag, algorithm, verdict)
	return args.Error(0)
}

// LastVerdict implements ports.AnchorStore.
func (m *MockAnchorStore) LastVerdict(ctx context.Context, zone string, keyTag uint16, algorithm uint8) (string, bool, error) {
	args := m.Called(ctx, zone, keyTag, algorithm)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockVerdictCache is a testify mock implementing ports.VerdictCache.
type MockVerdictCache struct {
	mock.Mock
}

// Get implements ports.VerdictCache.
func (m *MockVerdictCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	args := m.Called(ctx, fingerprint)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Set implements ports.VerdictCache.
func (m *MockVerdictCache) Set(ctx context.Context, fingerprint string, verdict string) error {
	args := m.Called(ctx, fingerprint, verdict)
	return args.Error(0)
}
