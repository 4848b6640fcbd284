// Package ports defines the capabilities the verification core borrows
// from its caller, mirroring the hexagonal boundary the rest of this
// repository uses between core logic and infrastructure.
package ports

import "context"

// Clock supplies the wall-clock time used for RRSIG validity-window
// checks, overridable to a fixed value for deterministic replay and
// testing. Values are 32-bit seconds since epoch, matching the RRSIG
// Inception and Expiration fields defined in RFC 4034 Section 3.1.
type Clock interface {
	Now() int32
}

// FixedClock is a Clock that always returns the same instant.
type FixedClock int32

// Now implements Clock.
func (c FixedClock) Now() int32 { return int32(c) }

// SystemClock is a Clock backed by a wall-clock source, normally
// time.Now().Unix.
type SystemClock struct{ nowFunc func() int64 }

// NewSystemClock returns a Clock reading from the given Unix-seconds
// source.
func NewSystemClock(nowFunc func() int64) SystemClock {
	return SystemClock{nowFunc: nowFunc}
}

// Now implements Clock.
func (c SystemClock) Now() int32 { return int32(c.nowFunc()) }

// ScratchAllocator hands out request-scoped scratch buffers. The core
// writes the canonical preimage into the returned buffer and never
// retains it past the call that requested it.
type ScratchAllocator interface {
	Alloc(n int) []byte
}

// Logger is the narrow logging capability the core uses for
// algorithm-debug verbosity. It never gates or changes security-relevant
// behavior.
type Logger interface {
	Debugf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

// Debugf implements Logger.
func (NopLogger) Debugf(string, ...any) {}

// AnchorStore persists the last verdict reached for a (zone, key tag,
// algorithm) triple for reuse across verification calls. It is not part of the core; the
// trust-anchor store is out of scope for signature verification itself,
// but the shell around the core depends on this interface to avoid
// re-verifying unchanged delegations on every call.
type AnchorStore interface {
	SaveVerifiedKey(ctx context.Context, zone string, keyTag uint16, algorithm uint8, verdict string) error
	LastVerdict(ctx context.Context, zone string, keyTag uint16, algorithm uint8) (verdict string, found bool, err error)
}

// VerdictCache caches the outcome of a verification call keyed by a
// caller-supplied fingerprint (typically a hash of the RRset+RRSIG+key
// bytes). Also out of scope for the core itself, but used by the shell
// to avoid repeating expensive crypto work for unchanged inputs.
type VerdictCache interface {
	Get(ctx context.Context, fingerprint string) (verdict string, ok bool, err error)
	Set(ctx context.Context, fingerprint string, verdict string) error
}
