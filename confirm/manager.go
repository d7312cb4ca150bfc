// confirm/manager.go

// Package confirm implements the two-phase confirmation protocol gating
// high-risk mutations: a preview is issued with a single-use, time-limited
// token, and the deferred payload only executes once the token is
// confirmed.
package confirm

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	apierrors "github.com/nikhilsag/hrbridge/errors"
	logger "github.com/nikhilsag/hrbridge/logging"
	"github.com/nikhilsag/hrbridge/model"
)

// DefaultTTL bounds how long a pending confirmation stays live: long enough
// for a human round-trip, short enough to limit exposure of a stale one.
const DefaultTTL = 5 * time.Minute

// PendingOperation holds a deferred mutation awaiting confirmation.
type PendingOperation struct {
	Token     string
	Operation string
	Payload   map[string]any
	Preview   model.OperationPreview
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Manager owns the live set of pending operations. Tokens are single-use
// and lazily evicted on any access after expiry.
type Manager struct {
	mu      sync.Mutex
	pending map[string]*PendingOperation
	ttl     time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		pending: make(map[string]*PendingOperation),
		ttl:     ttl,
	}
}

// CreateConfirmation stores a deferred operation and returns its token.
// Already-expired entries are swept opportunistically on every creation.
func (m *Manager) CreateConfirmation(operation string, payload map[string]any, preview model.OperationPreview) string {
	token := newToken()
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	preview.ConfirmationToken = token
	preview.ExpiresAt = expiresAt
	if preview.Warnings == nil {
		preview.Warnings = []string{}
	}

	m.mu.Lock()
	m.sweepLocked(now)
	m.pending[token] = &PendingOperation{
		Token:     token,
		Operation: operation,
		Payload:   payload,
		Preview:   preview,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	m.mu.Unlock()

	logger.Info("Confirmation created",
		zap.String("operation", operation),
		zap.Time("expiresAt", expiresAt))
	return token
}

// RequestConfirmation composes creation and preview retrieval: it derives
// the preview verb from the operation name, stores the pending operation
// and returns the token alongside the preview handed back to the caller.
func (m *Manager) RequestConfirmation(
	operation, entityType string,
	entityID *int64,
	entityName string,
	payload map[string]any,
	changes map[string]model.FieldChange,
	warnings []string,
) (string, model.OperationPreview) {
	if warnings == nil {
		warnings = []string{}
	}
	preview := model.OperationPreview{
		Operation:  operationVerb(operation),
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		Changes:    changes,
		Warnings:   warnings,
	}
	token := m.CreateConfirmation(operation, payload, preview)

	stored, _ := m.GetPreview(token)
	return token, *stored
}

// IsValid reports whether a token exists and is unexpired. Expired tokens
// are deleted as a side effect of the check.
func (m *Manager) IsValid(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveLocked(token) != nil
}

// Confirm consumes a token: on success the pending operation is removed
// from the live set and returned for the caller to execute. An absent or
// expired token yields a ConfirmationExpiredError.
func (m *Manager) Confirm(token string) (*PendingOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := m.liveLocked(token)
	if op == nil {
		return nil, apierrors.NewConfirmationExpiredError(token)
	}
	delete(m.pending, token)

	logger.Info("Confirmation consumed", zap.String("operation", op.Operation))
	return op, nil
}

// Cancel removes a token unconditionally and reports whether anything was
// removed.
func (m *Manager) Cancel(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pending[token]; !ok {
		return false
	}
	delete(m.pending, token)
	return true
}

// GetPreview peeks at a pending operation's preview without consuming the
// token. Expired tokens are evicted and reported missing.
func (m *Manager) GetPreview(token string) (*model.OperationPreview, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := m.liveLocked(token)
	if op == nil {
		return nil, false
	}
	preview := op.Preview
	return &preview, true
}

// PendingCount sweeps expired entries, then reports the live count.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(time.Now())
	return len(m.pending)
}

// liveLocked returns the pending operation for token if it exists and is
// unexpired, evicting it otherwise. Callers must hold m.mu.
func (m *Manager) liveLocked(token string) *PendingOperation {
	op, ok := m.pending[token]
	if !ok {
		return nil
	}
	if time.Now().After(op.ExpiresAt) {
		delete(m.pending, token)
		return nil
	}
	return op
}

func (m *Manager) sweepLocked(now time.Time) {
	for token, op := range m.pending {
		if now.After(op.ExpiresAt) {
			delete(m.pending, token)
		}
	}
}

// newToken draws 16 bytes from a cryptographically strong source. A
// guessable token would let one party trigger another's pending
// destructive operation.
func newToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; there is no safe fallback for a security token.
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// operationVerb extracts the leading verb from a verb_entity operation
// name, e.g. "terminate_employee" -> "terminate".
func operationVerb(operation string) string {
	if idx := strings.Index(operation, "_"); idx > 0 {
		return operation[:idx]
	}
	return operation
}
