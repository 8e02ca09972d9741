package repository

import (
	"context"
	"sync"

	"listing-checkout/internal/model"
)

// MemorySessionRepository is an in-memory SessionRepository used by tests.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]model.CheckoutSession
	saves    int
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]model.CheckoutSession),
	}
}

func (r *MemorySessionRepository) Load(ctx context.Context, userID string) (*model.CheckoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *model.CheckoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.UserID] = *session
	r.saves++
	return nil
}

func (r *MemorySessionRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
	return nil
}

// SaveCalls reports how many times Save was invoked.
func (r *MemorySessionRepository) SaveCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// MemoryVerificationRepository is an in-memory VerificationRepository used
// by tests. CreateErr, when set, makes Create fail without recording a row.
type MemoryVerificationRepository struct {
	mu        sync.Mutex
	docs      []model.VerificationDocument
	CreateErr error
}

func NewMemoryVerificationRepository() *MemoryVerificationRepository {
	return &MemoryVerificationRepository{}
}

func (r *MemoryVerificationRepository) Create(ctx context.Context, doc *model.VerificationDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	doc.ID = uint(len(r.docs) + 1)
	r.docs = append(r.docs, *doc)
	return nil
}

// Docs returns a copy of the inserted rows.
func (r *MemoryVerificationRepository) Docs() []model.VerificationDocument {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.VerificationDocument, len(r.docs))
	copy(out, r.docs)
	return out
}
