package verification

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"listing-checkout/internal/model"
	"listing-checkout/internal/repository"
	"listing-checkout/internal/storage"
)

// Bucket is the object-storage bucket holding identity documents.
const Bucket = "verifications"

type SlotID string

const (
	SlotFront  SlotID = "front"
	SlotBack   SlotID = "back"
	SlotSelfie SlotID = "selfie"
)

// slotOrder is also the upload order.
var slotOrder = []SlotID{SlotFront, SlotBack, SlotSelfie}

var slotInfo = map[SlotID][2]string{
	SlotFront:  {"Documento (frente)", "Foto nítida del frente de tu documento de identidad"},
	SlotBack:   {"Documento (reverso)", "Foto nítida del reverso de tu documento de identidad"},
	SlotSelfie: {"Selfie", "Selfie sosteniendo tu documento junto a tu cara"},
}

// Slot is one required document capture.
type Slot struct {
	ID          SlotID `json:"id"`
	Title       string `json:"title"`
	Instruction string `json:"instruction"`
	Bound       bool   `json:"bound"`
	Preview     string `json:"preview,omitempty"`

	file []byte
}

var (
	ErrAuthRequired         = errors.New("sign-in required")
	ErrIncompleteSubmission = errors.New("all three documents are required")
	ErrUnknownSlot          = errors.New("unknown document slot")
)

// UploadError reports a failed storage upload. Remaining uploads are
// aborted and no verification record is created.
type UploadError struct {
	Slot SlotID
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s document: %v", e.Slot, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// RecordInsertError reports a failed verification-record insert after all
// uploads already succeeded.
type RecordInsertError struct {
	Err error
}

func (e *RecordInsertError) Error() string {
	return fmt.Sprintf("register verification: %v", e.Err)
}

func (e *RecordInsertError) Unwrap() error {
	return e.Err
}

// Orchestrator manages the three document slots per buyer and turns them
// into exactly one pending verification record. Uploads run sequentially
// in slot order; on any failure the objects uploaded so far in the same
// submission are deleted again before the error is surfaced, so either a
// complete record exists or storage is left clean.
type Orchestrator struct {
	store   storage.ObjectStore
	records repository.VerificationRepository
	log     *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	slots map[string]map[SlotID]*Slot
}

func NewOrchestrator(store storage.ObjectStore, records repository.VerificationRepository, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:   store,
		records: records,
		log:     log,
		now:     time.Now,
		slots:   make(map[string]map[SlotID]*Slot),
	}
}

// Slots returns the buyer's three slots in capture order.
func (o *Orchestrator) Slots(userID string) []*Slot {
	o.mu.Lock()
	defer o.mu.Unlock()

	user := o.userSlots(userID)
	out := make([]*Slot, 0, len(slotOrder))
	for _, id := range slotOrder {
		copied := *user[id]
		copied.file = nil
		out = append(out, &copied)
	}
	return out
}

// BindFile replaces the slot's file and preview. Any payload is accepted;
// no type or size validation happens here.
func (o *Orchestrator) BindFile(userID string, slot SlotID, data []byte) (*Slot, error) {
	if _, ok := slotInfo[slot]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.userSlots(userID)[slot]
	s.file = append([]byte(nil), data...)
	s.Bound = true
	s.Preview = previewDataURL(data)

	copied := *s
	copied.file = nil
	return &copied, nil
}

// Submit uploads the three documents and records the verification. The
// record is created exactly once and only when every upload succeeded.
func (o *Orchestrator) Submit(ctx context.Context, ownerID string) (*model.VerificationDocument, error) {
	if ownerID == "" {
		return nil, ErrAuthRequired
	}

	o.mu.Lock()
	user := o.userSlots(ownerID)
	files := make(map[SlotID][]byte, len(slotOrder))
	for _, id := range slotOrder {
		if !user[id].Bound {
			o.mu.Unlock()
			return nil, ErrIncompleteSubmission
		}
		files[id] = user[id].file
	}
	o.mu.Unlock()

	ts := o.now().UnixMilli()
	paths := make(map[SlotID]string, len(slotOrder))
	var uploaded []string

	for _, id := range slotOrder {
		key := fmt.Sprintf("verification/%s/%s_%d", ownerID, id, ts)
		path, err := o.store.Upload(ctx, Bucket, key, files[id])
		if err != nil {
			o.compensate(ctx, uploaded)
			return nil, &UploadError{Slot: id, Err: err}
		}
		paths[id] = path
		uploaded = append(uploaded, path)
	}

	doc := &model.VerificationDocument{
		UserID:            ownerID,
		DocumentFrontURL:  o.store.PublicURL(Bucket, paths[SlotFront]),
		DocumentBackURL:   o.store.PublicURL(Bucket, paths[SlotBack]),
		DocumentSelfieURL: o.store.PublicURL(Bucket, paths[SlotSelfie]),
		Status:            model.VerificationPending,
	}
	if err := o.records.Create(ctx, doc); err != nil {
		o.compensate(ctx, uploaded)
		return nil, &RecordInsertError{Err: err}
	}

	o.mu.Lock()
	delete(o.slots, ownerID)
	o.mu.Unlock()

	return doc, nil
}

// compensate deletes the objects already uploaded in this submission.
// Best effort: a failed delete leaves the object orphaned and is only
// logged.
func (o *Orchestrator) compensate(ctx context.Context, uploaded []string) {
	for _, path := range uploaded {
		if err := o.store.Delete(ctx, Bucket, path); err != nil {
			o.log.Warn("orphaned verification object", zap.String("path", path), zap.Error(err))
		}
	}
}

func (o *Orchestrator) userSlots(userID string) map[SlotID]*Slot {
	user, ok := o.slots[userID]
	if !ok {
		user = make(map[SlotID]*Slot, len(slotOrder))
		for _, id := range slotOrder {
			info := slotInfo[id]
			user[id] = &Slot{ID: id, Title: info[0], Instruction: info[1]}
		}
		o.slots[userID] = user
	}
	return user
}

func previewDataURL(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
