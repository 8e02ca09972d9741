package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"listing-checkout/internal/model"
	"listing-checkout/internal/repository"
	"listing-checkout/internal/storage"
)

func newTestOrchestrator(store *storage.MemoryStore, records *repository.MemoryVerificationRepository) *Orchestrator {
	o := NewOrchestrator(store, records, zap.NewNop())
	o.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return o
}

func bindAll(t *testing.T, o *Orchestrator, userID string) {
	t.Helper()
	for _, slot := range []SlotID{SlotFront, SlotBack, SlotSelfie} {
		if _, err := o.BindFile(userID, slot, []byte("doc-"+string(slot))); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSubmit_Unauthenticated(t *testing.T) {
	store := storage.NewMemoryStore()
	o := newTestOrchestrator(store, repository.NewMemoryVerificationRepository())

	_, err := o.Submit(context.Background(), "")
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	if len(store.UploadCalls()) != 0 {
		t.Fatal("no uploads may happen without a session")
	}
}

func TestSubmit_IncompleteMakesNoStorageCalls(t *testing.T) {
	store := storage.NewMemoryStore()
	o := newTestOrchestrator(store, repository.NewMemoryVerificationRepository())

	if _, err := o.BindFile("u1", SlotFront, []byte("front")); err != nil {
		t.Fatal(err)
	}
	if _, err := o.BindFile("u1", SlotBack, []byte("back")); err != nil {
		t.Fatal(err)
	}

	_, err := o.Submit(context.Background(), "u1")
	if !errors.Is(err, ErrIncompleteSubmission) {
		t.Fatalf("err = %v, want ErrIncompleteSubmission", err)
	}
	if len(store.UploadCalls()) != 0 {
		t.Fatalf("expected zero storage calls, got %v", store.UploadCalls())
	}
}

func TestSubmit_AllUploadsSucceed(t *testing.T) {
	store := storage.NewMemoryStore()
	records := repository.NewMemoryVerificationRepository()
	o := newTestOrchestrator(store, records)
	bindAll(t, o, "u1")

	doc, err := o.Submit(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	docs := records.Docs()
	if len(docs) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(docs))
	}
	if docs[0].Status != model.VerificationPending {
		t.Fatalf("status = %q, want pending", docs[0].Status)
	}
	for _, url := range []string{doc.DocumentFrontURL, doc.DocumentBackURL, doc.DocumentSelfieURL} {
		if url == "" {
			t.Fatal("all three document URLs must be populated")
		}
	}

	uploads := store.UploadCalls()
	want := []string{
		"verification/u1/front_1700000000000",
		"verification/u1/back_1700000000000",
		"verification/u1/selfie_1700000000000",
	}
	if len(uploads) != len(want) {
		t.Fatalf("uploads = %v", uploads)
	}
	for i, key := range want {
		if uploads[i] != key {
			t.Fatalf("upload[%d] = %q, want %q", i, uploads[i], key)
		}
	}
}

func TestSubmit_SecondUploadFailureCompensatesFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWhenContains = "back_"
	records := repository.NewMemoryVerificationRepository()
	o := newTestOrchestrator(store, records)
	bindAll(t, o, "u1")

	_, err := o.Submit(context.Background(), "u1")
	var uerr *UploadError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UploadError", err)
	}
	if uerr.Slot != SlotBack {
		t.Fatalf("failed slot = %q, want back", uerr.Slot)
	}
	if len(records.Docs()) != 0 {
		t.Fatal("no record may be inserted after a failed upload")
	}

	// The selfie upload was never attempted.
	for _, key := range store.UploadCalls() {
		if strings.Contains(key, "selfie_") {
			t.Fatal("later uploads must be aborted after a failure")
		}
	}

	// The front object was deleted again by compensation.
	if store.ObjectCount() != 0 {
		t.Fatalf("expected clean storage, %d object(s) remain", store.ObjectCount())
	}
	if len(store.DeleteCalls()) != 1 {
		t.Fatalf("deletes = %v, want the front object only", store.DeleteCalls())
	}
}

func TestSubmit_RecordInsertFailureCompensatesAllUploads(t *testing.T) {
	store := storage.NewMemoryStore()
	records := repository.NewMemoryVerificationRepository()
	records.CreateErr = fmt.Errorf("records store down")
	o := newTestOrchestrator(store, records)
	bindAll(t, o, "u1")

	_, err := o.Submit(context.Background(), "u1")
	var rerr *RecordInsertError
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %v, want RecordInsertError", err)
	}
	if store.ObjectCount() != 0 {
		t.Fatalf("expected clean storage, %d object(s) remain", store.ObjectCount())
	}
}

func TestBindFile_ReplacesPreview(t *testing.T) {
	o := newTestOrchestrator(storage.NewMemoryStore(), repository.NewMemoryVerificationRepository())

	slot, err := o.BindFile("u1", SlotFront, []byte("first"))
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Bound || slot.Preview == "" {
		t.Fatalf("slot = %+v, want bound with preview", slot)
	}

	replaced, err := o.BindFile("u1", SlotFront, []byte("second, different payload"))
	if err != nil {
		t.Fatal(err)
	}
	if replaced.Preview == slot.Preview {
		t.Fatal("rebinding must replace the preview")
	}
	if !strings.HasPrefix(replaced.Preview, "data:") {
		t.Fatalf("preview = %q, want data URL", replaced.Preview)
	}
}

func TestBindFile_UnknownSlot(t *testing.T) {
	o := newTestOrchestrator(storage.NewMemoryStore(), repository.NewMemoryVerificationRepository())

	if _, err := o.BindFile("u1", SlotID("passport"), []byte("x")); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("err = %v, want ErrUnknownSlot", err)
	}
}

func TestSlots_OrderAndState(t *testing.T) {
	o := newTestOrchestrator(storage.NewMemoryStore(), repository.NewMemoryVerificationRepository())

	slots := o.Slots("u1")
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[0].ID != SlotFront || slots[1].ID != SlotBack || slots[2].ID != SlotSelfie {
		t.Fatalf("slot order = %v", []SlotID{slots[0].ID, slots[1].ID, slots[2].ID})
	}
	for _, s := range slots {
		if s.Bound {
			t.Fatalf("slot %s must start unbound", s.ID)
		}
		if s.Title == "" || s.Instruction == "" {
			t.Fatalf("slot %s missing texts", s.ID)
		}
	}
}
