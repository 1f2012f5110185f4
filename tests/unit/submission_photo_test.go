package unit

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	submissionservice "cafescout/contexts/moderation/submission-service"
	"cafescout/contexts/moderation/submission-service/adapters/memory"
	domainerrors "cafescout/contexts/moderation/submission-service/domain/errors"
	"cafescout/internal/platform/objectstore"
)

func photoFixture() (submissionservice.Module, *objectstore.MemoryStore) {
	store := memory.NewStore(nil)
	photos := objectstore.NewMemoryStore()
	module := submissionservice.NewModule(submissionservice.Dependencies{
		Repository: store,
		Outbox:     store,
		Photos:     photos,
		Clock:      store,
		IDGen:      store,
	})
	module.Store = store
	return module, photos
}

func TestAttachPhotoStoresAndLinks(t *testing.T) {
	module, photos := photoFixture()

	created, err := module.Handler.CreateSubmissionHandler(context.Background(), "user-1", validSubmission())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	data := bytes.Repeat([]byte{0xFF}, 1024)
	resp, err := module.Handler.AttachPhotoHandler(context.Background(), "user-1", created.Submission.SubmissionID, "image/jpeg", data)
	if err != nil {
		t.Fatalf("attach photo failed: %v", err)
	}
	if !strings.HasSuffix(resp.Submission.PhotoURL, "/photo.jpg") {
		t.Fatalf("expected jpg photo url, got %q", resp.Submission.PhotoURL)
	}

	stored, ok := photos.Object("submissions/" + created.Submission.SubmissionID + "/photo.jpg")
	if !ok || len(stored) != len(data) {
		t.Fatalf("expected photo bytes stored, ok=%v len=%d", ok, len(stored))
	}
}

func TestAttachPhotoOwnerOnly(t *testing.T) {
	module, _ := photoFixture()

	created, err := module.Handler.CreateSubmissionHandler(context.Background(), "user-1", validSubmission())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = module.Handler.AttachPhotoHandler(context.Background(), "user-2", created.Submission.SubmissionID, "image/png", []byte{1})
	if !errors.Is(err, domainerrors.ErrUnauthorizedActor) {
		t.Fatalf("expected unauthorized actor, got %v", err)
	}
}

func TestAttachPhotoValidation(t *testing.T) {
	module, _ := photoFixture()

	created, err := module.Handler.CreateSubmissionHandler(context.Background(), "user-1", validSubmission())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created.Submission.SubmissionID

	_, err = module.Handler.AttachPhotoHandler(context.Background(), "user-1", id, "image/gif", []byte{1})
	if !errors.Is(err, domainerrors.ErrUnsupportedPhotoType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}

	_, err = module.Handler.AttachPhotoHandler(context.Background(), "user-1", id, "image/jpeg", bytes.Repeat([]byte{1}, (5<<20)+1))
	if !errors.Is(err, domainerrors.ErrPhotoTooLarge) {
		t.Fatalf("expected photo too large, got %v", err)
	}
}
