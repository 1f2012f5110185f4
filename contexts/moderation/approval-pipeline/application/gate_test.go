package application

import (
	"errors"
	"testing"

	domainerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
)

func TestTriggerGateMissingSecret(t *testing.T) {
	gate := TriggerGate{}
	if err := gate.Authorize("anything"); !errors.Is(err, domainerrors.ErrCronNotConfigured) {
		t.Fatalf("expected cron not configured, got %v", err)
	}
}

func TestTriggerGateRejectsMismatch(t *testing.T) {
	gate := TriggerGate{Secret: "s3cret"}
	if err := gate.Authorize("wrong"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := gate.Authorize(""); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for empty token, got %v", err)
	}
}

func TestTriggerGateAdmitsMatch(t *testing.T) {
	gate := TriggerGate{Secret: "s3cret"}
	if err := gate.Authorize("s3cret"); err != nil {
		t.Fatalf("expected match to pass, got %v", err)
	}
}
