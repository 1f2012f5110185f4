package application

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	domainerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
)

// TriggerGate authenticates pipeline invocations against a shared secret.
// The secret is injected at construction; the gate never reads process
// environment per request.
type TriggerGate struct {
	Secret string
	Logger *slog.Logger
}

// Authorize admits exactly one run when the presented token matches the
// configured secret. A missing server secret is an operational
// misconfiguration, not an authentication failure, and is logged as such.
func (g TriggerGate) Authorize(token string) error {
	logger := ResolveLogger(g.Logger)
	if strings.TrimSpace(g.Secret) == "" {
		logger.Error("cron trigger secret missing",
			"event", "approval_trigger_misconfigured",
			"module", "moderation/approval-pipeline",
			"layer", "application",
		)
		return domainerrors.ErrCronNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(g.Secret)) != 1 {
		logger.Warn("cron trigger token rejected",
			"event", "approval_trigger_unauthorized",
			"module", "moderation/approval-pipeline",
			"layer", "application",
		)
		return domainerrors.ErrUnauthorized
	}
	return nil
}
