package commands

import (
	"fmt"
	"time"

	"cafescout/contexts/moderation/submission-service/domain/entities"
	"cafescout/internal/shared/events"
)

func newSubmissionEnvelope(
	eventID string,
	eventType string,
	submissionID string,
	occurredAt time.Time,
	payload map[string]any,
) (events.Envelope, error) {
	if eventID == "" || eventType == "" || submissionID == "" {
		return events.Envelope{}, fmt.Errorf("incomplete submission event: id=%q type=%q entity=%q", eventID, eventType, submissionID)
	}
	return events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "moderation/submission-service",
		OccurredAtUTC:  occurredAt.UTC(),
		CorrelationID:  eventID,
		EntityType:     "submission",
		EntityID:       submissionID,
		PayloadVersion: 1,
		Payload:        payload,
	}, nil
}

// approvedPayload carries the full listing so the discovery context can
// materialize the cafe without reaching back into this service's storage.
func approvedPayload(submission entities.Submission, decidedBy string, reason string, now time.Time) map[string]any {
	return map[string]any{
		"submission_id": submission.SubmissionID,
		"submitter_id":  submission.SubmitterID,
		"name":          submission.Name,
		"description":   submission.Description,
		"address":       submission.Address,
		"city":          submission.City,
		"latitude":      submission.Latitude,
		"longitude":     submission.Longitude,
		"website":       submission.Website,
		"photo_url":     submission.PhotoURL,
		"decided_by":    decidedBy,
		"reason":        reason,
		"approved_at":   now.UTC().Format(time.RFC3339),
	}
}
