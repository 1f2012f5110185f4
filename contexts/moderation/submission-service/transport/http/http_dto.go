package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateSubmissionRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Website     string  `json:"website"`
}

type ReviewSubmissionRequest struct {
	Reason string `json:"reason"`
}

type SubmissionDTO struct {
	SubmissionID   string  `json:"submission_id"`
	SubmitterID    string  `json:"submitter_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Website        string  `json:"website,omitempty"`
	PhotoURL       string  `json:"photo_url,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	DecidedAt      string  `json:"decided_at,omitempty"`
	DecidedBy      string  `json:"decided_by,omitempty"`
	DecisionReason string  `json:"decision_reason,omitempty"`
}

type CreateSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type GetSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionDTO `json:"items"`
}

type AttachPhotoResponse struct {
	Submission SubmissionDTO `json:"submission"`
}
