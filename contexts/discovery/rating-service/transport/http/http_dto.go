package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RateCafeRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

type RatingDTO struct {
	RatingID  string `json:"rating_id"`
	CafeID    string `json:"cafe_id"`
	UserID    string `json:"user_id"`
	Score     int    `json:"score"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type RateCafeResponse struct {
	Rating RatingDTO `json:"rating"`
}

type ListRatingsResponse struct {
	Items []RatingDTO `json:"items"`
}

type RatingSummaryResponse struct {
	CafeID       string  `json:"cafe_id"`
	AverageScore float64 `json:"average_score"`
	RatingCount  int     `json:"rating_count"`
}
