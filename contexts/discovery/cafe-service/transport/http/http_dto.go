package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCafeRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Website     string   `json:"website"`
	PhotoURL    string   `json:"photo_url"`
	Amenities   []string `json:"amenities"`
}

type UpdateCafeRequest struct {
	Description *string  `json:"description"`
	Website     *string  `json:"website"`
	PhotoURL    *string  `json:"photo_url"`
	Amenities   []string `json:"amenities"`
}

type HideCafeRequest struct {
	Reason string `json:"reason"`
}

type CafeDTO struct {
	CafeID      string   `json:"cafe_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Website     string   `json:"website,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type RatedCafeDTO struct {
	Cafe          CafeDTO `json:"cafe"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

type CreateCafeResponse struct {
	Cafe CafeDTO `json:"cafe"`
}

type GetCafeResponse struct {
	Cafe CafeDTO `json:"cafe"`
}

type UpdateCafeResponse struct {
	Cafe CafeDTO `json:"cafe"`
}

type ListCafesResponse struct {
	Items []CafeDTO `json:"items"`
}

type SearchCafesResponse struct {
	Items []RatedCafeDTO `json:"items"`
}
