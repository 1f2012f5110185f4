package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"cafescout/contexts/discovery/cafe-service/application/commands"
	"cafescout/contexts/discovery/cafe-service/application/queries"
	"cafescout/contexts/discovery/cafe-service/domain/entities"
	"cafescout/contexts/discovery/cafe-service/ports"
	httptransport "cafescout/contexts/discovery/cafe-service/transport/http"
)

type Handler struct {
	CreateCafe commands.CreateCafeUseCase
	UpdateCafe commands.UpdateCafeUseCase
	Queries    queries.QueryUseCase
	Logger     *slog.Logger
}

func (h Handler) CreateCafeHandler(ctx context.Context, req httptransport.CreateCafeRequest) (httptransport.CreateCafeResponse, error) {
	item, err := h.CreateCafe.Execute(ctx, commands.CreateCafeCommand{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Website:     req.Website,
		PhotoURL:    req.PhotoURL,
		Amenities:   req.Amenities,
	})
	if err != nil {
		return httptransport.CreateCafeResponse{}, err
	}
	return httptransport.CreateCafeResponse{Cafe: mapCafe(item)}, nil
}

func (h Handler) UpdateCafeHandler(
	ctx context.Context,
	cafeID string,
	req httptransport.UpdateCafeRequest,
) (httptransport.UpdateCafeResponse, error) {
	item, err := h.UpdateCafe.Execute(ctx, commands.UpdateCafeCommand{
		CafeID:      cafeID,
		Description: req.Description,
		Website:     req.Website,
		PhotoURL:    req.PhotoURL,
		Amenities:   req.Amenities,
	})
	if err != nil {
		return httptransport.UpdateCafeResponse{}, err
	}
	return httptransport.UpdateCafeResponse{Cafe: mapCafe(item)}, nil
}

func (h Handler) HideCafeHandler(ctx context.Context, cafeID string, req httptransport.HideCafeRequest) error {
	return h.UpdateCafe.Hide(ctx, commands.HideCafeCommand{
		CafeID: cafeID,
		Reason: req.Reason,
	})
}

func (h Handler) GetCafeHandler(ctx context.Context, cafeID string) (httptransport.GetCafeResponse, error) {
	item, err := h.Queries.GetCafe(ctx, cafeID)
	if err != nil {
		return httptransport.GetCafeResponse{}, err
	}
	return httptransport.GetCafeResponse{Cafe: mapCafe(item)}, nil
}

func (h Handler) ListCafesHandler(
	ctx context.Context,
	city string,
	amenity string,
	status string,
) (httptransport.ListCafesResponse, error) {
	items, err := h.Queries.ListCafes(ctx, queries.ListCafesQuery{
		City:    city,
		Amenity: amenity,
		Status:  status,
	})
	if err != nil {
		return httptransport.ListCafesResponse{}, err
	}
	result := make([]httptransport.CafeDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCafe(item))
	}
	return httptransport.ListCafesResponse{Items: result}, nil
}

func (h Handler) SearchCafesHandler(ctx context.Context, query queries.SearchCafesQuery) (httptransport.SearchCafesResponse, error) {
	items, err := h.Queries.SearchCafes(ctx, query)
	if err != nil {
		return httptransport.SearchCafesResponse{}, err
	}
	result := make([]httptransport.RatedCafeDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapRatedCafe(item))
	}
	return httptransport.SearchCafesResponse{Items: result}, nil
}

func mapCafe(item entities.Cafe) httptransport.CafeDTO {
	return httptransport.CafeDTO{
		CafeID:      item.CafeID,
		Name:        item.Name,
		Description: item.Description,
		Address:     item.Address,
		City:        item.City,
		Latitude:    item.Latitude,
		Longitude:   item.Longitude,
		Website:     item.Website,
		PhotoURL:    item.PhotoURL,
		Amenities:   item.Amenities,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapRatedCafe(item ports.RatedCafe) httptransport.RatedCafeDTO {
	return httptransport.RatedCafeDTO{
		Cafe:          mapCafe(item.Cafe),
		AverageRating: item.AverageRating,
		RatingCount:   item.RatingCount,
	}
}
