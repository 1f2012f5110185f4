package cafes

import (
	"context"
	"errors"
	"fmt"

	cafequeries "cafescout/contexts/discovery/cafe-service/application/queries"
	cafeentities "cafescout/contexts/discovery/cafe-service/domain/entities"
	cafeerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	domainerrors "cafescout/contexts/discovery/rating-service/domain/errors"
)

// Checker bridges the rating service to the cafe catalog through its
// query layer, keeping the contexts decoupled at the storage level.
type Checker struct {
	Queries cafequeries.QueryUseCase
}

func (c Checker) CafeRateable(ctx context.Context, cafeID string) error {
	cafe, err := c.Queries.GetCafe(ctx, cafeID)
	if err != nil {
		if errors.Is(err, cafeerrors.ErrCafeNotFound) {
			return fmt.Errorf("%w: %s", domainerrors.ErrCafeNotRateable, cafeID)
		}
		return err
	}
	if cafe.Status != cafeentities.CafeStatusActive {
		return fmt.Errorf("%w: cafe is %s", domainerrors.ErrCafeNotRateable, cafe.Status)
	}
	return nil
}
