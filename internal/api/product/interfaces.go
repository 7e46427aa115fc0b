package product

import (
	"context"

	"github.com/allwaveav/boq-backend/internal/entity"
)

type ProductUsecase interface {
	FetchDetails(ctx context.Context, productName string) (*entity.ProductDetails, error)
}
