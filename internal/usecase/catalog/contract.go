package catalog

import (
	"context"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// CategoryReader lists the category tree.
type CategoryReader interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// BrandReader lists brands.
type BrandReader interface {
	Brands(ctx context.Context) ([]domain.Brand, error)
}
