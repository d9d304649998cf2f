package ports

import (
	"context"

	"lastmile/internal/core/domain/model/client"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
)

type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error
	Update(ctx context.Context, aggregate *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany returns the products found among ids. Missing ids are skipped,
	// callers compare lengths to detect them.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)
}

type ClientRepository interface {
	Add(ctx context.Context, aggregate *client.Client) error
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)
}
