package queries

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListProductsQueryHandler struct {
	db *gorm.DB
}

func NewListProductsQueryHandler(db *gorm.DB) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db}
}

func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]ProductView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			category,
			unit,
			is_active
		FROM products
		WHERE is_active OR NOT ?
		ORDER BY category, name
	`, query.ActiveOnly()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p  ProductView
			id uuid.UUID
		)
		if err = rows.Scan(&id, &p.Name, &p.Description, &p.Category, &p.Unit, &p.IsActive); err != nil {
			return nil, err
		}

		p.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
