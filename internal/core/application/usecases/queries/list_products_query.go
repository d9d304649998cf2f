package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrListProductsQueryIsNotConstructed = errors.New(
	"ListProductsQuery must be created via NewListProductsQuery constructor",
)

// ListProductsQuery lists the catalogue sorted by category and name.
type ListProductsQuery struct {
	activeOnly bool
	guard      guard.ConstructorGuard
}

func NewListProductsQuery(activeOnly bool) ListProductsQuery {
	return ListProductsQuery{activeOnly: activeOnly, guard: guard.NewConstructorGuard()}
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

func (q ListProductsQuery) ActiveOnly() bool {
	return q.activeOnly
}

type ProductView struct {
	ID          kernel.UUID
	Name        string
	Description string
	Category    string
	Unit        string
	IsActive    bool
}
