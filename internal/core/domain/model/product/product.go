// Package product holds the catalogue entry a delivery item refers to.
// Products are never hard-deleted: deactivation hides them from new
// deliveries while keeping history intact.
package product

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const DefaultUnit = "unit"

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
)

type Product struct {
	id          kernel.UUID
	name        string
	description string
	category    string
	unit        string
	isActive    bool
	guard       guard.ConstructorGuard
}

// NewProduct creates an active product. An empty unit falls back to DefaultUnit.
func NewProduct(id kernel.UUID, name, description, category, unit string) (*Product, error) {
	return RestoreProduct(id, name, description, category, unit, true)
}

func RestoreProduct(id kernel.UUID, name, description, category, unit string, isActive bool) (*Product, error) {
	p := &Product{
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		unit:        strings.TrimSpace(unit),
		isActive:    isActive,
		guard:       guard.NewConstructorGuard(),
	}
	if p.unit == "" {
		p.unit = DefaultUnit
	}

	if err := errors.Join(p.setID(id), p.setName(name)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID     { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) Category() string    { return p.category }
func (p *Product) Unit() string        { return p.unit }
func (p *Product) IsActive() bool      { return p.isActive }

// Deactivate is the soft delete. It is idempotent.
func (p *Product) Deactivate() {
	p.isActive = false
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}
