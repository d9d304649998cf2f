package queries

import (
	"context"

	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the delivery does not exist.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	views, err := loadDeliveryViews(ctx, h.db, "WHERE d.id = ?", query.DeliveryID().Bytes())
	if err != nil {
		return DeliveryView{}, err
	}
	if len(views) == 0 {
		return DeliveryView{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
	}

	return views[0], nil
}
