// Package deliveryrepo maps the delivery aggregate onto the deliveries,
// delivery_items and hiding_spots tables.
package deliveryrepo

import (
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the deliveries row. Statuses and priorities are stored by
// wire name so the read side can select them without translation.
type DeliveryDTO struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ClientID              *uuid.UUID     `gorm:"type:uuid;index"`
	ClientName            string         `gorm:"type:varchar(255);not null"`
	ClientPhone           string         `gorm:"type:varchar(64);not null"`
	DeliveryAddress       string         `gorm:"type:text;not null"`
	PickupAddress         string         `gorm:"type:text"`
	Priority              string         `gorm:"type:varchar(16);not null"`
	Instructions          string         `gorm:"type:text"`
	DriverID              *uuid.UUID     `gorm:"type:uuid;index"`
	Status                string         `gorm:"type:varchar(16);not null;index"`
	CreatedAt             time.Time      `gorm:"not null"`
	EstimatedDeliveryTime time.Time      `gorm:"not null"`
	MaxDeliveryTime       time.Time      `gorm:"not null;index"`
	CompletedAt           *time.Time
	Items                 []ItemDTO      `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	HidingSpot            *HidingSpotDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type ItemDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Quantity   int       `gorm:"type:int;not null"`
}

func (ItemDTO) TableName() string {
	return "delivery_items"
}

// HidingSpotDTO is unique per delivery; the unique index is what rejects a
// second concurrent registration.
type HidingSpotDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PhotoURL            string    `gorm:"type:text;not null"`
	Latitude            float64   `gorm:"type:double precision;not null"`
	Longitude           float64   `gorm:"type:double precision;not null"`
	Description         string    `gorm:"type:text"`
	DistanceFromAddress float64   `gorm:"type:double precision;not null"`
	CreatedAt           time.Time `gorm:"not null"`
}

func (HidingSpotDTO) TableName() string {
	return "hiding_spots"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	id := d.ID().Bytes()
	details := d.Details()

	items := make([]ItemDTO, 0, len(d.Items()))
	for _, item := range d.Items() {
		items = append(items, ItemDTO{
			DeliveryID: id,
			ProductID:  item.ProductID().Bytes(),
			Quantity:   item.Quantity(),
		})
	}

	var spot *HidingSpotDTO
	if hs := d.HidingSpot(); hs != nil {
		dto := hidingSpotFromDomain(id, hs)
		spot = &dto
	}

	return DeliveryDTO{
		ID:                    id,
		ClientID:              optionalID(details.ClientID()),
		ClientName:            details.ClientName(),
		ClientPhone:           details.ClientPhone(),
		DeliveryAddress:       details.DeliveryAddress(),
		PickupAddress:         details.PickupAddress(),
		Priority:              details.Priority().String(),
		Instructions:          details.Instructions(),
		DriverID:              optionalID(d.DriverID()),
		Status:                d.Status().String(),
		CreatedAt:             d.CreatedAt(),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime(),
		MaxDeliveryTime:       d.MaxDeliveryTime(),
		CompletedAt:           d.CompletedAt(),
		Items:                 items,
		HidingSpot:            spot,
	}
}

func hidingSpotFromDomain(deliveryID uuid.UUID, hs *delivery.HidingSpot) HidingSpotDTO {
	return HidingSpotDTO{
		ID:                  hs.ID().Bytes(),
		DeliveryID:          deliveryID,
		PhotoURL:            hs.PhotoURL(),
		Latitude:            hs.Location().Latitude(),
		Longitude:           hs.Location().Longitude(),
		Description:         hs.Description(),
		DistanceFromAddress: hs.DistanceFromAddress(),
		CreatedAt:           hs.CreatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	details, err := detailsToDomain(dto)
	if err != nil {
		return nil, err
	}

	items := make([]delivery.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := delivery.NewItem(productID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	driverID, err := toOptionalID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var spot *delivery.HidingSpot
	if dto.HidingSpot != nil {
		if spot, err = hidingSpotToDomain(*dto.HidingSpot); err != nil {
			return nil, err
		}
	}

	return delivery.RestoreDelivery(
		id,
		details,
		items,
		driverID,
		status,
		dto.CreatedAt,
		dto.EstimatedDeliveryTime,
		dto.MaxDeliveryTime,
		dto.CompletedAt,
		spot,
	)
}

func detailsToDomain(dto DeliveryDTO) (delivery.Details, error) {
	details, err := delivery.NewDetails(dto.ClientName, dto.ClientPhone, dto.DeliveryAddress)
	if err != nil {
		return delivery.Details{}, err
	}

	priority, err := delivery.ParsePriority(dto.Priority)
	if err != nil {
		return delivery.Details{}, err
	}
	if details, err = details.WithPriority(priority); err != nil {
		return delivery.Details{}, err
	}

	clientID, err := toOptionalID(dto.ClientID)
	if err != nil {
		return delivery.Details{}, err
	}

	return details.
		WithPickupAddress(dto.PickupAddress).
		WithClientID(clientID).
		WithInstructions(dto.Instructions), nil
}

func hidingSpotToDomain(dto HidingSpotDTO) (*delivery.HidingSpot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewCoordinates(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreHidingSpot(id, dto.PhotoURL, location, dto.Description, dto.DistanceFromAddress, dto.CreatedAt)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func toOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
