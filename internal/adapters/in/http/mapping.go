package http

import (
	"time"

	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

var nowUTC = func() time.Time { return time.Now().UTC() }

func toDeliveryDTO(v queries.DeliveryView, now time.Time) servers.Delivery {
	return servers.Delivery{
		Id:                    v.ID.Bytes(),
		ClientId:              optionalID(v.ClientID),
		ClientName:            v.ClientName,
		ClientPhone:           v.ClientPhone,
		DeliveryAddress:       v.DeliveryAddress,
		PickupAddress:         optional(v.PickupAddress),
		Priority:              servers.Priority(v.Priority.String()),
		Instructions:          optional(v.Instructions),
		DriverId:              optionalID(v.DriverID),
		DriverName:            optional(v.DriverName),
		Status:                servers.DeliveryStatus(v.Status.String()),
		CreatedAt:             v.CreatedAt,
		EstimatedDeliveryTime: v.EstimatedDeliveryTime,
		MaxDeliveryTime:       v.MaxDeliveryTime,
		CompletedAt:           v.CompletedAt,
		IsOverdue:             v.IsOverdue(now),
		Items:                 toItemDTOs(v.Items),
		HidingSpot:            toHidingSpotDTO(v.HidingSpot),
	}
}

func toReportDTO(r queries.DeliveryReport) servers.DeliveryReport {
	return servers.DeliveryReport{
		DeliveryId:      r.DeliveryID.Bytes(),
		Status:          servers.DeliveryStatus(r.Status.String()),
		ClientName:      r.ClientName,
		DeliveryAddress: r.DeliveryAddress,
		DriverName:      optional(r.DriverName),
		Items:           toItemDTOs(r.Items),
		HidingSpot:      toHidingSpotDTO(r.HidingSpot),
		CompletedAt:     r.CompletedAt,
	}
}

func toItemDTOs(items []queries.DeliveryItemView) []servers.DeliveryItem {
	out := make([]servers.DeliveryItem, len(items))
	for i, item := range items {
		out[i] = servers.DeliveryItem{
			ProductId:   item.ProductID.Bytes(),
			ProductName: optional(item.ProductName),
			Unit:        optional(item.Unit),
			Quantity:    item.Quantity,
		}
	}
	return out
}

func toHidingSpotDTO(spot *queries.HidingSpotView) *servers.HidingSpot {
	if spot == nil {
		return nil
	}
	return &servers.HidingSpot{
		Id:                  spot.ID.Bytes(),
		PhotoUrl:            spot.PhotoURL,
		Latitude:            spot.Latitude,
		Longitude:           spot.Longitude,
		Description:         optional(spot.Description),
		DistanceFromAddress: spot.DistanceFromAddress,
		CreatedAt:           spot.CreatedAt,
	}
}

func toDriverDTO(d *driver.Driver) servers.Driver {
	return servers.Driver{
		Id:              d.ID().Bytes(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		Vehicle:         optional(d.Vehicle()),
		LicensePlate:    optional(d.LicensePlate()),
		IsAvailable:     d.IsAvailable(),
		TotalDeliveries: d.TotalDeliveries(),
	}
}

func toDriverSummaryDTO(v queries.DriverView) servers.DriverSummary {
	active := servers.ActiveDeliveries{
		Assigned:  v.Assigned,
		PickingUp: v.PickingUp,
		InTransit: v.InTransit,
		Total:     v.ActiveDeliveries(),
	}
	return servers.DriverSummary{
		Id:               v.ID.Bytes(),
		Name:             v.Name,
		Phone:            v.Phone,
		Vehicle:          optional(v.Vehicle),
		LicensePlate:     optional(v.LicensePlate),
		IsAvailable:      v.IsAvailable,
		TotalDeliveries:  v.TotalDeliveries,
		ActiveDeliveries: active,
	}
}

func toInventoryDTO(inv queries.DriverInventory) servers.DriverInventory {
	items := make([]servers.InventoryItem, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = servers.InventoryItem{
			ProductId:   item.ProductID.Bytes(),
			ProductName: optional(item.ProductName),
			Unit:        optional(item.Unit),
			Quantity:    item.Quantity,
		}
	}
	return servers.DriverInventory{
		DriverId:        inv.DriverID.Bytes(),
		DriverName:      inv.DriverName,
		IsAvailable:     inv.IsAvailable,
		TotalDeliveries: inv.TotalDeliveries,
		Items:           items,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	converted := id.Bytes()
	return &converted
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
