// Package servers provides primitives to interact with the openapi HTTP API.
//
// The layout follows oapi-codegen's echo server output for api/openapi.yaml.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DeliveryStatus defines model for DeliveryStatus.
type DeliveryStatus string

const (
	DeliveryStatusPENDING   DeliveryStatus = "PENDING"
	DeliveryStatusASSIGNED  DeliveryStatus = "ASSIGNED"
	DeliveryStatusPICKINGUP DeliveryStatus = "PICKING_UP"
	DeliveryStatusINTRANSIT DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusHIDDEN    DeliveryStatus = "HIDDEN"
	DeliveryStatusDELIVERED DeliveryStatus = "DELIVERED"
	DeliveryStatusCANCELLED DeliveryStatus = "CANCELLED"
	DeliveryStatusPROBLEM   DeliveryStatus = "PROBLEM"
)

// Priority defines model for Priority.
type Priority string

const (
	PriorityLOW    Priority = "LOW"
	PriorityNORMAL Priority = "NORMAL"
	PriorityHIGH   Priority = "HIGH"
	PriorityURGENT Priority = "URGENT"
)

// ActiveDeliveries defines model for ActiveDeliveries.
type ActiveDeliveries struct {
	Assigned  int `json:"assigned"`
	InTransit int `json:"inTransit"`
	PickingUp int `json:"pickingUp"`
	Total     int `json:"total"`
}

// AssignDriverRequest defines model for AssignDriverRequest.
type AssignDriverRequest struct {
	ConfirmReassign *bool              `json:"confirmReassign,omitempty"`
	DriverId        openapi_types.UUID `json:"driverId"`
}

// Availability defines model for Availability.
type Availability struct {
	IsAvailable bool `json:"isAvailable"`
}

// Client defines model for Client.
type Client struct {
	Address        *string            `json:"address,omitempty"`
	Id             openapi_types.UUID `json:"id"`
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	TelegramChatId *string            `json:"telegramChatId,omitempty"`
}

// Delivery defines model for Delivery.
type Delivery struct {
	ClientId              *openapi_types.UUID `json:"clientId,omitempty"`
	ClientName            string              `json:"clientName"`
	ClientPhone           string              `json:"clientPhone"`
	CompletedAt           *time.Time          `json:"completedAt,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	DeliveryAddress       string              `json:"deliveryAddress"`
	DriverId              *openapi_types.UUID `json:"driverId,omitempty"`
	DriverName            *string             `json:"driverName,omitempty"`
	EstimatedDeliveryTime time.Time           `json:"estimatedDeliveryTime"`
	HidingSpot            *HidingSpot         `json:"hidingSpot,omitempty"`
	Id                    openapi_types.UUID  `json:"id"`
	Instructions          *string             `json:"instructions,omitempty"`
	IsOverdue             bool                `json:"isOverdue"`
	Items                 []DeliveryItem      `json:"items"`
	MaxDeliveryTime       time.Time           `json:"maxDeliveryTime"`
	PickupAddress         *string             `json:"pickupAddress,omitempty"`
	Priority              Priority            `json:"priority"`
	Status                DeliveryStatus      `json:"status"`
}

// DeliveryItem defines model for DeliveryItem.
type DeliveryItem struct {
	ProductId   openapi_types.UUID `json:"productId"`
	ProductName *string            `json:"productName,omitempty"`
	Quantity    int                `json:"quantity"`
	Unit        *string            `json:"unit,omitempty"`
}

// DeliveryReport defines model for DeliveryReport.
type DeliveryReport struct {
	ClientName      string             `json:"clientName"`
	CompletedAt     *time.Time         `json:"completedAt,omitempty"`
	DeliveryAddress string             `json:"deliveryAddress"`
	DeliveryId      openapi_types.UUID `json:"deliveryId"`
	DriverName      *string            `json:"driverName,omitempty"`
	HidingSpot      *HidingSpot        `json:"hidingSpot,omitempty"`
	Items           []DeliveryItem     `json:"items"`
	Status          DeliveryStatus     `json:"status"`
}

// Driver defines model for Driver.
type Driver struct {
	Id              openapi_types.UUID `json:"id"`
	IsAvailable     bool               `json:"isAvailable"`
	LicensePlate    *string            `json:"licensePlate,omitempty"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	TotalDeliveries int                `json:"totalDeliveries"`
	Vehicle         *string            `json:"vehicle,omitempty"`
}

// DriverSummary defines model for DriverSummary.
type DriverSummary struct {
	ActiveDeliveries ActiveDeliveries   `json:"activeDeliveries"`
	Id               openapi_types.UUID `json:"id"`
	IsAvailable      bool               `json:"isAvailable"`
	LicensePlate     *string            `json:"licensePlate,omitempty"`
	Name             string             `json:"name"`
	Phone            string             `json:"phone"`
	TotalDeliveries  int                `json:"totalDeliveries"`
	Vehicle          *string            `json:"vehicle,omitempty"`
}

// DriverInventory defines model for DriverInventory.
type DriverInventory struct {
	DriverId        openapi_types.UUID `json:"driverId"`
	DriverName      string             `json:"driverName"`
	IsAvailable     bool               `json:"isAvailable"`
	Items           []InventoryItem    `json:"items"`
	TotalDeliveries int                `json:"totalDeliveries"`
}

// Error defines model for Error.
type Error struct {
	Available *int     `json:"available,omitempty"`
	Code      string   `json:"code"`
	Distance  *float64 `json:"distance,omitempty"`
	Message   string   `json:"message"`
	ProductId *string  `json:"productId,omitempty"`
	Requested *int     `json:"requested,omitempty"`
}

// HidingSpot defines model for HidingSpot.
type HidingSpot struct {
	CreatedAt           time.Time          `json:"createdAt"`
	Description         *string            `json:"description,omitempty"`
	DistanceFromAddress float64            `json:"distanceFromAddress"`
	Id                  openapi_types.UUID `json:"id"`
	Latitude            float64            `json:"latitude"`
	Longitude           float64            `json:"longitude"`
	PhotoUrl            string             `json:"photoUrl"`
}

// HidingSpotSubmission defines model for HidingSpotSubmission.
type HidingSpotSubmission struct {
	Description *string `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// Photo Image as a data URI, e.g. data:image/jpeg;base64,...
	Photo string `json:"photo"`
}

// InventoryItem defines model for InventoryItem.
type InventoryItem struct {
	ProductId   openapi_types.UUID `json:"productId"`
	ProductName *string            `json:"productName,omitempty"`
	Quantity    int                `json:"quantity"`
	Unit        *string            `json:"unit,omitempty"`
}

// NewClient defines model for NewClient.
type NewClient struct {
	Address        *string `json:"address,omitempty"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	TelegramChatId *string `json:"telegramChatId,omitempty"`
}

// NewDelivery defines model for NewDelivery.
type NewDelivery struct {
	ClientId        *openapi_types.UUID `json:"clientId,omitempty"`
	ClientName      string              `json:"clientName"`
	ClientPhone     string              `json:"clientPhone"`
	DeliveryAddress string              `json:"deliveryAddress"`
	DriverId        *openapi_types.UUID `json:"driverId,omitempty"`
	Instructions    *string             `json:"instructions,omitempty"`
	Items           []NewDeliveryItem   `json:"items"`
	PickupAddress   *string             `json:"pickupAddress,omitempty"`
	Priority        *Priority           `json:"priority,omitempty"`
}

// NewDeliveryItem defines model for NewDeliveryItem.
type NewDeliveryItem struct {
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

// NewDriver defines model for NewDriver.
type NewDriver struct {
	LicensePlate *string `json:"licensePlate,omitempty"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Vehicle      *string `json:"vehicle,omitempty"`
}

// NewProduct defines model for NewProduct.
type NewProduct struct {
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Name        string  `json:"name"`
	Unit        *string `json:"unit,omitempty"`
}

// Product defines model for Product.
type Product struct {
	Category    *string            `json:"category,omitempty"`
	Description *string            `json:"description,omitempty"`
	Id          openapi_types.UUID `json:"id"`
	IsActive    bool               `json:"isActive"`
	Name        string             `json:"name"`
	Unit        string             `json:"unit"`
}

// RestockRequest defines model for RestockRequest.
type RestockRequest struct {
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Status DeliveryStatus `json:"status"`
}

// StockLevel defines model for StockLevel.
type StockLevel struct {
	Quantity int `json:"quantity"`
}

// DeliveryId defines model for DeliveryId.
type DeliveryId = openapi_types.UUID

// DriverId defines model for DriverId.
type DriverId = openapi_types.UUID

// ProductId defines model for ProductId.
type ProductId = openapi_types.UUID

// ListDeliveriesParams defines parameters for ListDeliveries.
type ListDeliveriesParams struct {
	Status   *[]DeliveryStatus   `form:"status,omitempty" json:"status,omitempty"`
	DriverId *openapi_types.UUID `form:"driverId,omitempty" json:"driverId,omitempty"`
}

// ListDriversParams defines parameters for ListDrivers.
type ListDriversParams struct {
	AvailableOnly *bool `form:"availableOnly,omitempty" json:"availableOnly,omitempty"`
}

// ListProductsParams defines parameters for ListProducts.
type ListProductsParams struct {
	ActiveOnly *bool `form:"activeOnly,omitempty" json:"activeOnly,omitempty"`
}

// CreateDeliveryJSONRequestBody defines body for CreateDelivery for application/json ContentType.
type CreateDeliveryJSONRequestBody = NewDelivery

// AssignDriverJSONRequestBody defines body for AssignDriver for application/json ContentType.
type AssignDriverJSONRequestBody = AssignDriverRequest

// ChangeDeliveryStatusJSONRequestBody defines body for ChangeDeliveryStatus for application/json ContentType.
type ChangeDeliveryStatusJSONRequestBody = StatusUpdate

// RegisterHidingSpotJSONRequestBody defines body for RegisterHidingSpot for application/json ContentType.
type RegisterHidingSpotJSONRequestBody = HidingSpotSubmission

// CreateDriverJSONRequestBody defines body for CreateDriver for application/json ContentType.
type CreateDriverJSONRequestBody = NewDriver

// RestockDriverJSONRequestBody defines body for RestockDriver for application/json ContentType.
type RestockDriverJSONRequestBody = RestockRequest

// SetDriverStockJSONRequestBody defines body for SetDriverStock for application/json ContentType.
type SetDriverStockJSONRequestBody = StockLevel

// SetDriverAvailabilityJSONRequestBody defines body for SetDriverAvailability for application/json ContentType.
type SetDriverAvailabilityJSONRequestBody = Availability

// CreateProductJSONRequestBody defines body for CreateProduct for application/json ContentType.
type CreateProductJSONRequestBody = NewProduct

// CreateClientJSONRequestBody defines body for CreateClient for application/json ContentType.
type CreateClientJSONRequestBody = NewClient
