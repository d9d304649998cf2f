package servers

import (
	"fmt"
	"net/http"

	"lastmile/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /deliveries)
	CreateDelivery(ctx echo.Context) error
	// (GET /deliveries)
	ListDeliveries(ctx echo.Context, params ListDeliveriesParams) error
	// (GET /deliveries/{deliveryId})
	GetDelivery(ctx echo.Context, deliveryId DeliveryId) error
	// (POST /deliveries/{deliveryId}/assign)
	AssignDriver(ctx echo.Context, deliveryId DeliveryId) error
	// (PATCH /deliveries/{deliveryId}/status)
	ChangeDeliveryStatus(ctx echo.Context, deliveryId DeliveryId) error
	// (POST /deliveries/{deliveryId}/hiding-spot)
	RegisterHidingSpot(ctx echo.Context, deliveryId DeliveryId) error
	// (GET /deliveries/{deliveryId}/report)
	GetDeliveryReport(ctx echo.Context, deliveryId DeliveryId) error
	// (POST /drivers)
	CreateDriver(ctx echo.Context) error
	// (GET /drivers)
	ListDrivers(ctx echo.Context, params ListDriversParams) error
	// (GET /drivers/{driverId}/inventory)
	GetDriverInventory(ctx echo.Context, driverId DriverId) error
	// (POST /drivers/{driverId}/inventory)
	RestockDriver(ctx echo.Context, driverId DriverId) error
	// (PUT /drivers/{driverId}/inventory/{productId})
	SetDriverStock(ctx echo.Context, driverId DriverId, productId ProductId) error
	// (PATCH /drivers/{driverId}/availability)
	SetDriverAvailability(ctx echo.Context, driverId DriverId) error
	// (POST /products)
	CreateProduct(ctx echo.Context) error
	// (GET /products)
	ListProducts(ctx echo.Context, params ListProductsParams) error
	// (DELETE /products/{productId})
	DeactivateProduct(ctx echo.Context, productId ProductId) error
	// (POST /clients)
	CreateClient(ctx echo.Context) error
	// (GET /clients)
	ListClients(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateDelivery(ctx echo.Context) error {
	return w.Handler.CreateDelivery(ctx)
}

func (w *ServerInterfaceWrapper) ListDeliveries(ctx echo.Context) error {
	var err error
	var params ListDeliveriesParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "driverId", ctx.QueryParams(), &params.DriverId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter driverId: %s", err))
	}

	return w.Handler.ListDeliveries(ctx, params)
}

func (w *ServerInterfaceWrapper) GetDelivery(ctx echo.Context) error {
	deliveryId, err := bindUUIDPath(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.GetDelivery(ctx, deliveryId)
}

func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	deliveryId, err := bindUUIDPath(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.AssignDriver(ctx, deliveryId)
}

func (w *ServerInterfaceWrapper) ChangeDeliveryStatus(ctx echo.Context) error {
	deliveryId, err := bindUUIDPath(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.ChangeDeliveryStatus(ctx, deliveryId)
}

func (w *ServerInterfaceWrapper) RegisterHidingSpot(ctx echo.Context) error {
	deliveryId, err := bindUUIDPath(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.RegisterHidingSpot(ctx, deliveryId)
}

func (w *ServerInterfaceWrapper) GetDeliveryReport(ctx echo.Context) error {
	deliveryId, err := bindUUIDPath(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.GetDeliveryReport(ctx, deliveryId)
}

func (w *ServerInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	return w.Handler.CreateDriver(ctx)
}

func (w *ServerInterfaceWrapper) ListDrivers(ctx echo.Context) error {
	var params ListDriversParams

	err := runtime.BindQueryParameter("form", true, false, "availableOnly", ctx.QueryParams(), &params.AvailableOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter availableOnly: %s", err))
	}

	return w.Handler.ListDrivers(ctx, params)
}

func (w *ServerInterfaceWrapper) GetDriverInventory(ctx echo.Context) error {
	driverId, err := bindUUIDPath(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.GetDriverInventory(ctx, driverId)
}

func (w *ServerInterfaceWrapper) RestockDriver(ctx echo.Context) error {
	driverId, err := bindUUIDPath(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.RestockDriver(ctx, driverId)
}

func (w *ServerInterfaceWrapper) SetDriverStock(ctx echo.Context) error {
	driverId, err := bindUUIDPath(ctx, "driverId")
	if err != nil {
		return err
	}
	productId, err := bindUUIDPath(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.SetDriverStock(ctx, driverId, productId)
}

func (w *ServerInterfaceWrapper) SetDriverAvailability(ctx echo.Context) error {
	driverId, err := bindUUIDPath(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.SetDriverAvailability(ctx, driverId)
}

func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	return w.Handler.CreateProduct(ctx)
}

func (w *ServerInterfaceWrapper) ListProducts(ctx echo.Context) error {
	var params ListProductsParams

	err := runtime.BindQueryParameter("form", true, false, "activeOnly", ctx.QueryParams(), &params.ActiveOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter activeOnly: %s", err))
	}

	return w.Handler.ListProducts(ctx, params)
}

func (w *ServerInterfaceWrapper) DeactivateProduct(ctx echo.Context) error {
	productId, err := bindUUIDPath(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.DeactivateProduct(ctx, productId)
}

func (w *ServerInterfaceWrapper) CreateClient(ctx echo.Context) error {
	return w.Handler.CreateClient(ctx)
}

func (w *ServerInterfaceWrapper) ListClients(ctx echo.Context) error {
	return w.Handler.ListClients(ctx)
}

func bindUUIDPath(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/deliveries", wrapper.CreateDelivery)
	router.GET(baseURL+"/deliveries", wrapper.ListDeliveries)
	router.GET(baseURL+"/deliveries/:deliveryId", wrapper.GetDelivery)
	router.POST(baseURL+"/deliveries/:deliveryId/assign", wrapper.AssignDriver)
	router.PATCH(baseURL+"/deliveries/:deliveryId/status", wrapper.ChangeDeliveryStatus)
	router.POST(baseURL+"/deliveries/:deliveryId/hiding-spot", wrapper.RegisterHidingSpot)
	router.GET(baseURL+"/deliveries/:deliveryId/report", wrapper.GetDeliveryReport)
	router.POST(baseURL+"/drivers", wrapper.CreateDriver)
	router.GET(baseURL+"/drivers", wrapper.ListDrivers)
	router.GET(baseURL+"/drivers/:driverId/inventory", wrapper.GetDriverInventory)
	router.POST(baseURL+"/drivers/:driverId/inventory", wrapper.RestockDriver)
	router.PUT(baseURL+"/drivers/:driverId/inventory/:productId", wrapper.SetDriverStock)
	router.PATCH(baseURL+"/drivers/:driverId/availability", wrapper.SetDriverAvailability)
	router.POST(baseURL+"/products", wrapper.CreateProduct)
	router.GET(baseURL+"/products", wrapper.ListProducts)
	router.DELETE(baseURL+"/products/:productId", wrapper.DeactivateProduct)
	router.POST(baseURL+"/clients", wrapper.CreateClient)
	router.GET(baseURL+"/clients", wrapper.ListClients)
}

// GetSwagger returns the parsed OpenAPI document embedded in package api.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
}
