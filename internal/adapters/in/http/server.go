package http

import (
	"context"
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/client"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
	"lastmile/internal/generated/servers"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler is implemented by every command and query handler returning a result.
type Handler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// CommandHandler is implemented by command handlers without a result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateDelivery        Handler[commands.CreateDeliveryCommand, *delivery.Delivery]
	AssignDriver          Handler[commands.AssignDriverCommand, *delivery.Delivery]
	ChangeDeliveryStatus  Handler[commands.ChangeDeliveryStatusCommand, *delivery.Delivery]
	RegisterHidingSpot    Handler[commands.RegisterHidingSpotCommand, *delivery.Delivery]
	CreateDriver          Handler[commands.CreateDriverCommand, *driver.Driver]
	UpdateDriverStock     Handler[commands.UpdateDriverStockCommand, *driver.Driver]
	SetDriverAvailability CommandHandler[commands.SetDriverAvailabilityCommand]
	CreateProduct         Handler[commands.CreateProductCommand, *product.Product]
	DeactivateProduct     CommandHandler[commands.DeactivateProductCommand]
	CreateClient          Handler[commands.CreateClientCommand, *client.Client]

	GetDelivery        Handler[queries.GetDeliveryQuery, queries.DeliveryView]
	ListDeliveries     Handler[queries.ListDeliveriesQuery, []queries.DeliveryView]
	GetDeliveryReport  Handler[queries.GetDeliveryReportQuery, queries.DeliveryReport]
	GetDriverInventory Handler[queries.GetDriverInventoryQuery, queries.DriverInventory]
	ListDrivers        Handler[queries.ListDriversQuery, []queries.DriverView]
	ListProducts       Handler[queries.ListProductsQuery, []queries.ProductView]
	ListClients        Handler[queries.ListClientsQuery, []queries.ClientView]
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// Handlers return errors; ErrorHandler turns them into the JSON error payload.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var body servers.NewDelivery
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := newCreateDeliveryCommand(body)
	if err != nil {
		return err
	}

	created, err := s.h.CreateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondWithDelivery(ctx, http.StatusCreated, created.ID())
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(ctx echo.Context, params servers.ListDeliveriesParams) error {
	var statuses []delivery.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := delivery.ParseStatus(string(raw))
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
	}

	var driverID *kernel.UUID
	if params.DriverId != nil {
		id, err := toKernelID(*params.DriverId)
		if err != nil {
			return err
		}
		driverID = &id
	}

	query, err := queries.NewListDeliveriesQuery(statuses, driverID)
	if err != nil {
		return err
	}
	views, err := s.h.ListDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	now := nowUTC()
	response := make([]servers.Delivery, len(views))
	for i, v := range views {
		response[i] = toDeliveryDTO(v, now)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDelivery handles GET /api/v1/deliveries/{deliveryId}.
func (s *Server) GetDelivery(ctx echo.Context, deliveryID servers.DeliveryId) error {
	id, err := toKernelID(deliveryID)
	if err != nil {
		return err
	}
	return s.respondWithDelivery(ctx, http.StatusOK, id)
}

// AssignDriver handles POST /api/v1/deliveries/{deliveryId}/assign.
func (s *Server) AssignDriver(ctx echo.Context, deliveryID servers.DeliveryId) error {
	var body servers.AssignDriverRequest
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := toKernelID(deliveryID)
	if err != nil {
		return err
	}
	driverID, err := toKernelID(body.DriverId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAssignDriverCommand(id, driverID, body.ConfirmReassign != nil && *body.ConfirmReassign)
	if err != nil {
		return err
	}

	if _, err := s.h.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithDelivery(ctx, http.StatusOK, id)
}

// ChangeDeliveryStatus handles PATCH /api/v1/deliveries/{deliveryId}/status.
func (s *Server) ChangeDeliveryStatus(ctx echo.Context, deliveryID servers.DeliveryId) error {
	var body servers.StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := toKernelID(deliveryID)
	if err != nil {
		return err
	}
	status, err := delivery.ParseStatus(string(body.Status))
	if err != nil {
		return err
	}
	cmd, err := commands.NewChangeDeliveryStatusCommand(id, status)
	if err != nil {
		return err
	}

	if _, err := s.h.ChangeDeliveryStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithDelivery(ctx, http.StatusOK, id)
}

// RegisterHidingSpot handles POST /api/v1/deliveries/{deliveryId}/hiding-spot.
// The photo arrives either as a data URI in JSON or as a multipart file.
func (s *Server) RegisterHidingSpot(ctx echo.Context, deliveryID servers.DeliveryId) error {
	id, err := toKernelID(deliveryID)
	if err != nil {
		return err
	}

	submission, err := readHidingSpotSubmission(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterHidingSpotCommand(id, submission.photo, submission.location, submission.description)
	if err != nil {
		return err
	}

	if _, err := s.h.RegisterHidingSpot.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithDelivery(ctx, http.StatusCreated, id)
}

// GetDeliveryReport handles GET /api/v1/deliveries/{deliveryId}/report.
func (s *Server) GetDeliveryReport(ctx echo.Context, deliveryID servers.DeliveryId) error {
	id, err := toKernelID(deliveryID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDeliveryReportQuery(id)
	if err != nil {
		return err
	}

	report, err := s.h.GetDeliveryReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toReportDTO(report))
}

func (s *Server) respondWithDelivery(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetDeliveryQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, toDeliveryDTO(view, nowUTC()))
}

func newCreateDeliveryCommand(body servers.NewDelivery) (commands.CreateDeliveryCommand, error) {
	details, err := delivery.NewDetails(body.ClientName, body.ClientPhone, body.DeliveryAddress)
	if err != nil {
		return commands.CreateDeliveryCommand{}, err
	}
	details = details.
		WithPickupAddress(deref(body.PickupAddress)).
		WithInstructions(deref(body.Instructions))

	if body.Priority != nil {
		priority, err := delivery.ParsePriority(string(*body.Priority))
		if err != nil {
			return commands.CreateDeliveryCommand{}, err
		}
		if details, err = details.WithPriority(priority); err != nil {
			return commands.CreateDeliveryCommand{}, err
		}
	}
	if body.ClientId != nil {
		clientID, err := toKernelID(*body.ClientId)
		if err != nil {
			return commands.CreateDeliveryCommand{}, err
		}
		details = details.WithClientID(&clientID)
	}

	items := make([]delivery.Item, 0, len(body.Items))
	for _, in := range body.Items {
		productID, err := toKernelID(in.ProductId)
		if err != nil {
			return commands.CreateDeliveryCommand{}, err
		}
		item, err := delivery.NewItem(productID, in.Quantity)
		if err != nil {
			return commands.CreateDeliveryCommand{}, err
		}
		items = append(items, item)
	}

	var driverID *kernel.UUID
	if body.DriverId != nil {
		id, err := toKernelID(*body.DriverId)
		if err != nil {
			return commands.CreateDeliveryCommand{}, err
		}
		driverID = &id
	}

	return commands.NewCreateDeliveryCommand(kernel.NewUUID(), details, items, driverID)
}

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
