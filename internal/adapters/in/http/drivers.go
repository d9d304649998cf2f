package http

import (
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/generated/servers"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.NewDriver
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), body.Name, body.Phone,
		deref(body.Vehicle), deref(body.LicensePlate))
	if err != nil {
		return err
	}

	created, err := s.h.CreateDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toDriverDTO(created))
}

// ListDrivers handles GET /api/v1/drivers.
func (s *Server) ListDrivers(ctx echo.Context, params servers.ListDriversParams) error {
	query := queries.NewListDriversQuery(params.AvailableOnly != nil && *params.AvailableOnly)

	drivers, err := s.h.ListDrivers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.DriverSummary, len(drivers))
	for i, d := range drivers {
		response[i] = toDriverSummaryDTO(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDriverInventory handles GET /api/v1/drivers/{driverId}/inventory.
func (s *Server) GetDriverInventory(ctx echo.Context, driverID servers.DriverId) error {
	id, err := toKernelID(driverID)
	if err != nil {
		return err
	}
	return s.respondWithInventory(ctx, http.StatusOK, id)
}

// RestockDriver handles POST /api/v1/drivers/{driverId}/inventory. The
// quantity is added to the current stock.
func (s *Server) RestockDriver(ctx echo.Context, driverID servers.DriverId) error {
	var body servers.RestockRequest
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := toKernelID(driverID)
	if err != nil {
		return err
	}
	productID, err := toKernelID(body.ProductId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRestockDriverCommand(id, productID, body.Quantity)
	if err != nil {
		return err
	}

	if _, err := s.h.UpdateDriverStock.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithInventory(ctx, http.StatusCreated, id)
}

// SetDriverStock handles PUT /api/v1/drivers/{driverId}/inventory/{productId}.
func (s *Server) SetDriverStock(ctx echo.Context, driverID servers.DriverId, productID servers.ProductId) error {
	var body servers.StockLevel
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := toKernelID(driverID)
	if err != nil {
		return err
	}
	pid, err := toKernelID(productID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetDriverStockCommand(id, pid, body.Quantity)
	if err != nil {
		return err
	}

	if _, err := s.h.UpdateDriverStock.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithInventory(ctx, http.StatusOK, id)
}

// SetDriverAvailability handles PATCH /api/v1/drivers/{driverId}/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context, driverID servers.DriverId) error {
	var body servers.Availability
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := toKernelID(driverID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetDriverAvailabilityCommand(id, body.IsAvailable)
	if err != nil {
		return err
	}

	if err := s.h.SetDriverAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) respondWithInventory(ctx echo.Context, status int, driverID kernel.UUID) error {
	query, err := queries.NewGetDriverInventoryQuery(driverID)
	if err != nil {
		return err
	}
	inventory, err := s.h.GetDriverInventory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, toInventoryDTO(inventory))
}
