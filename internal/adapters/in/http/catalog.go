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

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body servers.NewProduct
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), body.Name,
		deref(body.Description), deref(body.Category), deref(body.Unit))
	if err != nil {
		return err
	}

	created, err := s.h.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, servers.Product{
		Id:          created.ID().Bytes(),
		Name:        created.Name(),
		Description: optional(created.Description()),
		Category:    optional(created.Category()),
		Unit:        created.Unit(),
		IsActive:    created.IsActive(),
	})
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context, params servers.ListProductsParams) error {
	query := queries.NewListProductsQuery(params.ActiveOnly != nil && *params.ActiveOnly)

	products, err := s.h.ListProducts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.Product, len(products))
	for i, p := range products {
		response[i] = servers.Product{
			Id:          p.ID.Bytes(),
			Name:        p.Name,
			Description: optional(p.Description),
			Category:    optional(p.Category),
			Unit:        p.Unit,
			IsActive:    p.IsActive,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// DeactivateProduct handles DELETE /api/v1/products/{productId}. Products
// are never removed since past deliveries refer to them.
func (s *Server) DeactivateProduct(ctx echo.Context, productID servers.ProductId) error {
	id, err := toKernelID(productID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeactivateProductCommand(id)
	if err != nil {
		return err
	}

	if err := s.h.DeactivateProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(ctx echo.Context) error {
	var body servers.NewClient
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), body.Name, body.Phone,
		deref(body.Address), deref(body.TelegramChatId))
	if err != nil {
		return err
	}

	created, err := s.h.CreateClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, servers.Client{
		Id:             created.ID().Bytes(),
		Name:           created.Name(),
		Phone:          created.Phone(),
		Address:        optional(created.Address()),
		TelegramChatId: optional(created.TelegramChatID()),
	})
}

// ListClients handles GET /api/v1/clients.
func (s *Server) ListClients(ctx echo.Context) error {
	clients, err := s.h.ListClients.Handle(ctx.Request().Context(), queries.NewListClientsQuery())
	if err != nil {
		return err
	}

	response := make([]servers.Client, len(clients))
	for i, c := range clients {
		response[i] = servers.Client{
			Id:             c.ID.Bytes(),
			Name:           c.Name,
			Phone:          c.Phone,
			Address:        optional(c.Address),
			TelegramChatId: optional(c.TelegramChatID),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
