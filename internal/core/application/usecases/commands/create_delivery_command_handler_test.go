package commands_test

import (
	"errors"
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createDeliveryFixture struct {
	deliveries *MockDeliveryRepository
	drivers    *MockDriverRepository
	products   *MockProductRepository
	clients    *MockClientRepository
	uow        *MockUoW
	factory    *MockDeliveryUoWFactory
	handler    commands.CreateDeliveryCommandHandler
}

func newCreateDeliveryFixture() *createDeliveryFixture {
	f := &createDeliveryFixture{
		deliveries: new(MockDeliveryRepository),
		drivers:    new(MockDriverRepository),
		products:   new(MockProductRepository),
		clients:    new(MockClientRepository),
		uow:        new(MockUoW),
		factory:    new(MockDeliveryUoWFactory),
	}
	f.uow.On("DeliveryRepository").Return(f.deliveries).Maybe()
	f.uow.On("DriverRepository").Return(f.drivers).Maybe()
	f.uow.On("ProductRepository").Return(f.products).Maybe()
	f.uow.On("ClientRepository").Return(f.clients).Maybe()
	f.factory.On("Create").Return(f.uow).Once()
	f.handler = commands.NewCreateDeliveryCommandHandler(f.factory, delivery.DefaultTimeWindow())
	return f
}

func (f *createDeliveryFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.deliveries.AssertExpectations(t)
	f.drivers.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.clients.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_WithoutDriver_CreatesPendingDelivery(t *testing.T) {
	ctx := t.Context()
	milk := newTestProduct(t, "Milk")
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), newTestDetails(t),
		[]delivery.Item{newTestItem(t, milk.ID(), 2)}, nil)
	require.NoError(t, err)

	f := newCreateDeliveryFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetMany", ctx, []kernel.UUID{milk.ID()}).Return([]*product.Product{milk}, nil).Once(),
		f.deliveries.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	d, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Pending, d.Status())
	assert.Nil(t, d.DriverID())
	assert.Equal(t, d.CreatedAt().Add(delivery.DefaultMaxDuration), d.MaxDeliveryTime())
	f.assertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_WithStockedDriver_CreatesAssignedDelivery(t *testing.T) {
	ctx := t.Context()
	milk := newTestProduct(t, "Milk")
	drv := newTestDriver(t, map[kernel.UUID]int{milk.ID(): 5})
	driverID := drv.ID()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), newTestDetails(t),
		[]delivery.Item{newTestItem(t, milk.ID(), 5)}, &driverID)
	require.NoError(t, err)

	f := newCreateDeliveryFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetMany", ctx, mock.Anything).Return([]*product.Product{milk}, nil).Once(),
		f.drivers.On("Get", ctx, driverID).Return(drv, nil).Once(),
		f.deliveries.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	d, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, d.Status())
	require.NotNil(t, d.DriverID())
	assert.True(t, driverID.IsEqual(*d.DriverID()))
	assert.Equal(t, 5, drv.Stock(milk.ID()), "creation must not touch inventory")
	f.assertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_InsufficientStock_ReportsProductName(t *testing.T) {
	ctx := t.Context()
	milk := newTestProduct(t, "Milk")
	drv := newTestDriver(t, map[kernel.UUID]int{milk.ID(): 1})
	driverID := drv.ID()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), newTestDetails(t),
		[]delivery.Item{newTestItem(t, milk.ID(), 3)}, &driverID)
	require.NoError(t, err)

	f := newCreateDeliveryFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetMany", ctx, mock.Anything).Return([]*product.Product{milk}, nil).Once(),
		f.drivers.On("Get", ctx, driverID).Return(drv, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, driver.ErrInsufficientStock)
	var stockErr *driver.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Milk", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Contains(t, err.Error(), "Available: 1, Requested: 3")
	f.deliveries.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_UnknownProduct_ReturnsNotFound(t *testing.T) {
	ctx := t.Context()
	milk := newTestProduct(t, "Milk")
	unknown := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), newTestDetails(t),
		[]delivery.Item{newTestItem(t, milk.ID(), 1), newTestItem(t, unknown, 1)}, nil)
	require.NoError(t, err)

	f := newCreateDeliveryFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetMany", ctx, mock.Anything).Return([]*product.Product{milk}, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, unknown.String(), notFound.ID)
	f.assertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_InactiveProduct_ReturnsValidationError(t *testing.T) {
	ctx := t.Context()
	milk := newTestProduct(t, "Milk")
	milk.Deactivate()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), newTestDetails(t),
		[]delivery.Item{newTestItem(t, milk.ID(), 1)}, nil)
	require.NoError(t, err)

	f := newCreateDeliveryFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetMany", ctx, mock.Anything).Return([]*product.Product{milk}, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.assertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_UnknownClient_ReturnsNotFound(t *testing.T) {
	ctx := t.Context()
	milk := newTestProduct(t, "Milk")
	clientID := kernel.NewUUID()
	details := newTestDetails(t).WithClientID(&clientID)
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), details,
		[]delivery.Item{newTestItem(t, milk.ID(), 1)}, nil)
	require.NoError(t, err)

	f := newCreateDeliveryFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetMany", ctx, mock.Anything).Return([]*product.Product{milk}, nil).Once(),
		f.clients.On("Get", ctx, clientID).
			Return(nil, errs.NewObjectNotFoundError("client", clientID.String())).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	milk := newTestProduct(t, "Milk")
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), newTestDetails(t),
		[]delivery.Item{newTestItem(t, milk.ID(), 1)}, nil)
	require.NoError(t, err)

	f := newCreateDeliveryFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetMany", ctx, mock.Anything).Return([]*product.Product{milk}, nil).Once(),
		f.deliveries.On("Add", ctx, mock.Anything).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	d, err := f.handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	assert.Nil(t, d)
	f.assertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), newTestDetails(t),
		[]delivery.Item{newTestItem(t, kernel.NewUUID(), 1)}, nil)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockDeliveryUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateDeliveryCommandHandler(factory, delivery.DefaultTimeWindow())
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockDeliveryUoWFactory)
	h := commands.NewCreateDeliveryCommandHandler(factory, delivery.DefaultTimeWindow())

	_, err := h.Handle(t.Context(), commands.CreateDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrCreateDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
