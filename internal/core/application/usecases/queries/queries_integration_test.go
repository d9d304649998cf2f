package queries_test

import (
	"context"
	"testing"
	"time"

	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/postgres/pgtest"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/client"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg  *pgtest.Database
	uow ports.UnitOfWork
	now time.Time

	milk, bread, retired *product.Product
	marc                 *driver.Driver
	pending              *delivery.Delivery
	assigned             *delivery.Delivery
	delivered            *delivery.Delivery
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres.Models()...)
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(
		"outbox_messages", "hiding_spots", "delivery_items", "deliveries",
		"driver_inventory", "drivers", "clients", "products"))

	suite.uow = postgres.NewGormUnitOfWorkFactory(suite.pg.DB).Create()
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
	suite.seed()
}

func (suite *QueriesIntegrationTestSuite) seed() {
	ctx := context.Background()

	suite.milk = suite.addProduct("Milk", "dairy", "l")
	suite.bread = suite.addProduct("Bread", "bakery", "")
	suite.retired = suite.addProduct("Seasonal cake", "bakery", "")
	suite.retired.Deactivate()
	suite.Require().NoError(suite.uow.ProductRepository().Update(ctx, suite.retired))

	marc, err := driver.NewDriver(kernel.NewUUID(), "Marc", "+33611111111", "van", "AB-123-CD")
	suite.Require().NoError(err)
	suite.Require().NoError(marc.Restock(suite.milk.ID(), 3))
	suite.Require().NoError(marc.SetStock(suite.bread.ID(), 0))
	suite.Require().NoError(suite.uow.DriverRepository().Add(ctx, marc))
	suite.marc = marc
	marcID := marc.ID()

	suite.pending = suite.addDelivery(suite.now.Add(-time.Hour), nil, nil)
	suite.assigned = suite.addDelivery(suite.now.Add(-5*time.Minute), &marcID, nil)
	suite.delivered = suite.addDelivery(suite.now.Add(-2*time.Hour), &marcID, func(d *delivery.Delivery) {
		location, locErr := kernel.NewCoordinates(48.857, 2.3522)
		suite.Require().NoError(locErr)
		spot, spotErr := delivery.NewHidingSpot(kernel.NewUUID(), "/uploads/spot.jpg", location,
			"under the mat", 44, suite.now.Add(-90*time.Minute))
		suite.Require().NoError(spotErr)
		suite.Require().NoError(d.RegisterHidingSpot(spot, suite.now.Add(-90*time.Minute)))
		_, changeErr := d.ChangeStatus(delivery.Delivered, suite.now.Add(-80*time.Minute))
		suite.Require().NoError(changeErr)
	})
}

func (suite *QueriesIntegrationTestSuite) addProduct(name, category, unit string) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), name, "", category, unit)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.ProductRepository().Add(context.Background(), p))
	return p
}

func (suite *QueriesIntegrationTestSuite) addDelivery(
	createdAt time.Time,
	driverID *kernel.UUID,
	mutate func(*delivery.Delivery),
) *delivery.Delivery {
	details, err := delivery.NewDetails("Jane Doe", "+33600000000", "1 rue de Rivoli, Paris")
	suite.Require().NoError(err)
	milk, err := delivery.NewItem(suite.milk.ID(), 2)
	suite.Require().NoError(err)
	bread, err := delivery.NewItem(suite.bread.ID(), 1)
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(kernel.NewUUID(), details, []delivery.Item{milk, bread}, driverID, createdAt,
		delivery.DefaultTimeWindow())
	suite.Require().NoError(err)
	if mutate != nil {
		mutate(d)
	}

	suite.Require().NoError(suite.uow.DeliveryRepository().Add(context.Background(), d))
	return d
}

func (suite *QueriesIntegrationTestSuite) TestGetDelivery_ReturnsItemsAndDriverName() {
	query, err := queries.NewGetDeliveryQuery(suite.assigned.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetDeliveryQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(suite.assigned.ID(), view.ID)
	suite.Equal(delivery.Assigned, view.Status)
	suite.Equal(delivery.PriorityNormal, view.Priority)
	suite.Equal("Marc", view.DriverName)
	suite.Nil(view.HidingSpot)
	suite.Require().Len(view.Items, 2)
	suite.Equal("Bread", view.Items[0].ProductName)
	suite.Equal(product.DefaultUnit, view.Items[0].Unit)
	suite.Equal("Milk", view.Items[1].ProductName)
	suite.Equal("l", view.Items[1].Unit)
	suite.Equal(2, view.Items[1].Quantity)
	suite.WithinDuration(suite.assigned.MaxDeliveryTime(), view.MaxDeliveryTime, time.Millisecond)
}

func (suite *QueriesIntegrationTestSuite) TestGetDelivery_Unknown_ReturnsNotFound() {
	query, err := queries.NewGetDeliveryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetDeliveryQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListDeliveries_NoFilter_NewestFirst() {
	query, err := queries.NewListDeliveriesQuery(nil, nil)
	suite.Require().NoError(err)

	views, err := queries.NewListDeliveriesQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(views, 3)
	suite.Equal(suite.assigned.ID(), views[0].ID)
	suite.Equal(suite.pending.ID(), views[1].ID)
	suite.Equal(suite.delivered.ID(), views[2].ID)
}

func (suite *QueriesIntegrationTestSuite) TestListDeliveries_FiltersByStatusesAndDriver() {
	marcID := suite.marc.ID()
	handler := queries.NewListDeliveriesQueryHandler(suite.pg.DB)

	byStatus, err := queries.NewListDeliveriesQuery([]delivery.Status{delivery.Pending, delivery.Delivered}, nil)
	suite.Require().NoError(err)
	views, err := handler.Handle(context.Background(), byStatus)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(suite.pending.ID(), views[0].ID)
	suite.Equal(suite.delivered.ID(), views[1].ID)
	suite.Require().NotNil(views[1].HidingSpot)
	suite.Equal("/uploads/spot.jpg", views[1].HidingSpot.PhotoURL)

	byBoth, err := queries.NewListDeliveriesQuery([]delivery.Status{delivery.Assigned}, &marcID)
	suite.Require().NoError(err)
	views, err = handler.Handle(context.Background(), byBoth)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(suite.assigned.ID(), views[0].ID)

	other := kernel.NewUUID()
	none, err := queries.NewListDeliveriesQuery(nil, &other)
	suite.Require().NoError(err)
	views, err = handler.Handle(context.Background(), none)
	suite.Require().NoError(err)
	suite.NotNil(views)
	suite.Empty(views)
}

func (suite *QueriesIntegrationTestSuite) TestGetDeliveryReport_IncludesHidingSpot() {
	query, err := queries.NewGetDeliveryReportQuery(suite.delivered.ID())
	suite.Require().NoError(err)

	report, err := queries.NewGetDeliveryReportQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(delivery.Delivered, report.Status)
	suite.Equal("Jane Doe", report.ClientName)
	suite.Equal("1 rue de Rivoli, Paris", report.DeliveryAddress)
	suite.Equal("Marc", report.DriverName)
	suite.Len(report.Items, 2)
	suite.Require().NotNil(report.HidingSpot)
	suite.Equal("under the mat", report.HidingSpot.Description)
	suite.InDelta(48.857, report.HidingSpot.Latitude, 1e-9)
	suite.InDelta(44, report.HidingSpot.DistanceFromAddress, 1e-9)
	suite.Require().NotNil(report.CompletedAt)
}

func (suite *QueriesIntegrationTestSuite) TestGetDriverInventory_ListsZeroStockRows() {
	query, err := queries.NewGetDriverInventoryQuery(suite.marc.ID())
	suite.Require().NoError(err)

	inventory, err := queries.NewGetDriverInventoryQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("Marc", inventory.DriverName)
	suite.True(inventory.IsAvailable)
	suite.Require().Len(inventory.Items, 2)
	suite.Equal("Bread", inventory.Items[0].ProductName)
	suite.Equal(0, inventory.Items[0].Quantity)
	suite.Equal("Milk", inventory.Items[1].ProductName)
	suite.Equal(3, inventory.Items[1].Quantity)
}

func (suite *QueriesIntegrationTestSuite) TestGetDriverInventory_UnknownDriver_ReturnsNotFound() {
	query, err := queries.NewGetDriverInventoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetDriverInventoryQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListProducts_ActiveOnly() {
	handler := queries.NewListProductsQueryHandler(suite.pg.DB)

	all, err := handler.Handle(context.Background(), queries.NewListProductsQuery(false))
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal("Bread", all[0].Name)
	suite.Equal("Seasonal cake", all[1].Name)
	suite.False(all[1].IsActive)
	suite.Equal("Milk", all[2].Name)

	active, err := handler.Handle(context.Background(), queries.NewListProductsQuery(true))
	suite.Require().NoError(err)
	suite.Require().Len(active, 2)
	for _, p := range active {
		suite.True(p.IsActive)
	}
}

func (suite *QueriesIntegrationTestSuite) TestListDrivers_CountsActiveDeliveriesPerStatus() {
	ctx := context.Background()
	marcID := suite.marc.ID()
	suite.addDelivery(suite.now.Add(-10*time.Minute), &marcID, func(d *delivery.Delivery) {
		_, err := d.ChangeStatus(delivery.PickingUp, suite.now)
		suite.Require().NoError(err)
	})
	suite.addDelivery(suite.now.Add(-20*time.Minute), &marcID, func(d *delivery.Delivery) {
		_, err := d.ChangeStatus(delivery.Cancelled, suite.now)
		suite.Require().NoError(err)
	})

	zoe, err := driver.NewDriver(kernel.NewUUID(), "Zoe", "+33622222222", "", "")
	suite.Require().NoError(err)
	zoe.SetAvailability(false)
	suite.Require().NoError(suite.uow.DriverRepository().Add(ctx, zoe))

	handler := queries.NewListDriversQueryHandler(suite.pg.DB)

	all, err := handler.Handle(ctx, queries.NewListDriversQuery(false))
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)

	marc := all[0]
	suite.Equal(marcID, marc.ID)
	suite.Equal("Marc", marc.Name)
	suite.Equal("van", marc.Vehicle)
	suite.Equal("AB-123-CD", marc.LicensePlate)
	suite.True(marc.IsAvailable)
	suite.Equal(1, marc.Assigned)
	suite.Equal(1, marc.PickingUp)
	suite.Equal(0, marc.InTransit)
	suite.Equal(2, marc.ActiveDeliveries(), "delivered and cancelled deliveries are not counted")

	suite.Equal(zoe.ID(), all[1].ID)
	suite.False(all[1].IsAvailable)
	suite.Equal(0, all[1].ActiveDeliveries())

	available, err := handler.Handle(ctx, queries.NewListDriversQuery(true))
	suite.Require().NoError(err)
	suite.Require().Len(available, 1)
	suite.Equal(marcID, available[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestListClients_SortedByName() {
	ctx := context.Background()
	handler := queries.NewListClientsQueryHandler(suite.pg.DB)

	empty, err := handler.Handle(ctx, queries.NewListClientsQuery())
	suite.Require().NoError(err)
	suite.NotNil(empty)
	suite.Empty(empty)

	zed, err := client.NewClient(kernel.NewUUID(), "Zed", "+33633333333", "", "")
	suite.Require().NoError(err)
	anna, err := client.NewClient(kernel.NewUUID(), "Anna", "+33644444444", "3 rue du Bac, Paris", "4242")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.ClientRepository().Add(ctx, zed))
	suite.Require().NoError(suite.uow.ClientRepository().Add(ctx, anna))

	clients, err := handler.Handle(ctx, queries.NewListClientsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(clients, 2)
	suite.Equal(anna.ID(), clients[0].ID)
	suite.Equal("3 rue du Bac, Paris", clients[0].Address)
	suite.Equal("4242", clients[0].TelegramChatID)
	suite.Equal("Zed", clients[1].Name)
	suite.Empty(clients[1].Address)
}

func (suite *QueriesIntegrationTestSuite) TestGetOverdueDeliveries_OnlyActivePastDeadline() {
	query, err := queries.NewGetOverdueDeliveriesQuery(suite.now)
	suite.Require().NoError(err)

	overdue, err := queries.NewGetOverdueDeliveriesQueryHandler(suite.pg.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(overdue, 1)
	suite.Equal(suite.pending.ID(), overdue[0].ID)
	suite.InDelta(float64(30*time.Minute), float64(overdue[0].OverdueBy), float64(time.Millisecond))
	suite.True(overdue[0].IsOverdue(suite.now))
}

func (suite *QueriesIntegrationTestSuite) TestHandlers_RejectUnconstructedQueries() {
	ctx := context.Background()

	_, err := queries.NewGetDeliveryQueryHandler(suite.pg.DB).Handle(ctx, queries.GetDeliveryQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetDeliveryQueryIsNotConstructed)

	_, err = queries.NewListDeliveriesQueryHandler(suite.pg.DB).Handle(ctx, queries.ListDeliveriesQuery{})
	suite.Require().ErrorIs(err, queries.ErrListDeliveriesQueryIsNotConstructed)

	_, err = queries.NewListProductsQueryHandler(suite.pg.DB).Handle(ctx, queries.ListProductsQuery{})
	suite.Require().ErrorIs(err, queries.ErrListProductsQueryIsNotConstructed)

	_, err = queries.NewListDriversQueryHandler(suite.pg.DB).Handle(ctx, queries.ListDriversQuery{})
	suite.Require().ErrorIs(err, queries.ErrListDriversQueryIsNotConstructed)

	_, err = queries.NewListClientsQueryHandler(suite.pg.DB).Handle(ctx, queries.ListClientsQuery{})
	suite.Require().ErrorIs(err, queries.ErrListClientsQueryIsNotConstructed)
}
