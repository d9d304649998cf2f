package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/postgres/pgtest"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work, including
// the outbox written on commit, against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.Require().NoError(postgres_adapter.Migrate(pg.DB))

	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(
		"outbox_messages", "hiding_spots", "delivery_items", "deliveries",
		"driver_inventory", "drivers", "products", "clients"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWritesOutbox() {
	ctx := context.Background()
	drv := createTestDriver(suite)
	driverID := drv.ID()
	d := createTestDelivery(suite, &driverID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, drv))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))

	_, err := d.ChangeStatus(delivery.InTransit, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryRepository().Update(ctx, d))

	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(d.DomainEvents(), "events are cleared once committed")

	pending, err := suite.factory.Create().OutboxRepository().GetPending(ctx, 10, 5)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2, "the same aggregate tracked twice is drained once")
	suite.Equal(delivery.EventCreated, pending[0].Event.Type)
	suite.Equal(delivery.EventStatusChanged, pending[1].Event.Type)
	suite.Equal(delivery.InTransit, pending[1].Event.Status)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	drv := createTestDriver(suite)
	driverID := drv.ID()
	d := createTestDelivery(suite, &driverID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, drv))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.DeliveryRepository().Get(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.DriverRepository().Get(ctx, drv.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	pending, err := fresh.OutboxRepository().GetPending(ctx, 10, 5)
	suite.Require().NoError(err)
	suite.Empty(pending)
	suite.NotEmpty(d.DomainEvents(), "events survive a rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	first := createTestDelivery(suite, nil)
	second := createTestDelivery(suite, nil)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.DeliveryRepository().Add(ctx, first))
	suite.Require().NoError(uow2.DeliveryRepository().Add(ctx, second))

	_, err := uow1.DeliveryRepository().Get(ctx, second.ID())
	suite.Require().Error(err, "UOW1 should not see uncommitted rows of UOW2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.DeliveryRepository().Get(ctx, first.ID())
	suite.Require().NoError(err)
	_, err = fresh.DeliveryRepository().Get(ctx, second.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	drv := createTestDriver(suite)
	uow := suite.factory.Create()

	suite.Require().NoError(uow.DriverRepository().Add(ctx, drv))

	got, err := suite.factory.Create().DriverRepository().Get(ctx, drv.ID())
	suite.Require().NoError(err)
	suite.Equal(drv.ID(), got.ID())
}

func createTestDriver(suite *UnitOfWorkIntegrationTestSuite) *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), "Test Driver", "+33600000002", "bike", "")
	suite.Require().NoError(err)
	return d
}

func createTestDelivery(suite *UnitOfWorkIntegrationTestSuite, driverID *kernel.UUID) *delivery.Delivery {
	details, err := delivery.NewDetails("Jane", "+33600000000", "10 Downing Street, London")
	suite.Require().NoError(err)
	item, err := delivery.NewItem(kernel.NewUUID(), 1)
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(kernel.NewUUID(), details, []delivery.Item{item}, driverID,
		time.Now().UTC(), delivery.DefaultTimeWindow())
	suite.Require().NoError(err)
	return d
}
