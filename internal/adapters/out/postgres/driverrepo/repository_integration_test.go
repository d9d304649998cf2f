package driverrepo_test

import (
	"context"
	"testing"

	"lastmile/internal/adapters/out/postgres/driverrepo"
	"lastmile/internal/adapters/out/postgres/pgtest"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *driverrepo.GormDriverRepository
	tracker    *MockAggregateTracker
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), &driverrepo.DriverDTO{}, &driverrepo.StockItemDTO{})
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("driver_inventory", "drivers"))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)
	suite.repository = driverrepo.NewGormDriverRepository(suite.pg.DB, suite.tracker)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAdd_And_Get() {
	ctx := context.Background()
	bread := kernel.NewUUID()
	d := suite.newDriver()
	suite.Require().NoError(d.Restock(bread, 10))

	suite.Require().NoError(suite.repository.Add(ctx, d))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", d.ID(), d)

	got, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal("Marc", got.Name())
	suite.Equal("AB-123-CD", got.LicensePlate())
	suite.True(got.IsAvailable())
	suite.Equal(10, got.Stock(bread))
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_UpsertsInventoryAndProfile() {
	ctx := context.Background()
	bread, milk := kernel.NewUUID(), kernel.NewUUID()
	d := suite.newDriver()
	suite.Require().NoError(d.Restock(bread, 10))
	suite.Require().NoError(suite.repository.Add(ctx, d))

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	_, err = loaded.Withdraw(bread, 4)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Restock(milk, 3))
	loaded.SetAvailability(false)
	loaded.RecordCompletedDelivery()
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	got, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(6, got.Stock(bread))
	suite.Equal(3, got.Stock(milk))
	suite.False(got.IsAvailable())
	suite.Equal(1, got.TotalDeliveries())
	suite.Len(got.Inventory(), 2)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	d := suite.newDriver()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	tx := suite.pg.DB.Begin()
	defer tx.Rollback()

	locked, err := driverrepo.NewGormDriverRepository(tx, suite.tracker).GetForUpdate(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(d.ID(), locked.ID())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newDriver())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DriverRepositoryIntegrationTestSuite) newDriver() *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), "Marc", "+33600000001", "van", "AB-123-CD")
	suite.Require().NoError(err)
	return d
}
