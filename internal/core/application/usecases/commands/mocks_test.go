package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/client"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
	"lastmile/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).([]*product.Product)
	return p, args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit, maxAttempts int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit, maxAttempts)
	msgs, _ := args.Get(0).([]ports.OutboxMessage)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, msg ports.OutboxMessage, at time.Time) error {
	return m.Called(ctx, msg, at).Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, msg ports.OutboxMessage, cause error) error {
	return m.Called(ctx, msg, cause).Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	return m.Called().Get(0).(ports.DriverRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	return m.Called().Get(0).(ports.ClientRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return m.Called().Get(0).(commands.DeliveryUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	return m.Called().Get(0).(commands.DriverUoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	return m.Called().Get(0).(commands.CatalogUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (kernel.Coordinates, error) {
	args := m.Called(ctx, address)
	c, _ := args.Get(0).(kernel.Coordinates)
	return c, args.Error(1)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Save(ctx context.Context, photo ports.Photo) (string, error) {
	args := m.Called(ctx, photo)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStorage) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, notice ports.DeliveryNotice) error {
	return m.Called(ctx, notice).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDetails(t *testing.T) delivery.Details {
	t.Helper()
	details, err := delivery.NewDetails("Jane Doe", "+33600000000", "1 rue de Rivoli, Paris")
	require.NoError(t, err)
	return details
}

func newTestItem(t *testing.T, productID kernel.UUID, quantity int) delivery.Item {
	t.Helper()
	item, err := delivery.NewItem(productID, quantity)
	require.NoError(t, err)
	return item
}

// newTestDelivery builds a delivery in the requested status. Statuses past
// PENDING get a fresh driver unless driverID is given.
func newTestDelivery(t *testing.T, status delivery.Status, driverID *kernel.UUID, items ...delivery.Item) *delivery.Delivery {
	t.Helper()

	if len(items) == 0 {
		items = []delivery.Item{newTestItem(t, kernel.NewUUID(), 1)}
	}
	if status != delivery.Pending && driverID == nil {
		id := kernel.NewUUID()
		driverID = &id
	}

	var initialDriver *kernel.UUID
	if status != delivery.Pending {
		initialDriver = driverID
	}

	now := time.Now().UTC()
	d, err := delivery.NewDelivery(kernel.NewUUID(), newTestDetails(t), items, initialDriver, now,
		delivery.DefaultTimeWindow())
	require.NoError(t, err)

	switch status {
	case delivery.PickingUp:
		_, err = d.ChangeStatus(delivery.PickingUp, now)
	case delivery.InTransit:
		_, err = d.ChangeStatus(delivery.InTransit, now)
	case delivery.Delivered:
		_, err = d.ChangeStatus(delivery.InTransit, now)
		require.NoError(t, err)
		_, err = d.ChangeStatus(delivery.Delivered, now)
	case delivery.Cancelled:
		_, err = d.ChangeStatus(delivery.Cancelled, now)
	}
	require.NoError(t, err)
	require.Equal(t, status, d.Status())

	d.ClearDomainEvents()
	return d
}

func newTestDriver(t *testing.T, stock map[kernel.UUID]int) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Marc", "+33611111111", "van", "AB-123-CD")
	require.NoError(t, err)
	for productID, qty := range stock {
		require.NoError(t, d.SetStock(productID, qty))
	}
	return d
}

func newTestProduct(t *testing.T, name string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), name, "", "grocery", "")
	require.NoError(t, err)
	return p
}

func mustCoordinates(t *testing.T, lat, lng float64) kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	return c
}
