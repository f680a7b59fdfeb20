package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListPending(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) MarkAssigned(ctx context.Context, orders []*order.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, batchID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*batch.Batch)
	return b, args.Error(1)
}

func (m *MockBatchRepository) ListByStatus(ctx context.Context, status batch.Status) ([]*batch.Batch, error) {
	args := m.Called(ctx, status)
	batches, _ := args.Get(0).([]*batch.Batch)
	return batches, args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Error(1)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUoW serves every repository factory interface.
type MockUoW struct {
	MockTx
	orders  *MockOrderRepository
	batches *MockBatchRepository
	drivers *MockDriverRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:  new(MockOrderRepository),
		batches: new(MockBatchRepository),
		drivers: new(MockDriverRepository),
	}
}

func (m *MockUoW) OrderRepository() ports.OrderRepository   { return m.orders }
func (m *MockUoW) BatchRepository() ports.BatchRepository   { return m.batches }
func (m *MockUoW) DriverRepository() ports.DriverRepository { return m.drivers }

func (m *MockUoW) AssertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.batches.AssertExpectations(t)
	m.drivers.AssertExpectations(t)
}

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockDriverUoWFactory struct{ uow *MockUoW }

func (f MockDriverUoWFactory) Create() commands.DriverUoW { return f.uow }

type MockResolver struct{ mock.Mock }

func (m *MockResolver) ResolveAll(ctx context.Context, postalCodes []string) (map[string]kernel.GeoPoint, error) {
	args := m.Called(ctx, postalCodes)
	points, _ := args.Get(0).(map[string]kernel.GeoPoint)
	return points, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishBatchesCreated(ctx context.Context, events []ports.BatchCreatedEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
