package batchrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/batchrepo"
	"dispatch/internal/adapters/out/postgres/postgrestest"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type BatchRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *batchrepo.GormBatchRepository
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&batchrepo.BatchDTO{}, &batchrepo.BatchOrderDTO{}))
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE batch_orders, batches").Error)
	suite.repository = batchrepo.NewGormBatchRepository(suite.db)
}

func (suite *BatchRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BatchRepositoryIntegrationTestSuite) TestAdd_PersistsMembershipInOrder() {
	ctx := suite.T().Context()
	b, orders := suite.newBatch(3.0, 1.5, 2.25)

	suite.Require().NoError(suite.repository.Add(ctx, b))

	retrieved, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(b.ID(), retrieved.ID())
	suite.Equal(batch.Pending, retrieved.Status())
	suite.InDelta(6.75, retrieved.TotalWeight(), 1e-9)
	suite.Nil(retrieved.Driver())
	suite.Require().Equal(3, retrieved.OrderCount())
	for i, o := range orders {
		suite.Equal(o.ID(), retrieved.OrderIDs()[i])
	}
}

func (suite *BatchRepositoryIntegrationTestSuite) TestAdd_OrderInTwoBatches_Rejected() {
	ctx := suite.T().Context()
	first, orders := suite.newBatch(1)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := batch.NewBatch(kernel.NewUUID(), orders)
	suite.Require().NoError(err)

	suite.Require().Error(suite.repository.Add(ctx, second))
}

func (suite *BatchRepositoryIntegrationTestSuite) TestGet_NonExistentBatch_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BatchRepositoryIntegrationTestSuite) TestUpdate_LifecycleFields() {
	ctx := suite.T().Context()
	b, _ := suite.newBatch(2, 2)
	suite.Require().NoError(suite.repository.Add(ctx, b))

	driverID := kernel.NewUUID()
	suite.Require().NoError(b.AssignDriver(driverID))
	suite.Require().NoError(suite.repository.Update(ctx, b))

	retrieved, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(batch.InProgress, retrieved.Status())
	suite.Require().NotNil(retrieved.Driver())
	suite.Equal(driverID, *retrieved.Driver())

	at := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	suite.Require().NoError(b.Complete(at))
	suite.Require().NoError(suite.repository.Update(ctx, b))

	retrieved, err = suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(batch.Completed, retrieved.Status())
	suite.Require().NotNil(retrieved.CompletedAt())
	suite.True(at.Equal(*retrieved.CompletedAt()))
	suite.Equal("All 2 orders delivered successfully", retrieved.CompletionNotes())
	suite.Equal(2, retrieved.OrderCount())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestUpdate_NonExistentBatch_ReturnsNotFoundError() {
	b, _ := suite.newBatch(1)

	err := suite.repository.Update(suite.T().Context(), b)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BatchRepositoryIntegrationTestSuite) TestListByStatus_FiltersAndOrders() {
	ctx := suite.T().Context()
	first, _ := suite.newBatch(1)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	time.Sleep(2 * time.Millisecond)
	second, _ := suite.newBatch(1)
	suite.Require().NoError(suite.repository.Add(ctx, second))
	started, _ := suite.newBatch(1)
	suite.Require().NoError(suite.repository.Add(ctx, started))
	suite.Require().NoError(started.AssignDriver(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, started))

	pending, err := suite.repository.ListByStatus(ctx, batch.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(first.ID(), pending[0].ID())
	suite.Equal(second.ID(), pending[1].ID())
	suite.Equal(1, pending[0].OrderCount())

	inProgress, err := suite.repository.ListByStatus(ctx, batch.InProgress)
	suite.Require().NoError(err)
	suite.Require().Len(inProgress, 1)
	suite.Equal(started.ID(), inProgress[0].ID())
}

func (suite *BatchRepositoryIntegrationTestSuite) newBatch(weights ...float64) (*batch.Batch, []*order.Order) {
	orders := make([]*order.Order, 0, len(weights))
	for _, w := range weights {
		o, err := order.NewOrder(kernel.NewUUID(), "411001", "FC Road, Pune", w,
			order.Customer{Name: "M. Joshi", Phone: "9890000000"}, order.PaymentPrepaid, 0)
		suite.Require().NoError(err)
		orders = append(orders, o)
	}

	b, err := batch.NewBatch(kernel.NewUUID(), orders)
	suite.Require().NoError(err)
	return b, orders
}

func TestBatchRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BatchRepositoryIntegrationTestSuite))
}
