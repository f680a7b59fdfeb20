package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Handle(ctx context.Context, cmd commands.GenerateBatchesCommand) (commands.GenerateBatchesResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.GenerateBatchesResult), args.Error(1)
}

type MockAssigner struct{ mock.Mock }

func (m *MockAssigner) Handle(ctx context.Context, cmd commands.AssignDriverCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockDeliverer struct{ mock.Mock }

func (m *MockDeliverer) Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

type MockDriverCreator struct{ mock.Mock }

func (m *MockDriverCreator) Handle(ctx context.Context, cmd commands.CreateDriverCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockBatchesReader struct{ mock.Mock }

func (m *MockBatchesReader) Handle(ctx context.Context, q queries.GetBatchesQuery) ([]queries.BatchView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.BatchView), args.Error(1)
}

type MockBatchReader struct{ mock.Mock }

func (m *MockBatchReader) Handle(ctx context.Context, q queries.GetBatchQuery) (queries.BatchView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.BatchView), args.Error(1)
}

type MockStatsReader struct{ mock.Mock }

func (m *MockStatsReader) Handle(ctx context.Context, q queries.GetBatchStatsQuery) (queries.GetBatchStatsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetBatchStatsQueryResponse), args.Error(1)
}

type MockPendingReader struct{ mock.Mock }

func (m *MockPendingReader) Handle(ctx context.Context, q queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetPendingOrdersQueryResponse), args.Error(1)
}

type MockDriversReader struct{ mock.Mock }

func (m *MockDriversReader) Handle(ctx context.Context, q queries.GetAllDriversQuery) ([]queries.GetAllDriversQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetAllDriversQueryResponse), args.Error(1)
}

type fixture struct {
	generator *MockGenerator
	assigner  *MockAssigner
	orders    *MockOrderCreator
	deliverer *MockDeliverer
	drivers   *MockDriverCreator
	batches   *MockBatchesReader
	batch     *MockBatchReader
	stats     *MockStatsReader
	pending   *MockPendingReader
	driverLs  *MockDriversReader
	handler   http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		generator: new(MockGenerator),
		assigner:  new(MockAssigner),
		orders:    new(MockOrderCreator),
		deliverer: new(MockDeliverer),
		drivers:   new(MockDriverCreator),
		batches:   new(MockBatchesReader),
		batch:     new(MockBatchReader),
		stats:     new(MockStatsReader),
		pending:   new(MockPendingReader),
		driverLs:  new(MockDriversReader),
	}
	server := httpadapter.NewServer(httpadapter.Handlers{
		GenerateBatches: f.generator,
		AssignDriver:    f.assigner,
		CreateOrder:     f.orders,
		DeliverOrder:    f.deliverer,
		CreateDriver:    f.drivers,
		GetBatches:      f.batches,
		GetBatch:        f.batch,
		GetBatchStats:   f.stats,
		GetPending:      f.pending,
		GetDrivers:      f.driverLs,
	}, nil)
	f.handler = httpadapter.NewRouter(server, http.NotFoundHandler(), nil)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	rec := newFixture().do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestGenerateBatches_Success(t *testing.T) {
	f := newFixture()
	o, err := order.NewOrder(kernel.NewUUID(), "400001", "Colaba", 2, order.Customer{}, order.PaymentCOD, 0)
	require.NoError(t, err)
	b, err := batch.NewBatch(kernel.NewUUID(), []*order.Order{o})
	require.NoError(t, err)

	f.generator.On("Handle", mock.Anything, mock.AnythingOfType("commands.GenerateBatchesCommand")).
		Return(commands.GenerateBatchesResult{
			Batches:    []*batch.Batch{b},
			OrderCount: 1,
			Clusters:   1,
			Iterations: 1,
			Converged:  true,
			Limits:     services.Limits{MaxOrders: 10, MaxWeight: 25},
		}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/batches/generate", `{"maxOrders":10}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[httpadapter.GenerateBatchesResponse](t, rec)
	require.Len(t, resp.Batches, 1)
	assert.Equal(t, b.ID().String(), resp.Batches[0].ID)
	assert.Equal(t, []string{o.ID().String()}, resp.Batches[0].OrderIDs)
	assert.Equal(t, "PENDING", resp.Batches[0].Status)
	assert.Equal(t, 10, resp.MaxOrders)
	f.generator.AssertExpectations(t)
}

func TestGenerateBatches_NegativeLimit(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/v1/batches/generate", `{"maxWeight":-1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.generator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGenerateBatches_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"geocode failure", ports.NewGeocodeFailureError("999999", ports.ErrNoGeocodeResults), http.StatusBadGateway},
		{"concurrent update", ports.ErrConcurrentUpdate, http.StatusConflict},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.generator.On("Handle", mock.Anything, mock.Anything).
				Return(commands.GenerateBatchesResult{}, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/batches/generate", "")

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.code, decode[httpadapter.ErrorResponse](t, rec).Code)
		})
	}
}

func TestGetBatches_StatusFilter(t *testing.T) {
	f := newFixture()
	driverID := kernel.NewUUID()
	view := queries.BatchView{
		ID:          kernel.NewUUID(),
		Status:      "IN_PROGRESS",
		DriverID:    &driverID,
		TotalWeight: 3,
		OrderCount:  1,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Orders: []queries.BatchOrderView{{
			ID:       kernel.NewUUID(),
			Status:   "ASSIGNED",
			Weight:   3,
			Location: func() *kernel.GeoPoint { p := kernel.MustNewGeoPoint(19.1, 72.1); return &p }(),
		}},
	}
	f.batches.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetBatchesQuery) bool {
		return q.Status() != nil && *q.Status() == batch.InProgress
	})).Return([]queries.BatchView{view}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/batches?status=in_progress", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]httpadapter.Batch](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, driverID.String(), *resp[0].DriverID)
	require.NotNil(t, resp[0].Orders[0].Location)
	assert.InDelta(t, 19.1, resp[0].Orders[0].Location.Lat, 1e-9)
	f.batches.AssertExpectations(t)
}

func TestGetBatches_InvalidStatus(t *testing.T) {
	rec := newFixture().do(http.MethodGet, "/api/v1/batches?status=LOST", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBatch(t *testing.T) {
	f := newFixture()
	id := kernel.NewUUID()
	f.batch.On("Handle", mock.Anything, mock.Anything).
		Return(queries.BatchView{}, errs.NewObjectNotFoundError("batch", id.String())).Once()

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/v1/batches/"+id.String(), "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/batches/not-a-uuid", "").Code)
}

func TestGetBatchStats(t *testing.T) {
	f := newFixture()
	f.stats.On("Handle", mock.Anything, mock.Anything).Return(queries.GetBatchStatsQueryResponse{
		Total:         3,
		ByStatus:      map[string]int{"PENDING": 2, "IN_PROGRESS": 1, "COMPLETED": 0, "CANCELLED": 0},
		TotalWeight:   41.5,
		PendingOrders: 7,
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/batches/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[httpadapter.BatchStats](t, rec)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus["PENDING"])
	assert.Equal(t, 7, stats.PendingOrders)
}

func TestAssignDriver(t *testing.T) {
	f := newFixture()
	batchID, driverID := kernel.NewUUID(), kernel.NewUUID()
	f.assigner.On("Handle", mock.Anything, mock.AnythingOfType("commands.AssignDriverCommand")).Return(nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/batches/"+batchID.String()+"/driver",
		`{"driverId":"`+driverID.String()+`"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.assigner.AssertExpectations(t)

	rec = f.do(http.MethodPatch, "/api/v1/batches/"+batchID.String()+"/driver", `{"driverId":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture()
	f.orders.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateOrderCommand")).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders",
		`{"postalCode":"400001","address":"Colaba Causeway","weight":2.5,"paymentType":"upi","amount":300}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	_, err := kernel.UUIDFromString(decode[httpadapter.CreatedResponse](t, rec).ID)
	require.NoError(t, err)
	f.orders.AssertExpectations(t)
}

func TestCreateOrder_Invalid(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{"postalCode":"","address":"x","weight":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.orders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetPendingOrders(t *testing.T) {
	f := newFixture()
	f.pending.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetPendingOrdersQueryResponse{
		{ID: kernel.NewUUID(), PostalCode: "400001", Weight: 1.5},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/pending", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]httpadapter.PendingOrder](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, "400001", resp[0].PostalCode)
}

func TestDeliverOrder(t *testing.T) {
	f := newFixture()
	id := kernel.NewUUID()
	f.deliverer.On("Handle", mock.Anything, mock.AnythingOfType("commands.DeliverOrderCommand")).Return(true, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/deliver", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[httpadapter.DeliverOrderResponse](t, rec)
	assert.Equal(t, id.String(), resp.OrderID)
	assert.True(t, resp.BatchCompleted)
}

func TestDeliverOrder_NotInProgress(t *testing.T) {
	f := newFixture()
	f.deliverer.On("Handle", mock.Anything, mock.Anything).Return(false, commands.ErrBatchIsNotInProgress).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/deliver", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDrivers(t *testing.T) {
	f := newFixture()
	f.drivers.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateDriverCommand")).Return(nil).Once()
	f.driverLs.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetAllDriversQueryResponse{
		{ID: kernel.NewUUID(), Name: "Ravi", Phone: "9876543210", ActiveBatches: 1},
	}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/drivers", `{"name":"Ravi","phone":"9876543210"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/drivers", `{"name":"","phone":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/drivers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]httpadapter.Driver](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, 1, resp[0].ActiveBatches)
}
