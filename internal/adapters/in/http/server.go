// Package http exposes the dispatch use cases over a JSON REST API served by
// echo.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Use case contracts the server depends on. The command and query handlers
// of the application layer satisfy them.
type (
	BatchGenerator interface {
		Handle(ctx context.Context, cmd commands.GenerateBatchesCommand) (commands.GenerateBatchesResult, error)
	}
	DriverAssigner interface {
		Handle(ctx context.Context, cmd commands.AssignDriverCommand) error
	}
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	OrderDeliverer interface {
		Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (bool, error)
	}
	DriverCreator interface {
		Handle(ctx context.Context, cmd commands.CreateDriverCommand) error
	}
	BatchesReader interface {
		Handle(ctx context.Context, query queries.GetBatchesQuery) ([]queries.BatchView, error)
	}
	BatchReader interface {
		Handle(ctx context.Context, query queries.GetBatchQuery) (queries.BatchView, error)
	}
	BatchStatsReader interface {
		Handle(ctx context.Context, query queries.GetBatchStatsQuery) (queries.GetBatchStatsQueryResponse, error)
	}
	PendingOrdersReader interface {
		Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
	}
	DriversReader interface {
		Handle(ctx context.Context, query queries.GetAllDriversQuery) ([]queries.GetAllDriversQueryResponse, error)
	}
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	GenerateBatches BatchGenerator
	AssignDriver    DriverAssigner
	CreateOrder     OrderCreator
	DeliverOrder    OrderDeliverer
	CreateDriver    DriverCreator
	GetBatches      BatchesReader
	GetBatch        BatchReader
	GetBatchStats   BatchStatsReader
	GetPending      PendingOrdersReader
	GetDrivers      DriversReader
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, logger: logger.With("component", "http"), now: time.Now}
}

// Register mounts the API routes under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/batches/generate", s.GenerateBatches)
	api.GET("/batches", s.GetBatches)
	api.GET("/batches/stats", s.GetBatchStats)
	api.GET("/batches/:id", s.GetBatch)
	api.PATCH("/batches/:id/driver", s.AssignDriver)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/pending", s.GetPendingOrders)
	api.POST("/orders/:id/deliver", s.DeliverOrder)

	api.POST("/drivers", s.CreateDriver)
	api.GET("/drivers", s.GetDrivers)
}

// GenerateBatches handles POST /api/v1/batches/generate.
//
//	@Summary	Group pending orders into delivery batches
//	@Tags		batches
//	@Accept		json
//	@Produce	json
//	@Param		limits	body		GenerateBatchesRequest	false	"Per-run capacity overrides"
//	@Success	200		{object}	GenerateBatchesResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/batches/generate [post]
func (s *Server) GenerateBatches(c echo.Context) error {
	var req GenerateBatchesRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	cmd, err := commands.NewGenerateBatchesCommand(req.MaxOrders, req.MaxWeight)
	if err != nil {
		return s.fail(c, err, "Invalid batch limits")
	}

	result, err := s.h.GenerateBatches.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Batch generation failed")
	}

	return c.JSON(http.StatusOK, toGenerateBatchesResponse(result))
}

// GetBatches handles GET /api/v1/batches?status=PENDING.
//
//	@Summary	List batches, newest first
//	@Tags		batches
//	@Produce	json
//	@Param		status	query		string	false	"PENDING, IN_PROGRESS, COMPLETED or CANCELLED"
//	@Success	200		{array}		Batch
//	@Failure	400		{object}	ErrorResponse
//	@Router		/batches [get]
func (s *Server) GetBatches(c echo.Context) error {
	var status *batch.Status
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		parsed, err := batch.ParseStatus(strings.ToUpper(raw))
		if err != nil {
			return s.fail(c, err, "Invalid status filter")
		}
		status = &parsed
	}

	query, err := queries.NewGetBatchesQuery(status)
	if err != nil {
		return s.fail(c, err, "Invalid status filter")
	}

	views, err := s.h.GetBatches.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve batches")
	}

	response := make([]Batch, len(views))
	for i, v := range views {
		response[i] = toBatch(v)
	}

	return c.JSON(http.StatusOK, response)
}

// GetBatch handles GET /api/v1/batches/:id.
//
//	@Summary	Get a batch with its orders
//	@Tags		batches
//	@Produce	json
//	@Param		id	path		string	true	"Batch ID"
//	@Success	200	{object}	Batch
//	@Failure	404	{object}	ErrorResponse
//	@Router		/batches/{id} [get]
func (s *Server) GetBatch(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid batch id")
	}

	query, err := queries.NewGetBatchQuery(id)
	if err != nil {
		return s.fail(c, err, "Invalid batch id")
	}

	view, err := s.h.GetBatch.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve batch")
	}

	return c.JSON(http.StatusOK, toBatch(view))
}

// GetBatchStats handles GET /api/v1/batches/stats.
//
//	@Summary	Batch counts per status
//	@Tags		batches
//	@Produce	json
//	@Success	200	{object}	BatchStats
//	@Router		/batches/stats [get]
func (s *Server) GetBatchStats(c echo.Context) error {
	stats, err := s.h.GetBatchStats.Handle(c.Request().Context(), queries.NewGetBatchStatsQuery())
	if err != nil {
		return s.fail(c, err, "Failed to retrieve batch stats")
	}

	return c.JSON(http.StatusOK, BatchStats{
		Total:         stats.Total,
		ByStatus:      stats.ByStatus,
		TotalWeight:   stats.TotalWeight,
		PendingOrders: stats.PendingOrders,
	})
}

// AssignDriver handles PATCH /api/v1/batches/:id/driver.
//
//	@Summary	Hand a pending batch to a driver
//	@Tags		batches
//	@Accept		json
//	@Param		id		path	string				true	"Batch ID"
//	@Param		driver	body	AssignDriverRequest	true	"Driver"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/batches/{id}/driver [patch]
func (s *Server) AssignDriver(c echo.Context) error {
	batchID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid batch id")
	}

	var req AssignDriverRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(c, "Invalid driver id")
	}

	cmd, err := commands.NewAssignDriverCommand(batchID, driverID)
	if err != nil {
		return s.fail(c, err, "Invalid assignment")
	}

	if err = s.h.AssignDriver.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "Failed to assign driver")
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders.
//
//	@Summary	Register a pending order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		NewOrder	true	"Order"
//	@Success	201		{object}	CreatedResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/orders [post]
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	paymentType := order.PaymentType(strings.ToUpper(strings.TrimSpace(req.PaymentType)))
	if paymentType == "" {
		paymentType = order.PaymentCOD
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, req.PostalCode, req.Address, req.Weight,
		order.Customer{Name: req.CustomerName, Phone: req.CustomerPhone}, paymentType, req.Amount)
	if err != nil {
		return s.fail(c, err, "Invalid order data")
	}

	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "Failed to create order")
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// GetPendingOrders handles GET /api/v1/orders/pending.
//
//	@Summary	List orders waiting for the next generation run
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}	PendingOrder
//	@Router		/orders/pending [get]
func (s *Server) GetPendingOrders(c echo.Context) error {
	orders, err := s.h.GetPending.Handle(c.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return s.fail(c, err, "Failed to retrieve orders")
	}

	response := make([]PendingOrder, len(orders))
	for i, o := range orders {
		response[i] = PendingOrder{
			ID:         o.ID.String(),
			PostalCode: o.PostalCode,
			Address:    o.Address,
			Weight:     o.Weight,
			CreatedAt:  o.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
//
//	@Summary	Mark an order delivered
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	DeliverOrderResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/orders/{id}/deliver [post]
func (s *Server) DeliverOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, s.now())
	if err != nil {
		return s.fail(c, err, "Invalid delivery")
	}

	completed, err := s.h.DeliverOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, "Failed to deliver order")
	}

	return c.JSON(http.StatusOK, DeliverOrderResponse{OrderID: orderID.String(), BatchCompleted: completed})
}

// CreateDriver handles POST /api/v1/drivers.
//
//	@Summary	Register a driver
//	@Tags		drivers
//	@Accept		json
//	@Produce	json
//	@Param		driver	body		NewDriver	true	"Driver"
//	@Success	201		{object}	CreatedResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/drivers [post]
func (s *Server) CreateDriver(c echo.Context) error {
	var req NewDriver
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(id, req.Name, req.Phone)
	if err != nil {
		return s.fail(c, err, "Invalid driver data")
	}

	if err = s.h.CreateDriver.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "Failed to create driver")
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// GetDrivers handles GET /api/v1/drivers.
//
//	@Summary	List drivers
//	@Tags		drivers
//	@Produce	json
//	@Success	200	{array}	Driver
//	@Router		/drivers [get]
func (s *Server) GetDrivers(c echo.Context) error {
	drivers, err := s.h.GetDrivers.Handle(c.Request().Context(), queries.NewGetAllDriversQuery())
	if err != nil {
		return s.fail(c, err, "Failed to retrieve drivers")
	}

	response := make([]Driver, len(drivers))
	for i, d := range drivers {
		response[i] = Driver{
			ID:            d.ID.String(),
			Name:          d.Name,
			Phone:         d.Phone,
			ActiveBatches: d.ActiveBatches,
		}
	}

	return c.JSON(http.StatusOK, response)
}
