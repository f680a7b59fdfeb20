package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type GenerateBatchesRequest struct {
	MaxOrders int     `json:"maxOrders,omitempty"`
	MaxWeight float64 `json:"maxWeight,omitempty"`
}

type GenerateBatchesResponse struct {
	Batches    []GeneratedBatch `json:"batches"`
	OrderCount int              `json:"orderCount"`
	Clusters   int              `json:"clusters"`
	Iterations int              `json:"iterations"`
	Converged  bool             `json:"converged"`
	MaxOrders  int              `json:"maxOrders"`
	MaxWeight  float64          `json:"maxWeight"`
}

type GeneratedBatch struct {
	ID          string   `json:"id"`
	OrderIDs    []string `json:"orderIds"`
	OrderCount  int      `json:"orderCount"`
	TotalWeight float64  `json:"totalWeight"`
	Status      string   `json:"status"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Batch struct {
	ID              string       `json:"id"`
	Status          string       `json:"status"`
	DriverID        *string      `json:"driverId,omitempty"`
	TotalWeight     float64      `json:"totalWeight"`
	OrderCount      int          `json:"orderCount"`
	CreatedAt       time.Time    `json:"createdAt"`
	CompletedAt     *time.Time   `json:"completedAt,omitempty"`
	CompletionNotes string       `json:"completionNotes,omitempty"`
	Orders          []BatchOrder `json:"orders"`
}

type BatchOrder struct {
	ID         string    `json:"id"`
	PostalCode string    `json:"postalCode"`
	Address    string    `json:"address"`
	Weight     float64   `json:"weight"`
	Status     string    `json:"status"`
	Location   *Location `json:"location,omitempty"`
}

type BatchStats struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"byStatus"`
	TotalWeight   float64        `json:"totalWeight"`
	PendingOrders int            `json:"pendingOrders"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driverId"`
}

type NewOrder struct {
	PostalCode    string  `json:"postalCode"`
	Address       string  `json:"address"`
	Weight        float64 `json:"weight"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	PaymentType   string  `json:"paymentType"`
	Amount        float64 `json:"amount"`
}

type PendingOrder struct {
	ID         string    `json:"id"`
	PostalCode string    `json:"postalCode"`
	Address    string    `json:"address"`
	Weight     float64   `json:"weight"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DeliverOrderResponse struct {
	OrderID        string `json:"orderId"`
	BatchCompleted bool   `json:"batchCompleted"`
}

type NewDriver struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Driver struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	ActiveBatches int    `json:"activeBatches"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

func toGenerateBatchesResponse(r commands.GenerateBatchesResult) GenerateBatchesResponse {
	resp := GenerateBatchesResponse{
		Batches:    make([]GeneratedBatch, len(r.Batches)),
		OrderCount: r.OrderCount,
		Clusters:   r.Clusters,
		Iterations: r.Iterations,
		Converged:  r.Converged,
		MaxOrders:  r.Limits.MaxOrders,
		MaxWeight:  r.Limits.MaxWeight,
	}
	for i, b := range r.Batches {
		ids := b.OrderIDs()
		orderIDs := make([]string, len(ids))
		for j, id := range ids {
			orderIDs[j] = id.String()
		}
		resp.Batches[i] = GeneratedBatch{
			ID:          b.ID().String(),
			OrderIDs:    orderIDs,
			OrderCount:  b.OrderCount(),
			TotalWeight: b.TotalWeight(),
			Status:      b.Status().String(),
		}
	}
	return resp
}

func toBatch(v queries.BatchView) Batch {
	resp := Batch{
		ID:              v.ID.String(),
		Status:          v.Status,
		TotalWeight:     v.TotalWeight,
		OrderCount:      v.OrderCount,
		CreatedAt:       v.CreatedAt,
		CompletedAt:     v.CompletedAt,
		CompletionNotes: v.CompletionNotes,
		Orders:          make([]BatchOrder, len(v.Orders)),
	}
	if v.DriverID != nil {
		id := v.DriverID.String()
		resp.DriverID = &id
	}
	for i, o := range v.Orders {
		member := BatchOrder{
			ID:         o.ID.String(),
			PostalCode: o.PostalCode,
			Address:    o.Address,
			Weight:     o.Weight,
			Status:     o.Status,
		}
		if o.Location != nil {
			member.Location = &Location{Lat: o.Location.Lat(), Lng: o.Location.Lng()}
		}
		resp.Orders[i] = member
	}
	return resp
}
