// Package http exposes the fulfillment use cases over a REST API built on
// Echo. Request and response shapes are local to this package; monetary
// amounts travel as decimal strings to avoid float rounding on the wire.
package http

import (
	"errors"
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler         commands.PlaceOrderCommandHandler
	transitionSubOrderHandler commands.TransitionSubOrderCommandHandler

	// Query handlers
	getOrderHandler              queries.GetOrderQueryHandler
	getWarehouseSubOrdersHandler queries.GetWarehouseSubOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionSubOrderHandler commands.TransitionSubOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getWarehouseSubOrdersHandler queries.GetWarehouseSubOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:            placeOrderHandler,
		transitionSubOrderHandler:    transitionSubOrderHandler,
		getOrderHandler:              getOrderHandler,
		getWarehouseSubOrdersHandler: getWarehouseSubOrdersHandler,
	}
}

// RegisterRoutes attaches the API routes to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/suborders/:id/status", s.TransitionSubOrder)
	api.GET("/warehouses/:id/suborders", s.GetWarehouseSubOrders)
}

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderLineRequest is one draft line of an incoming order.
type PlaceOrderLineRequest struct {
	MaterialID string  `json:"material_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  *string `json:"unit_price,omitempty"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerRef     string                  `json:"customer_ref"`
	Lines           []PlaceOrderLineRequest `json:"lines"`
	Tax             string                  `json:"tax"`
	DeliveryCharges string                  `json:"delivery_charges"`
	Discount        string                  `json:"discount"`
	Currency        string                  `json:"currency"`
	Priority        string                  `json:"priority"`
}

// PlaceOrderResponse carries the identifier assigned to a placed order.
type PlaceOrderResponse struct {
	ID string `json:"id"`
}

// PlaceOrder handles POST /api/v1/orders - places an order and splits it into
// per-warehouse sub-orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := buildPlaceOrderCommand(request)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{ID: cmd.OrderID().String()})
}

// TransitionSubOrderRequest is the body of POST /api/v1/suborders/:id/status.
type TransitionSubOrderRequest struct {
	Status string `json:"status"`
}

// TransitionSubOrder handles POST /api/v1/suborders/:id/status - advances a
// sub-order through its lifecycle and re-derives the parent order status.
func (s *Server) TransitionSubOrder(ctx echo.Context) error {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid sub-order ID")
	}

	var request TransitionSubOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	next, err := suborder.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	cmd, err := commands.NewTransitionSubOrderCommand(subOrderID, next)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if handleErr := s.transitionSubOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OrderItemResponse is one line of an order in API responses.
type OrderItemResponse struct {
	MaterialID string `json:"material_id"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	Unit       string `json:"unit"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"line_total"`
}

// SubOrderSummaryResponse is the condensed sub-order view embedded in an order.
type SubOrderSummaryResponse struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	WarehouseName string `json:"warehouse_name"`
	Status        string `json:"status"`
	Total         string `json:"total"`
	Currency      string `json:"currency"`
}

// OrderResponse is the body of GET /api/v1/orders/:id.
type OrderResponse struct {
	ID              string                    `json:"id"`
	Number          string                    `json:"number"`
	CustomerRef     string                    `json:"customer_ref"`
	Status          string                    `json:"status"`
	Priority        string                    `json:"priority"`
	Subtotal        string                    `json:"subtotal"`
	Tax             string                    `json:"tax"`
	DeliveryCharges string                    `json:"delivery_charges"`
	Discount        string                    `json:"discount"`
	Total           string                    `json:"total"`
	Currency        string                    `json:"currency"`
	Items           []OrderItemResponse       `json:"items"`
	SubOrders       []SubOrderSummaryResponse `json:"suborders"`
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its
// sub-order summaries.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			MaterialID: item.MaterialID.String(),
			Name:       item.Name,
			SKU:        item.SKU,
			Unit:       item.Unit,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			LineTotal:  item.LineTotal.StringFixed(2),
		}
	}

	subOrders := make([]SubOrderSummaryResponse, len(result.SubOrders))
	for i, summary := range result.SubOrders {
		subOrders[i] = SubOrderSummaryResponse{
			ID:            summary.ID.String(),
			Number:        summary.Number,
			WarehouseName: summary.WarehouseName,
			Status:        summary.Status,
			Total:         summary.Total.StringFixed(2),
			Currency:      summary.Currency,
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:              result.ID.String(),
		Number:          result.Number,
		CustomerRef:     result.CustomerRef,
		Status:          result.Status,
		Priority:        result.Priority,
		Subtotal:        result.Subtotal.StringFixed(2),
		Tax:             result.Tax.StringFixed(2),
		DeliveryCharges: result.DeliveryCharges.StringFixed(2),
		Discount:        result.Discount.StringFixed(2),
		Total:           result.Total.StringFixed(2),
		Currency:        result.Currency,
		Items:           items,
		SubOrders:       subOrders,
	})
}

// WarehouseSubOrderResponse is one entry of a warehouse queue.
type WarehouseSubOrderResponse struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	OrderNumber string `json:"order_number"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
}

// GetWarehouseSubOrders handles GET /api/v1/warehouses/:id/suborders -
// retrieves the sub-order queue of one warehouse, urgent parents first.
func (s *Server) GetWarehouseSubOrders(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse ID")
	}

	query, err := queries.NewGetWarehouseSubOrdersQuery(warehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse ID: "+err.Error())
	}

	result, err := s.getWarehouseSubOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]WarehouseSubOrderResponse, len(result))
	for i, entry := range result {
		response[i] = WarehouseSubOrderResponse{
			ID:          entry.ID.String(),
			Number:      entry.Number,
			OrderNumber: entry.OrderNumber,
			Priority:    entry.Priority,
			Status:      entry.Status,
			Total:       entry.Total.StringFixed(2),
			Currency:    entry.Currency,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func buildPlaceOrderCommand(request PlaceOrderRequest) (commands.PlaceOrderCommand, error) {
	lines := make([]commands.PlaceOrderLine, 0, len(request.Lines))
	for _, lineReq := range request.Lines {
		materialID, err := kernel.UUIDFromString(lineReq.MaterialID)
		if err != nil {
			return commands.PlaceOrderCommand{}, err
		}

		line := commands.PlaceOrderLine{
			MaterialID: materialID,
			Quantity:   lineReq.Quantity,
		}
		if lineReq.UnitPrice != nil {
			price, priceErr := decimal.NewFromString(*lineReq.UnitPrice)
			if priceErr != nil {
				return commands.PlaceOrderCommand{}, priceErr
			}
			line.UnitPrice = &price
		}
		lines = append(lines, line)
	}

	tax, err := parseAmount(request.Tax)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	deliveryCharges, err := parseAmount(request.DeliveryCharges)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	discount, err := parseAmount(request.Discount)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	priority := order.PriorityNormal
	if request.Priority != "" {
		priority, err = order.PriorityFromString(request.Priority)
		if err != nil {
			return commands.PlaceOrderCommand{}, err
		}
	}

	return commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		request.CustomerRef,
		lines,
		tax, deliveryCharges, discount,
		request.Currency,
		priority,
	)
}

// parseAmount treats an absent amount as zero.
func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps use case failures onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrPersistenceConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrMaterialNotFound),
		errors.Is(err, services.ErrUnallocatableItem):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
