// Package http exposes the inbound event surface and the read-side queries
// over HTTP. Payment capture and the operator admin tool are external
// collaborators; these endpoints are the contract they call.
package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"restring/internal/core/application/usecases/commands"
	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/ports"
	"restring/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	confirmOrderHandler     commands.ConfirmOrderCommandHandler
	transitionOrderHandler  commands.TransitionOrderCommandHandler
	restockHandler          commands.RestockCommandHandler
	recomputeProfileHandler commands.RecomputeProfileCommandHandler

	// Query handlers
	listOrdersHandler      queries.ListOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	inventoryReportHandler queries.InventoryReportQueryHandler
	customerSummaryHandler queries.CustomerSummaryQueryHandler
	churnReportHandler     queries.ChurnReportQueryHandler
	scheduleOutlookHandler queries.ScheduleOutlookQueryHandler
	revenueForecastHandler queries.RevenueForecastQueryHandler

	quoter ports.PriceQuoter
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	restockHandler commands.RestockCommandHandler,
	recomputeProfileHandler commands.RecomputeProfileCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	inventoryReportHandler queries.InventoryReportQueryHandler,
	customerSummaryHandler queries.CustomerSummaryQueryHandler,
	churnReportHandler queries.ChurnReportQueryHandler,
	scheduleOutlookHandler queries.ScheduleOutlookQueryHandler,
	revenueForecastHandler queries.RevenueForecastQueryHandler,
	quoter ports.PriceQuoter,
) *Server {
	return &Server{
		confirmOrderHandler:     confirmOrderHandler,
		transitionOrderHandler:  transitionOrderHandler,
		restockHandler:          restockHandler,
		recomputeProfileHandler: recomputeProfileHandler,
		listOrdersHandler:       listOrdersHandler,
		getOrderHandler:         getOrderHandler,
		inventoryReportHandler:  inventoryReportHandler,
		customerSummaryHandler:  customerSummaryHandler,
		churnReportHandler:      churnReportHandler,
		scheduleOutlookHandler:  scheduleOutlookHandler,
		revenueForecastHandler:  revenueForecastHandler,
		quoter:                  quoter,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.ConfirmOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/inventory/restock", s.Restock)
	api.GET("/inventory/report", s.InventoryReport)
	api.GET("/customers/:email/summary", s.CustomerSummary)
	api.POST("/customers/:email/recompute", s.RecomputeProfile)
	api.GET("/analytics/churn", s.ChurnReport)
	api.GET("/analytics/forecast", s.RevenueForecast)
	api.GET("/schedule/outlook", s.ScheduleOutlook)
	api.GET("/quote", s.Quote)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ConfirmOrder handles POST /api/v1/orders - the "payment confirmed" event.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	var req ConfirmOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount: "+err.Error())
	}

	cmd, err := commands.NewConfirmOrderCommand(
		orderID, req.CustomerEmail, req.SKU, req.Options, amount, req.Express)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	actor := req.Actor
	if actor == "" {
		actor = "admin"
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, req.Note, actor)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	result, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		Changed:   result.Changed,
		Shortfall: result.Shortfall,
	})
}

// Restock handles POST /api/v1/inventory/restock.
func (s *Server) Restock(ctx echo.Context) error {
	var req RestockRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	costPerUnit, err := decimal.NewFromString(req.CostPerUnit)
	if err != nil {
		return badRequest(ctx, "Invalid cost per unit: "+err.Error())
	}

	cmd, err := commands.NewRestockCommand(req.SKU, req.Quantity, costPerUnit, req.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid restock: "+err.Error())
	}

	if err = s.restockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecomputeProfile handles POST /api/v1/customers/:email/recompute - the on
// demand variant of the post-delivery profile refresh.
func (s *Server) RecomputeProfile(ctx echo.Context) error {
	cmd, err := commands.NewRecomputeProfileCommand(ctx.Param("email"))
	if err != nil {
		return badRequest(ctx, "Invalid customer email: "+err.Error())
	}

	if err = s.recomputeProfileHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListOrders handles GET /api/v1/orders (optional ?customer= filter).
func (s *Server) ListOrders(ctx echo.Context) error {
	query := queries.NewListOrdersQuery(ctx.QueryParam("customer"))

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		response = append(response, OrderSummary{
			ID:            o.ID.String(),
			CustomerEmail: o.CustomerEmail,
			SKU:           o.SKU,
			Status:        o.Status.String(),
			Total:         o.Total.String(),
			Express:       o.Express,
			CreatedAt:     o.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	history := make([]StatusChange, 0, len(detail.History))
	for _, h := range detail.History {
		history = append(history, StatusChange{
			Status:     h.Status.String(),
			Note:       h.Note,
			Actor:      h.Actor,
			OccurredAt: h.OccurredAt,
		})
	}

	return ctx.JSON(http.StatusOK, OrderDetail{
		ID:            detail.ID.String(),
		CustomerEmail: detail.CustomerEmail,
		SKU:           detail.SKU,
		Options:       detail.Options,
		Status:        detail.Status.String(),
		Total:         detail.Total.String(),
		Express:       detail.Express,
		Notes:         detail.Notes,
		CreatedAt:     detail.CreatedAt,
		UpdatedAt:     detail.UpdatedAt,
		History:       history,
	})
}

// InventoryReport handles GET /api/v1/inventory/report.
func (s *Server) InventoryReport(ctx echo.Context) error {
	report, err := s.inventoryReportHandler.Handle(
		ctx.Request().Context(), queries.NewInventoryReportQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]InventoryRow, 0, len(report))
	for _, row := range report {
		var daysUntilStockout *float64
		if !math.IsInf(row.DaysUntilStockout, 1) {
			d := row.DaysUntilStockout
			daysUntilStockout = &d
		}

		response = append(response, InventoryRow{
			SKU:               row.SKU,
			Name:              row.Name,
			OnHand:            row.OnHand,
			ReorderAt:         row.ReorderAt,
			Usage30d:          row.Usage30d,
			CostPerUnit:       row.CostPerUnit.String(),
			AlertLevel:        string(row.AlertLevel),
			DaysUntilStockout: daysUntilStockout,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CustomerSummary handles GET /api/v1/customers/:email/summary.
func (s *Server) CustomerSummary(ctx echo.Context) error {
	query, err := queries.NewCustomerSummaryQuery(ctx.Param("email"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	summary, err := s.customerSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	upsells := make([]UpsellSuggestion, 0, len(summary.Upsells))
	for _, u := range summary.Upsells {
		upsells = append(upsells, UpsellSuggestion{
			Suggestion:     u.Suggestion,
			Reason:         u.Reason,
			EstimatedValue: u.EstimatedValue.String(),
		})
	}

	return ctx.JSON(http.StatusOK, CustomerSummaryResponse{
		Email:            summary.Email,
		Tags:             summary.Tags,
		TotalOrders:      summary.Stats.TotalOrders,
		TotalSpend:       summary.Stats.TotalSpend.String(),
		LifetimeValue:    summary.Stats.LifetimeValue.String(),
		AvgIntervalDays:  summary.Stats.AvgIntervalDays,
		LastOrderAt:      summary.Stats.LastOrderAt,
		ChurnRisk:        summary.Stats.ChurnRisk,
		NextExpectedAt:   summary.Stats.NextExpectedAt,
		Tier:             string(summary.Stats.Tier),
		MembershipMonths: summary.Stats.MembershipMonths,
		Upsells:          upsells,
	})
}

// ChurnReport handles GET /api/v1/analytics/churn (optional ?minRisk=).
func (s *Server) ChurnReport(ctx echo.Context) error {
	minRisk := 0.0
	if raw := ctx.QueryParam("minRisk"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(ctx, "Invalid minRisk: "+err.Error())
		}
		minRisk = parsed
	}

	query, err := queries.NewChurnReportQuery(minRisk)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	report, err := s.churnReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ChurnRow, 0, len(report))
	for _, row := range report {
		response = append(response, ChurnRow{
			Email:          row.Email,
			ChurnRisk:      row.ChurnRisk,
			Tier:           string(row.Tier),
			LastOrderAt:    row.LastOrderAt,
			NextExpectedAt: row.NextExpectedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// RevenueForecast handles GET /api/v1/analytics/forecast (optional ?days=).
func (s *Server) RevenueForecast(ctx echo.Context) error {
	days := 7
	if raw := ctx.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid days: "+err.Error())
		}
		days = parsed
	}

	query, err := queries.NewRevenueForecastQuery(days)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	forecast, err := s.revenueForecastHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	history := make([]DailyRevenueRow, 0, len(forecast.History))
	for _, d := range forecast.History {
		history = append(history, DailyRevenueRow{
			Day:     d.Day.Format(time.DateOnly),
			Revenue: d.Revenue.StringFixed(2),
		})
	}

	return ctx.JSON(http.StatusOK, RevenueForecastResponse{
		HorizonDays: forecast.HorizonDays,
		History:     history,
		Forecast:    forecast.Forecast.StringFixed(2),
	})
}

// ScheduleOutlook handles GET /api/v1/schedule/outlook (optional ?days=).
func (s *Server) ScheduleOutlook(ctx echo.Context) error {
	days := 7
	if raw := ctx.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid days: "+err.Error())
		}
		days = parsed
	}

	query, err := queries.NewScheduleOutlookQuery(days)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	outlook, err := s.scheduleOutlookHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DayOutlook, 0, len(outlook))
	for _, day := range outlook {
		response = append(response, DayOutlook{
			Day:               day.Day.Format(time.DateOnly),
			Booked:            day.Booked,
			PredictedDemand:   day.PredictedDemand,
			AvailableCapacity: day.AvailableCapacity,
			Utilization:       day.Utilization,
			Action:            string(day.Action),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// Quote handles GET /api/v1/quote (repeated ?option= plus ?express=). The
// breakdown is informational; order totals always arrive confirmed from the
// payment collaborator.
func (s *Server) Quote(ctx echo.Context) error {
	express := false
	if raw := ctx.QueryParam("express"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(ctx, "Invalid express flag: "+err.Error())
		}
		express = parsed
	}

	quote, err := s.quoter.Quote(ctx.QueryParams()["option"], express)
	if err != nil {
		return writeError(ctx, err)
	}

	lines := make([]QuoteLine, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		lines = append(lines, QuoteLine{
			Label:  line.Label,
			Amount: line.Amount.String(),
		})
	}

	return ctx.JSON(http.StatusOK, QuoteResponse{
		Lines: lines,
		Total: quote.Total.String(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain failures to HTTP statuses: unknown objects to 404,
// state-machine violations to 409, everything else to 500.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, order.ErrOrderTerminal):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}
