package http

import "time"

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConfirmOrderRequest is the "payment confirmed" event body.
type ConfirmOrderRequest struct {
	OrderID       string   `json:"orderId"`
	CustomerEmail string   `json:"customerEmail"`
	SKU           string   `json:"sku"`
	Options       []string `json:"options"`
	Amount        string   `json:"amount"`
	Express       bool     `json:"express"`
}

// TransitionRequest moves an order to its next status.
type TransitionRequest struct {
	Target string `json:"target"`
	Note   string `json:"note"`
	Actor  string `json:"actor"`
}

// TransitionResponse reports the transition outcome. Shortfall flags that
// the production debit ran the SKU out of stock; the transition itself
// succeeded.
type TransitionResponse struct {
	Changed   bool `json:"changed"`
	Shortfall bool `json:"shortfall"`
}

// RestockRequest credits stock for a SKU.
type RestockRequest struct {
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	CostPerUnit string `json:"costPerUnit"`
	Notes       string `json:"notes"`
}

// OrderSummary is one row of the order listing.
type OrderSummary struct {
	ID            string    `json:"id"`
	CustomerEmail string    `json:"customerEmail"`
	SKU           string    `json:"sku"`
	Status        string    `json:"status"`
	Total         string    `json:"total"`
	Express       bool      `json:"express"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StatusChange is one entry of an order's transition trail.
type StatusChange struct {
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderDetail is the full order view with history.
type OrderDetail struct {
	ID            string         `json:"id"`
	CustomerEmail string         `json:"customerEmail"`
	SKU           string         `json:"sku"`
	Options       []string       `json:"options,omitempty"`
	Status        string         `json:"status"`
	Total         string         `json:"total"`
	Express       bool           `json:"express"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	History       []StatusChange `json:"history"`
}

// InventoryRow is one SKU of the stock report.
type InventoryRow struct {
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	OnHand            int     `json:"onHand"`
	ReorderAt         int     `json:"reorderAt"`
	Usage30d          int     `json:"usage30d"`
	CostPerUnit string `json:"costPerUnit"`
	AlertLevel  string `json:"alertLevel"`

	// DaysUntilStockout is null when usage is zero and the stock will
	// never run out at the current velocity.
	DaysUntilStockout *float64 `json:"daysUntilStockout"`
}

// UpsellSuggestion is one recommended offer for a customer.
type UpsellSuggestion struct {
	Suggestion     string `json:"suggestion"`
	Reason         string `json:"reason"`
	EstimatedValue string `json:"estimatedValue"`
}

// CustomerSummaryResponse is a customer's analytics profile.
type CustomerSummaryResponse struct {
	Email            string             `json:"email"`
	Tags             []string           `json:"tags,omitempty"`
	TotalOrders      int                `json:"totalOrders"`
	TotalSpend       string             `json:"totalSpend"`
	LifetimeValue    string             `json:"lifetimeValue"`
	AvgIntervalDays  float64            `json:"avgIntervalDays"`
	LastOrderAt      *time.Time         `json:"lastOrderAt,omitempty"`
	ChurnRisk        float64            `json:"churnRisk"`
	NextExpectedAt   *time.Time         `json:"nextExpectedAt,omitempty"`
	Tier             string             `json:"tier"`
	MembershipMonths int                `json:"membershipMonths"`
	Upsells          []UpsellSuggestion `json:"upsells"`
}

// ChurnRow is one at-risk customer of the churn report.
type ChurnRow struct {
	Email          string     `json:"email"`
	ChurnRisk      float64    `json:"churnRisk"`
	Tier           string     `json:"tier"`
	LastOrderAt    *time.Time `json:"lastOrderAt,omitempty"`
	NextExpectedAt *time.Time `json:"nextExpectedAt,omitempty"`
}

// DayOutlook is one day of the scheduling advisory.
type DayOutlook struct {
	Day               string  `json:"day"`
	Booked            int     `json:"booked"`
	PredictedDemand   int     `json:"predictedDemand"`
	AvailableCapacity int     `json:"availableCapacity"`
	Utilization       float64 `json:"utilization"`
	Action            string  `json:"action"`
}

// DailyRevenueRow is one day's realized revenue in the forecast response.
type DailyRevenueRow struct {
	Day     string `json:"day"`
	Revenue string `json:"revenue"`
}

// RevenueForecastResponse is the projection with its input history.
type RevenueForecastResponse struct {
	HorizonDays int               `json:"horizonDays"`
	History     []DailyRevenueRow `json:"history"`
	Forecast    string            `json:"forecast"`
}

// QuoteLine is one labeled amount of a price quote.
type QuoteLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// QuoteResponse is the cost breakdown for a set of selected options.
type QuoteResponse struct {
	Lines []QuoteLine `json:"lines"`
	Total string      `json:"total"`
}
