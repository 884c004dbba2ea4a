package queries

import (
	"context"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the order listing straight from the database,
// bypassing the aggregate. Results are newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing, applying the customer filter when present.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			customer_email,
			sku,
			status,
			total,
			express,
			created_at
		FROM orders
	`
	args := make([]any, 0, 1)
	if query.CustomerEmail() != "" {
		sql += ` WHERE customer_email = ?`
		args = append(args, query.CustomerEmail())
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp   ListOrdersQueryResponse
			id     uuid.UUID
			status int
			total  decimal.Decimal
		)

		if err = rows.Scan(
			&id,
			&resp.CustomerEmail,
			&resp.SKU,
			&status,
			&total,
			&resp.Express,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.Total = total

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
