package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with its status history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle loads the order row and its history entries in transition order.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		resp    GetOrderQueryResponse
		status  int
		options []byte
		notes   sql.NullString
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			customer_email,
			sku,
			options,
			status,
			total,
			express,
			notes,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&resp.CustomerEmail,
		&resp.SKU,
		&options,
		&status,
		&resp.Total,
		&resp.Express,
		&notes,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID = query.OrderID()
	resp.Status = order.Status(status)
	resp.Notes = notes.String
	if len(options) > 0 {
		if err = json.Unmarshal(options, &resp.Options); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	resp.History, err = h.loadHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadHistory(
	ctx context.Context, orderID kernel.UUID,
) ([]StatusChangeResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			note,
			actor,
			occurred_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeResponse, 0)
	for rows.Next() {
		var (
			entry  StatusChangeResponse
			status int
		)
		if err = rows.Scan(&status, &entry.Note, &entry.Actor, &entry.OccurredAt); err != nil {
			return nil, err
		}
		entry.Status = order.Status(status)
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
