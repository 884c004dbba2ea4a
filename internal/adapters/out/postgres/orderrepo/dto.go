// Package orderrepo persists order aggregates and their append-only status
// history. It maps between domain entities and the relational rows, keeping
// the history table strictly insert-only.
package orderrepo

import (
	"time"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row for an order aggregate.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerEmail string          `gorm:"index"`
	SKU           string          `gorm:"index"`
	Options       []string        `gorm:"serializer:json"`
	Total         decimal.Decimal `gorm:"type:numeric"`
	Express       bool
	Notes         string
	Status        int `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusHistoryEntryDTO is one immutable transition record. Rows are only
// ever inserted; the surrogate key preserves transition order.
type StatusHistoryEntryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	Note       string
	Actor      string
	OccurredAt time.Time
}

// TableName overrides GORM's default naming to use "order_status_history".
func (StatusHistoryEntryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database row, without the
// history entries. History is persisted separately because it is append-only.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerEmail: aggregate.CustomerEmail(),
		SKU:           aggregate.SKU(),
		Options:       aggregate.Options(),
		Total:         aggregate.Total(),
		Express:       aggregate.Express(),
		Notes:         aggregate.Notes(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// historyFromDomain converts one history entry to its database row.
func historyFromDomain(entry order.StatusHistoryEntry) StatusHistoryEntryDTO {
	return StatusHistoryEntryDTO{
		OrderID:    entry.OrderID().Bytes(),
		Status:     int(entry.Status()),
		Note:       entry.Note(),
		Actor:      entry.Actor(),
		OccurredAt: entry.OccurredAt(),
	}
}

// toDomain reconstructs the aggregate from its row and history rows.
func toDomain(dto OrderDTO, historyDTOs []StatusHistoryEntryDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusHistoryEntry, 0, len(historyDTOs))
	for _, h := range historyDTOs {
		history = append(history, order.NewStatusHistoryEntry(
			id, order.Status(h.Status), h.OccurredAt, h.Note, h.Actor))
	}

	return order.RestoreOrder(
		id,
		dto.CustomerEmail,
		dto.SKU,
		dto.Options,
		dto.Total,
		dto.Express,
		dto.Notes,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		history,
	)
}
