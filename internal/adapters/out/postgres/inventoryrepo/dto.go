// Package inventoryrepo persists the stock ledger: one row per SKU plus an
// append-only movement table. The cached on-hand counter is only ever updated
// in the same transaction as a movement insert, so it cannot drift from the
// ledger sum.
package inventoryrepo

import (
	"time"

	"restring/internal/core/domain/model/inventory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is the database row for one SKU's stock record.
type ItemDTO struct {
	SKU         string `gorm:"primaryKey"`
	Name        string
	OnHand      int
	ReorderAt   int
	Usage30d    int             `gorm:"column:usage_30d"`
	CostPerUnit decimal.Decimal `gorm:"type:numeric"`
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming to use "inventory_items".
func (ItemDTO) TableName() string {
	return "inventory_items"
}

// MovementDTO is one immutable ledger entry.
type MovementDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU        string    `gorm:"index"`
	Delta      int
	Reason     string
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Note       string
	OccurredAt time.Time
}

// TableName overrides GORM's default naming to use "inventory_movements".
func (MovementDTO) TableName() string {
	return "inventory_movements"
}

func itemFromDomain(item *inventory.Item) ItemDTO {
	return ItemDTO{
		SKU:         item.SKU(),
		Name:        item.Name(),
		OnHand:      item.OnHand(),
		ReorderAt:   item.ReorderAt(),
		Usage30d:    item.Usage30d(),
		CostPerUnit: item.CostPerUnit(),
		UpdatedAt:   item.UpdatedAt(),
	}
}

func itemToDomain(dto ItemDTO) (*inventory.Item, error) {
	return inventory.RestoreItem(
		dto.SKU, dto.Name, dto.OnHand, dto.ReorderAt, dto.Usage30d, dto.CostPerUnit, dto.UpdatedAt)
}

func movementFromDomain(movement inventory.Movement) MovementDTO {
	var orderID *uuid.UUID
	if id := movement.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return MovementDTO{
		ID:         movement.ID().Bytes(),
		SKU:        movement.SKU(),
		Delta:      movement.Delta(),
		Reason:     string(movement.Reason()),
		OrderID:    orderID,
		Note:       movement.Note(),
		OccurredAt: movement.OccurredAt(),
	}
}
