package inventoryrepo

import (
	"context"
	"errors"

	"restring/internal/core/domain/model/inventory"
	"restring/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddItem registers a new SKU.
func (r *GormInventoryRepository) AddItem(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(item.SKU(), item)
	return nil
}

// GetItem retrieves the stock record for a SKU.
func (r *GormInventoryRepository) GetItem(ctx context.Context, sku string) (*inventory.Item, error) {
	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory item", sku)
		}
		return nil, err
	}

	return itemToDomain(dto)
}

// ListItems retrieves all stock records ordered by SKU.
func (r *GormInventoryRepository) ListItems(ctx context.Context) ([]*inventory.Item, error) {
	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Order("sku").Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*inventory.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// RecordMovement appends the ledger row and applies its delta to the cached
// counter in one shot. The on-hand update is a relative SQL expression, not a
// read-modify-write, so concurrent movements against the same SKU cannot
// lose updates. The usage counter is recomputed from the ledger over the
// trailing window on every movement, so consumption that ages out of the
// window stops counting toward velocity. Returns the on-hand quantity after
// the movement.
func (r *GormInventoryRepository) RecordMovement(
	ctx context.Context, movement inventory.Movement,
) (int, error) {
	if err := movement.Validate(); err != nil {
		return 0, err
	}

	dto := movementFromDomain(movement)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, err
	}

	windowStart := movement.OccurredAt().AddDate(0, 0, -inventory.UsageWindowDays)
	result := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("sku = ?", movement.SKU()).
		Updates(map[string]any{
			"on_hand": gorm.Expr("on_hand + ?", movement.Delta()),
			"usage_30d": gorm.Expr(
				`(SELECT COALESCE(-SUM(delta), 0)
				FROM inventory_movements
				WHERE inventory_movements.sku = inventory_items.sku
					AND reason = ?
					AND occurred_at >= ?)`,
				string(inventory.ReasonOrderConsumption), windowStart),
			"updated_at": movement.OccurredAt(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewObjectNotFoundError("inventory item", movement.SKU())
	}

	var onHand int
	if err := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Select("on_hand").
		Where("sku = ?", movement.SKU()).
		Scan(&onHand).Error; err != nil {
		return 0, err
	}

	return onHand, nil
}

// SumMovements reconstructs on-hand from the ledger for reconciliation.
func (r *GormInventoryRepository) SumMovements(ctx context.Context, sku string) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).
		Model(&MovementDTO{}).
		Select("COALESCE(SUM(delta), 0)").
		Where("sku = ?", sku).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}
