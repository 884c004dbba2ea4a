package orderrepo

import (
	"context"
	"errors"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its initial history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendHistory(ctx, aggregate, 0); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update saves a mutated order and inserts any history entries appended since
// the last persist. History rows are never updated or deleted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	var persisted int64
	if err := r.db.WithContext(ctx).
		Model(&StatusHistoryEntryDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error; err != nil {
		return err
	}

	if err := r.appendHistory(ctx, aggregate, int(persisted)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves an order with its full history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order holding a row lock until the surrounding
// transaction ends. Concurrent transitions for the same order queue here.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

// ListByCustomer retrieves all of a customer's orders, oldest first.
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, email string) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "customer_email = ?", email).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		historyDTOs, err := r.loadHistory(ctx, dto.ID)
		if err != nil {
			return nil, err
		}

		o, err := toDomain(dto, historyDTOs)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	historyDTOs, err := r.loadHistory(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}

func (r *GormOrderRepository) loadHistory(
	ctx context.Context, orderID uuid.UUID,
) ([]StatusHistoryEntryDTO, error) {
	var historyDTOs []StatusHistoryEntryDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&historyDTOs, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return historyDTOs, nil
}

// appendHistory inserts the aggregate's history entries from index `from` on.
func (r *GormOrderRepository) appendHistory(ctx context.Context, aggregate *order.Order, from int) error {
	history := aggregate.History()
	if from >= len(history) {
		return nil
	}

	dtos := make([]StatusHistoryEntryDTO, 0, len(history)-from)
	for _, entry := range history[from:] {
		dtos = append(dtos, historyFromDomain(entry))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
