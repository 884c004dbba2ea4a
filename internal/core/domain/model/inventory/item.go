package inventory

import (
	"errors"
	"math"
	"strings"
	"time"

	"restring/internal/pkg/errs"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// AlertLevel is the derived stock-health classification of an item.
// It is computed from current state, never stored.
type AlertLevel string

const (
	AlertNone       AlertLevel = "ok"
	AlertLowStock   AlertLevel = "low_stock"
	AlertCritical   AlertLevel = "critical"
	AlertOutOfStock AlertLevel = "out_of_stock"
)

// criticalOnHand is the on-hand count at or below which stock is critical
// regardless of the item's configured reorder threshold.
const criticalOnHand = 3

// UsageWindowDays is the trailing window over which consumption velocity is
// measured. Usage outside the window does not count toward usage30d.
const UsageWindowDays = 30

// Item is a consumable string SKU tracked by the inventory ledger.
//
// OnHand is a cached counter kept in the same transaction as every movement
// insert; the movement ledger remains the source of truth and the counter is
// reconciled against it, not trusted over it. OnHand may go negative: a debit
// past zero is recorded as a shortfall rather than blocking the physical work.
type Item struct {
	sku         string
	name        string
	onHand      int
	reorderAt   int
	usage30d    int
	costPerUnit decimal.Decimal
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewItem registers a new string SKU with an initial on-hand quantity.
func NewItem(sku, name string, onHand, reorderAt int, costPerUnit decimal.Decimal, now time.Time) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if strings.TrimSpace(sku) == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	if onHand < 0 {
		return nil, errs.NewValueIsOutOfRangeError("onHand", onHand, 0, math.MaxInt)
	}
	if reorderAt < 0 {
		return nil, errs.NewValueIsOutOfRangeError("reorderAt", reorderAt, 0, math.MaxInt)
	}
	if costPerUnit.IsNegative() {
		return nil, errs.NewValueIsInvalidError("costPerUnit")
	}

	item.sku = sku
	item.name = name
	item.onHand = onHand
	item.reorderAt = reorderAt
	item.costPerUnit = costPerUnit
	item.updatedAt = now
	return item, nil
}

// RestoreItem reconstructs an item from persistence. Unlike NewItem it
// accepts a negative on-hand counter, which a shortfall can legitimately produce.
func RestoreItem(
	sku, name string, onHand, reorderAt, usage30d int, costPerUnit decimal.Decimal, updatedAt time.Time,
) (*Item, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	return &Item{
		sku:         sku,
		name:        name,
		onHand:      onHand,
		reorderAt:   reorderAt,
		usage30d:    usage30d,
		costPerUnit: costPerUnit,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was constructed through a factory function.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// SKU returns the item's identifier.
func (i *Item) SKU() string {
	return i.sku
}

// Name returns the display name of the string.
func (i *Item) Name() string {
	return i.name
}

// OnHand returns the cached on-hand counter.
func (i *Item) OnHand() int {
	return i.onHand
}

// ReorderAt returns the configured reorder threshold.
func (i *Item) ReorderAt() int {
	return i.reorderAt
}

// Usage30d returns the trailing 30-day consumption count.
func (i *Item) Usage30d() int {
	return i.usage30d
}

// CostPerUnit returns the per-set cost of the string.
func (i *Item) CostPerUnit() decimal.Decimal {
	return i.costPerUnit
}

// UpdatedAt returns the last counter update timestamp.
func (i *Item) UpdatedAt() time.Time {
	return i.updatedAt
}

// AlertLevel derives the stock-health classification:
// out_of_stock at zero or below, critical at 3 or fewer, low_stock at or
// below the reorder threshold, ok otherwise.
func (i *Item) AlertLevel() AlertLevel {
	switch {
	case i.onHand <= 0:
		return AlertOutOfStock
	case i.onHand <= criticalOnHand:
		return AlertCritical
	case i.onHand <= i.reorderAt:
		return AlertLowStock
	default:
		return AlertNone
	}
}

// DaysUntilStockout projects how many days of stock remain at the trailing
// 30-day consumption velocity. Zero usage yields +Inf: no stockout is
// predicted on velocity grounds alone.
func (i *Item) DaysUntilStockout() float64 {
	if i.usage30d <= 0 {
		return math.Inf(1)
	}
	if i.onHand <= 0 {
		return 0
	}
	return float64(i.onHand) / (float64(i.usage30d) / float64(UsageWindowDays))
}
