package commands

import (
	"context"
	"errors"
	"time"

	"restring/internal/core/domain/model/customer"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/domain/services"
	"restring/internal/pkg/errs"
)

// RecomputeProfileCommandHandler rebuilds one customer's derived analytics
// profile from their order history. The recompute is a pure function of the
// history snapshot, so running it twice is harmless and the profile may lag
// the history between runs.
type RecomputeProfileCommandHandler struct {
	uowFactory ProfileUoWFactory
	analytics  services.Analytics
}

// NewRecomputeProfileCommandHandler creates a handler for profile recomputes.
func NewRecomputeProfileCommandHandler(
	uowFactory ProfileUoWFactory, analytics services.Analytics,
) RecomputeProfileCommandHandler {
	return RecomputeProfileCommandHandler{
		uowFactory: uowFactory,
		analytics:  analytics,
	}
}

// Handle reads the customer's order history, recomputes every derived
// statistic, and upserts the profile. A customer seen for the first time
// gets a fresh profile.
func (h *RecomputeProfileCommandHandler) Handle(ctx context.Context, cmd RecomputeProfileCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().ListByCustomer(ctx, cmd.CustomerEmail())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	profile, err := uow.ProfileRepository().Get(ctx, cmd.CustomerEmail())
	if errors.Is(err, errs.ErrObjectNotFound) {
		profile, err = customer.NewProfile(cmd.CustomerEmail(), now)
	}
	if err != nil {
		return err
	}

	snapshots := make([]services.OrderSnapshot, 0, len(orders))
	for _, o := range orders {
		snapshots = append(snapshots, services.OrderSnapshot{
			Total:     o.Total(),
			Status:    o.Status(),
			SKU:       o.SKU(),
			Express:   o.Express(),
			CreatedAt: o.CreatedAt(),
		})
	}

	stats := h.analytics.RecomputeStats(
		snapshots, membershipMonths(profile, snapshots, now), profile.IsMember(), now)
	profile.ApplyStats(stats, now)

	if err = uow.ProfileRepository().Upsert(ctx, profile); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// membershipMonths derives the billed membership duration for members as
// whole months since their first order. Non-members contribute zero.
func membershipMonths(profile *customer.Profile, history []services.OrderSnapshot, now time.Time) int {
	if !profile.IsMember() {
		return 0
	}

	var first *time.Time
	for _, o := range history {
		if o.Status == order.Cancelled {
			continue
		}
		if first == nil || o.CreatedAt.Before(*first) {
			t := o.CreatedAt
			first = &t
		}
	}
	if first == nil {
		return 0
	}

	months := int(now.Sub(*first).Hours() / 24 / 30)
	if months < 0 {
		return 0
	}
	return months
}
