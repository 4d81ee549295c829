package booking

import (
	"context"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	domain "github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/metrics"
	"github.com/BruksfildServices01/business-booking/internal/timezone"
)

type CancelOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelOrder {
	return &CancelOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelOrder) Execute(
	ctx context.Context,
	userID uint,
	employeeID uint,
	orderID uint,
) error {

	o, err := ownOrder(ctx, uc.repo, userID, employeeID, orderID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteOrder(ctx, o); err != nil {
		return notFound(err, "order_not_found")
	}

	metrics.IncOrderCancelled()

	var tz string
	if biz, err := uc.repo.GetBusinessByID(ctx, o.BusinessID); err == nil {
		tz = biz.Timezone
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: o.BusinessID,
		UserID:     &userID,
		Action:     audit.ActionOrderCancelled,
		Entity:     "order",
		EntityID:   &o.ID,
		Metadata:   orderMetadata(o, timezone.Location(tz)),
	})

	return nil
}
