package handlers

import (
	"github.com/BruksfildServices01/business-booking/internal/audit"
)

func writeAudit(
	d *audit.Dispatcher,
	businessID uint,
	userID uint,
	action string,
	entity string,
	entityID uint,
	meta any,
) {
	d.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     action,
		Entity:     entity,
		EntityID:   &entityID,
		Metadata:   meta,
	})
}
