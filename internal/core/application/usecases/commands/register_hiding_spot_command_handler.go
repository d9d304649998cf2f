package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// RegisterHidingSpotCommandHandler runs the proof-of-delivery workflow.
//
// Phase one performs the slow, side-effect-free checks outside any
// transaction: load the delivery, check its status, geocode the address,
// check the geofence and store the photo. Phase two reloads the delivery in a
// transaction, records the hiding spot (moving the delivery to HIDDEN) and
// deducts the items from the driver's locked inventory row. Either all of
// phase two is committed or none of it, and the stored photo is removed
// when phase two fails.
type RegisterHidingSpotCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	geocoder    ports.Geocoder
	photos      ports.PhotoStorage
	geofence    services.Geofence
	reservation services.InventoryReservation
	logger      *slog.Logger
}

func NewRegisterHidingSpotCommandHandler(
	uowFactory DeliveryUoWFactory,
	geocoder ports.Geocoder,
	photos ports.PhotoStorage,
	geofence services.Geofence,
	logger *slog.Logger,
) RegisterHidingSpotCommandHandler {
	return RegisterHidingSpotCommandHandler{
		uowFactory:  uowFactory,
		geocoder:    geocoder,
		photos:      photos,
		geofence:    geofence,
		reservation: services.NewInventoryReservation(),
		logger:      logger.With("component", "RegisterHidingSpotCommandHandler"),
	}
}

// Handle returns the delivery in HIDDEN with its hiding spot. A geofence
// violation is returned as *services.GeofenceViolationError and leaves
// nothing behind.
func (h RegisterHidingSpotCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterHidingSpotCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	distance, err := h.checkLocation(ctx, cmd)
	if err != nil {
		return nil, err
	}

	photoURL, err := h.photos.Save(ctx, cmd.Photo())
	if err != nil {
		return nil, err
	}

	d, err := h.commit(ctx, cmd, photoURL, distance)
	if err != nil {
		if delErr := h.photos.Delete(ctx, photoURL); delErr != nil {
			h.logger.ErrorContext(ctx, "failed to remove orphaned hiding spot photo",
				"photo_url", photoURL,
				"error", delErr)
		}
		return nil, err
	}

	return d, nil
}

// checkLocation is phase one minus the photo upload.
func (h RegisterHidingSpotCommandHandler) checkLocation(
	ctx context.Context,
	cmd RegisterHidingSpotCommand,
) (float64, error) {
	d, err := h.uowFactory.Create().DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return 0, err
	}

	if err = d.CanRegisterHidingSpot(); err != nil {
		return 0, err
	}

	address, err := h.geocoder.Geocode(ctx, d.Details().DeliveryAddress())
	if err != nil {
		return 0, err
	}

	distance, err := h.geofence.Check(address, cmd.Location())
	if err != nil {
		h.logger.InfoContext(ctx, "hiding spot rejected by geofence",
			"delivery_id", d.ID().String(),
			"distance_m", distance,
			"radius_m", h.geofence.RadiusMeters())
		return distance, err
	}

	return distance, nil
}

func (h RegisterHidingSpotCommandHandler) commit(
	ctx context.Context,
	cmd RegisterHidingSpotCommand,
	photoURL string,
	distance float64,
) (*delivery.Delivery, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveries := uow.DeliveryRepository()

	// the status may have moved while phase one was running
	d, err := deliveries.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	spot, err := delivery.NewHidingSpot(kernel.NewUUID(), photoURL, cmd.Location(), cmd.Description(), distance, now)
	if err != nil {
		return nil, err
	}

	if err = d.RegisterHidingSpot(spot, now); err != nil {
		return nil, err
	}

	if err = h.deductInventory(ctx, uow, d); err != nil {
		return nil, err
	}

	if err = deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

// deductInventory withdraws the delivered items from the driver's stock.
// Stock never goes below zero; every shortfall is logged for reconciliation.
func (h RegisterHidingSpotCommandHandler) deductInventory(
	ctx context.Context,
	uow DeliveryUoW,
	d *delivery.Delivery,
) error {
	drivers := uow.DriverRepository()

	drv, err := drivers.GetForUpdate(ctx, *d.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "driver of hidden delivery not found, inventory not deducted",
			"delivery_id", d.ID().String(),
			"driver_id", d.DriverID().String())
		return nil
	}
	if err != nil {
		return err
	}

	shortfalls, err := h.reservation.Deduct(drv, d.Items())
	if err != nil {
		return err
	}

	for _, s := range shortfalls {
		h.logger.WarnContext(ctx, "inventory shortfall at drop-off, stock clamped at zero",
			"delivery_id", d.ID().String(),
			"driver_id", drv.ID().String(),
			"product_id", s.ProductID.String(),
			"requested", s.Requested,
			"available", s.Available,
			"missing", s.Missing)
	}

	return drivers.Update(ctx, drv)
}
