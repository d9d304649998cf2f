package delivery

import (
	"errors"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	DefaultETAOffset   = 2 * time.Hour
	DefaultMaxDuration = 30 * time.Minute
)

var ErrDetailsIsNotConstructed = errors.New("Details must be created via NewDetails constructor")

// Details holds the recipient and routing data of a delivery.
type Details struct { //nolint:recvcheck //using for validation
	clientName      string
	clientPhone     string
	deliveryAddress string
	pickupAddress   string
	clientID        *kernel.UUID
	priority        Priority
	instructions    string
	guard           guard.ConstructorGuard
}

// NewDetails validates the mandatory recipient fields. Priority defaults to
// NORMAL; optional fields are set with the With* methods.
func NewDetails(clientName, clientPhone, deliveryAddress string) (Details, error) {
	d := Details{priority: PriorityNormal, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setClientName(clientName),
		d.setClientPhone(clientPhone),
		d.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return Details{}, err
	}
	return d, nil
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsIsNotConstructed)
}

func (d Details) WithPickupAddress(address string) Details {
	d.pickupAddress = strings.TrimSpace(address)
	return d
}

func (d Details) WithClientID(id *kernel.UUID) Details {
	d.clientID = id
	return d
}

func (d Details) WithPriority(p Priority) (Details, error) {
	if err := p.Validate(); err != nil {
		return Details{}, err
	}
	d.priority = p
	return d, nil
}

func (d Details) WithInstructions(instructions string) Details {
	d.instructions = strings.TrimSpace(instructions)
	return d
}

func (d Details) ClientName() string      { return d.clientName }
func (d Details) ClientPhone() string     { return d.clientPhone }
func (d Details) DeliveryAddress() string { return d.deliveryAddress }
func (d Details) PickupAddress() string   { return d.pickupAddress }
func (d Details) ClientID() *kernel.UUID  { return d.clientID }
func (d Details) Priority() Priority      { return d.priority }
func (d Details) Instructions() string    { return d.instructions }

func (d *Details) setClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	d.clientName = name
	return nil
}

func (d *Details) setClientPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("clientPhone")
	}
	d.clientPhone = phone
	return nil
}

func (d *Details) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	d.deliveryAddress = address
	return nil
}

// TimeWindow derives the ETA and the latest acceptable delivery time from
// the creation instant.
type TimeWindow struct {
	ETAOffset   time.Duration
	MaxDuration time.Duration
}

func DefaultTimeWindow() TimeWindow {
	return TimeWindow{ETAOffset: DefaultETAOffset, MaxDuration: DefaultMaxDuration}
}

func (w TimeWindow) Validate() error {
	if w.ETAOffset <= 0 {
		return errs.NewValueIsInvalidError("etaOffset")
	}
	if w.MaxDuration <= 0 {
		return errs.NewValueIsInvalidError("maxDuration")
	}
	return nil
}
