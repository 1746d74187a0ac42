package tracking

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking or RestoreTracking constructor")

// TimelineEntry is one immutable row of the delivery timeline.
type TimelineEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// Tracking follows one order from the kitchen to the customer's door. It is identified by
// the order it belongs to.
//
// Tracking follows these invariants:
//   - Status never regresses and never skips a step
//   - Only an admin assigns the driver, and only before the order is picked up
//   - Only the assigned driver advances, completes or reports the location
//   - The timeline is append-only; its last entry carries the current status
//
// Reaching Delivered must be committed together with the order's own Delivered status;
// services.DeliveryCoordinator is responsible for that coupling.
type Tracking struct {
	orderID           kernel.UUID
	driverID          *kernel.UUID
	status            Status
	currentLocation   *kernel.GeoPoint
	locationUpdatedAt time.Time
	timeline          []TimelineEntry
	persistedTimeline int
	createdAt         time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewTracking starts tracking for a freshly confirmed order at Preparing.
func NewTracking(orderID kernel.UUID, now time.Time) (*Tracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return &Tracking{
		orderID:   orderID,
		status:    Preparing,
		timeline:  []TimelineEntry{{Status: Preparing, Timestamp: now}},
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (t *Tracking) Validate() error {
	if t == nil {
		return ErrTrackingIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingIsNotConstructed)
}

func (t *Tracking) OrderID() kernel.UUID {
	return t.orderID
}

// DriverID returns the assigned driver or nil.
func (t *Tracking) DriverID() *kernel.UUID {
	if t.driverID == nil {
		return nil
	}
	id := *t.driverID
	return &id
}

func (t *Tracking) Status() Status {
	return t.status
}

// CurrentLocation returns the last reported driver position or nil.
func (t *Tracking) CurrentLocation() *kernel.GeoPoint {
	if t.currentLocation == nil {
		return nil
	}
	loc := *t.currentLocation
	return &loc
}

func (t *Tracking) LocationUpdatedAt() time.Time {
	return t.locationUpdatedAt
}

func (t *Tracking) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Tracking) Timeline() []TimelineEntry {
	return append([]TimelineEntry(nil), t.timeline...)
}

// PendingTimeline returns the entries appended since construction, restore or the last MarkPersisted.
func (t *Tracking) PendingTimeline() []TimelineEntry {
	return append([]TimelineEntry(nil), t.timeline[t.persistedTimeline:]...)
}

func (t *Tracking) MarkPersisted() {
	t.persistedTimeline = len(t.timeline)
}

func (t *Tracking) DomainEvents() []Event {
	return append([]Event(nil), t.events...)
}

func (t *Tracking) ClearDomainEvents() {
	t.events = nil
}

// Clone returns an independent copy.
func (t *Tracking) Clone() *Tracking {
	c := *t
	c.driverID = t.DriverID()
	c.currentLocation = t.CurrentLocation()
	c.timeline = t.Timeline()
	c.events = t.DomainEvents()
	return &c
}

// IsAssignedTo reports whether driverID is the assigned driver.
func (t *Tracking) IsAssignedTo(driverID kernel.UUID) bool {
	return t.driverID != nil && t.driverID.IsEqual(driverID)
}

// AssignDriver assigns or replaces the driver.
//
// Returns:
//   - *errs.UnauthorizedError unless the actor is an admin
//   - *errs.IllegalTransitionError once the order has been picked up
func (t *Tracking) AssignDriver(driverID kernel.UUID, actor kernel.Actor, now time.Time) error {
	if err := errors.Join(t.Validate(), actor.Validate(), driverID.Validate()); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewUnauthorizedError(actor.ID().String(), "assign a driver")
	}
	if t.status.IsAtLeast(PickedUp) {
		return errs.NewIllegalTransitionErrorWithCause("tracking", t.status.String(), t.status.String(),
			fmt.Errorf("driver cannot change after %s", PickedUp))
	}

	previous := t.DriverID()
	id := driverID
	t.driverID = &id
	t.raise(DriverAssigned{Order: t.orderID, DriverID: driverID, Previous: previous, AssignedAt: now})
	return nil
}

// Advance moves the tracking exactly one step forward.
//
// Returns:
//   - the new status on success
//   - *errs.UnauthorizedError unless the actor is the assigned driver
//   - *errs.NoFurtherTransitionError when already Delivered
func (t *Tracking) Advance(actor kernel.Actor, now time.Time) (Status, error) {
	if err := t.authorizeDriver(actor, "advance the delivery"); err != nil {
		return Unknown, err
	}
	next, err := t.status.Next()
	if err != nil {
		return Unknown, err
	}
	t.moveTo(next, "", now)
	return next, nil
}

// Complete jumps straight to Delivered once the order has been picked up.
//
// Returns:
//   - *errs.UnauthorizedError unless the actor is the assigned driver
//   - *errs.NoFurtherTransitionError when already Delivered
//   - *errs.IllegalTransitionError before PickedUp
func (t *Tracking) Complete(notes string, actor kernel.Actor, now time.Time) error {
	if err := t.authorizeDriver(actor, "complete the delivery"); err != nil {
		return err
	}
	if t.status == Delivered {
		return errs.NewNoFurtherTransitionError("tracking", t.status.String())
	}
	if !t.status.IsAtLeast(PickedUp) {
		return errs.NewIllegalTransitionError("tracking", t.status.String(), Delivered.String())
	}
	t.moveTo(Delivered, notes, now)
	return nil
}

// UpdateLocation records the driver's position. Status is not affected.
func (t *Tracking) UpdateLocation(point kernel.GeoPoint, actor kernel.Actor, now time.Time) error {
	if err := t.authorizeDriver(actor, "report the delivery location"); err != nil {
		return err
	}
	if err := point.Validate(); err != nil {
		return err
	}
	t.currentLocation = &point
	t.locationUpdatedAt = now
	return nil
}

func (t *Tracking) authorizeDriver(actor kernel.Actor, action string) error {
	if err := errors.Join(t.Validate(), actor.Validate()); err != nil {
		return err
	}
	if !actor.IsDriver() || !t.IsAssignedTo(actor.ID()) {
		return errs.NewUnauthorizedError(actor.ID().String(), action)
	}
	return nil
}

func (t *Tracking) moveTo(next Status, notes string, now time.Time) {
	old := t.status
	t.status = next
	t.timeline = append(t.timeline, TimelineEntry{Status: next, Timestamp: now, Notes: notes})
	t.raise(StatusChanged{
		Order:     t.orderID,
		DriverID:  *t.driverID,
		OldStatus: old,
		NewStatus: next,
		Notes:     notes,
		ChangedAt: now,
	})
}

func (t *Tracking) raise(e Event) {
	t.events = append(t.events, e)
}

// Snapshot is the flat, serializable state of a Tracking.
type Snapshot struct {
	OrderID           kernel.UUID     `json:"orderId"`
	DriverID          *kernel.UUID    `json:"driverId,omitempty"`
	Status            Status          `json:"status"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	LocationUpdatedAt time.Time       `json:"locationUpdatedAt"`
	Timeline          []TimelineEntry `json:"timeline"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func (t *Tracking) Snapshot() Snapshot {
	s := Snapshot{
		OrderID:           t.orderID,
		DriverID:          t.DriverID(),
		Status:            t.status,
		LocationUpdatedAt: t.locationUpdatedAt,
		Timeline:          t.Timeline(),
		CreatedAt:         t.createdAt,
	}
	if t.currentLocation != nil {
		lat, lon := t.currentLocation.Latitude(), t.currentLocation.Longitude()
		s.Latitude, s.Longitude = &lat, &lon
	}
	return s
}

// RestoreTracking reconstructs a Tracking from persisted state, rejecting a timeline that
// skips or regresses.
func RestoreTracking(s Snapshot) (*Tracking, error) {
	errList := []error{s.OrderID.Validate(), s.Status.Validate()}
	if s.DriverID != nil {
		errList = append(errList, s.DriverID.Validate())
	}

	var location *kernel.GeoPoint
	if s.Latitude != nil && s.Longitude != nil {
		p, err := kernel.NewGeoPoint(*s.Latitude, *s.Longitude)
		errList = append(errList, err)
		location = &p
	}
	errList = append(errList, validateTimeline(s.Timeline, s.Status))
	if s.Status != Preparing && s.DriverID == nil {
		errList = append(errList, errs.NewValueIsRequiredError("driverId"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if s.DriverID != nil {
		id := *s.DriverID
		driverID = &id
	}
	return &Tracking{
		orderID:           s.OrderID,
		driverID:          driverID,
		status:            s.Status,
		currentLocation:   location,
		locationUpdatedAt: s.LocationUpdatedAt,
		timeline:          append([]TimelineEntry(nil), s.Timeline...),
		persistedTimeline: len(s.Timeline),
		createdAt:         s.CreatedAt,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func validateTimeline(timeline []TimelineEntry, current Status) error {
	if len(timeline) == 0 {
		return errs.NewValueIsRequiredError("timeline")
	}
	if timeline[0].Status != Preparing {
		return errs.NewValueIsInvalidErrorWithCause("timeline",
			fmt.Errorf("first entry is %s, expected %s", timeline[0].Status, Preparing))
	}
	for i := 1; i < len(timeline); i++ {
		prev, next := timeline[i-1].Status, timeline[i].Status
		// Complete may jump to Delivered from any status after PickedUp.
		if next != prev+1 && !(next == Delivered && prev.IsAtLeast(PickedUp)) {
			return errs.NewValueIsInvalidErrorWithCause("timeline",
				fmt.Errorf("%s cannot follow %s", next, prev))
		}
	}
	if last := timeline[len(timeline)-1].Status; last != current {
		return errs.NewValueIsInvalidErrorWithCause("timeline",
			fmt.Errorf("last entry is %s, tracking is %s", last, current))
	}
	return nil
}
