package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gevartrix/dshop-booking-backend/internal/device"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/apperror"
)

// Service owns the booking lifecycle: it admits new requests through the
// availability check, moves bookings between states and keeps the
// user/device/booking relations coherent.
type Service interface {
	// Request admits a new reservation in the requested state. It returns
	// the created booking and the confirmation message shown to the user.
	Request(ctx context.Context, userID, deviceName string, from, to time.Time) (*Booking, string, error)

	// Decide approves or denies a requested booking. Privileged: the caller
	// must have passed the admin gate.
	Decide(ctx context.Context, id string, approve bool) (*Booking, string, error)

	// ListMine returns the caller's approved bookings only. Requested and
	// denied bookings are invisible to this view.
	ListMine(ctx context.Context, userID string) ([]*Booking, error)

	// ListPending returns all bookings awaiting a decision. Privileged.
	ListPending(ctx context.Context) ([]*Booking, error)

	// Close returns a booked device: it erases the caller's booking and
	// unlinks it everywhere. Bookings owned by other users are reported as
	// not found.
	Close(ctx context.Context, userID, id string) (*Booking, string, error)
}

type service struct {
	repo    Repository
	devices device.Service

	// deviceLocks serializes check-then-create per device. Two concurrent
	// requests for the same device must not both pass the availability scan
	// before either row is committed.
	mu          sync.Mutex
	deviceLocks map[string]*sync.Mutex
}

func NewService(repo Repository, devices device.Service) Service {
	return &service{
		repo:        repo,
		devices:     devices,
		deviceLocks: make(map[string]*sync.Mutex),
	}
}

func (s *service) lockDevice(deviceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.deviceLocks[deviceID]
	if !ok {
		l = &sync.Mutex{}
		s.deviceLocks[deviceID] = l
	}
	return l
}

func (s *service) Request(ctx context.Context, userID, deviceName string, from, to time.Time) (*Booking, string, error) {
	var missing []string
	if deviceName == "" {
		missing = append(missing, "Device has not been selected")
	}
	if from.IsZero() || to.IsZero() {
		missing = append(missing, "Booking dates have not been provided")
	}
	if len(missing) > 0 {
		return nil, "", apperror.NewList(http.StatusBadRequest, missing)
	}

	dev, err := s.devices.GetByName(ctx, deviceName)
	if err != nil {
		if errors.Is(err, device.ErrNotFound) {
			return nil, "", ErrDeviceNotFound
		}
		return nil, "", err
	}

	// Hold the device's lock across check and insert so that concurrent
	// requests for the same device serialize.
	lock := s.lockDevice(dev.ID)
	lock.Lock()
	defer lock.Unlock()

	approved, err := s.repo.ListApprovedForDevice(ctx, dev.ID)
	if err != nil {
		return nil, "", err
	}

	if reasons := ConflictReasons(dev.Name, from, to, approved, ""); len(reasons) > 0 {
		return nil, "", apperror.NewList(http.StatusConflict, reasons)
	}

	b := &Booking{
		UserID:   userID,
		DeviceID: dev.ID,
		Device: DeviceBrief{
			ID:       dev.ID,
			Name:     dev.Name,
			Category: dev.Category,
			Model:    dev.Model,
			RAM:      dev.RAM,
			OS:       dev.OS,
		},
		From:   from,
		To:     to,
		Status: StatusRequested,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("Your booking request for %q has been sent to the admins", dev.Name)
	return b, msg, nil
}

func (s *service) Decide(ctx context.Context, id string, approve bool) (*Booking, string, error) {
	status := StatusDenied
	msg := "Request has been denied"
	if approve {
		status = StatusApproved
		msg = "Request has been approved"
	}

	// Note: approval trusts the availability check made at request time; no
	// conflict re-validation happens here. Inherited from the original
	// workflow, where pending requests never block each other.
	b, err := s.repo.Decide(ctx, id, status)
	if err != nil {
		return nil, "", err
	}
	return b, msg, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListForUser(ctx, userID, StatusApproved)
}

func (s *service) ListPending(ctx context.Context) ([]*Booking, error) {
	return s.repo.ListPending(ctx)
}

func (s *service) Close(ctx context.Context, userID, id string) (*Booking, string, error) {
	b, err := s.repo.DeleteOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", apperror.New(http.StatusNotFound, fmt.Sprintf("Booking '%s' not found", id))
		}
		return nil, "", err
	}

	msg := fmt.Sprintf("Booking of device %q has been successfully deleted", b.Device.Name)
	return b, msg, nil
}
