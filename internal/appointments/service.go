package appointments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"djazair-backend/internal/models"
	"djazair-backend/internal/schedule"
	"djazair-backend/internal/validation"
)

var (
	ErrNotFound      = errors.New("appointment not found")
	ErrInvalidStatus = errors.New("status must be PENDING or DONE")
	ErrInvalidDate   = errors.New("invalid date")
)

// Notifier is told about every stored booking request.
type Notifier interface {
	NotifyNewAppointment(ctx context.Context, a models.Appointment) error
}

type Service struct {
	repo     Repository
	policy   schedule.Policy
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
	pending  sync.WaitGroup
}

func NewService(repo Repository, policy schedule.Policy, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:     repo,
		policy:   policy,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Create stores a booking request as PENDING. The request must already have
// passed validation; dates are reduced to calendar dates.
func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Appointment, error) {
	birth, ok := validation.ParseDate(req.BirthDate)
	if !ok {
		return models.Appointment{}, fmt.Errorf("birthDate: %w", ErrInvalidDate)
	}
	date, ok := validation.ParseDate(req.AppointmentDate)
	if !ok {
		return models.Appointment{}, fmt.Errorf("appointmentDate: %w", ErrInvalidDate)
	}

	now := s.now()
	appointmentDate := schedule.CalendarDate(date)
	if err := s.policy.Check(appointmentDate, now); err != nil {
		return models.Appointment{}, err
	}

	a := models.Appointment{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BirthDate:       schedule.CalendarDate(birth),
		AppointmentDate: appointmentDate,
		FirstTime:       bool(req.FirstTime),
		Phone:           req.Phone,
		Status:          models.AppointmentStatusPending,
		CreatedAt:       now.UTC(),
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return models.Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}

	s.notify(a)
	return a, nil
}

// notify runs outside the request so a slow mail provider never delays the
// booking response.
func (s *Service) notify(a models.Appointment) {
	if s.notifier == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		id := strconv.FormatUint(uint64(a.ID), 10)
		if err := s.notifier.NotifyNewAppointment(ctx, a); err != nil {
			s.log.Warn("appointments notify: send failed", slog.String("appointment_id", id), slog.String("error", err.Error()))
			return
		}
		s.log.Info("appointments notify: sent", slog.String("appointment_id", id))
	}()
}

// Wait blocks until queued notifications have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) List(ctx context.Context) ([]models.Appointment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return items, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.ValidAppointmentStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
