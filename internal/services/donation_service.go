package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrDonationNotFound         = errors.New("donation not found")
	ErrDonationAlreadyProcessed = errors.New("donation has already been confirmed or rejected")
	ErrActivityNotAccepting     = errors.New("activity is not accepting donations")
)

// DonationService handles public donation intake and admin moderation
type DonationService struct {
	donationRepo repositories.DonationRepositoryInterface
	activityRepo repositories.ActivityRepositoryInterface
	publisher    EventPublisherInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
	now          func() time.Time
}

func NewDonationService(
	donationRepo repositories.DonationRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	publisher EventPublisherInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) DonationServiceInterface {
	return &DonationService{
		donationRepo: donationRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// SubmitDonation stores a pending donation. Anonymous donations keep the
// name for the admin panel only; campaign donations require a published,
// running activity.
func (s *DonationService) SubmitDonation(ctx context.Context, req *dto.CreateDonationRequest) (*models.Donation, error) {
	now := s.now().UTC()

	if req.ActivityID != nil && *req.ActivityID != uuid.Nil {
		activity, err := s.activityRepo.GetByID(*req.ActivityID)
		if err != nil {
			if errors.Is(err, repositories.ErrActivityNotFound) {
				return nil, ErrActivityNotFound
			}
			return nil, fmt.Errorf("failed to get activity: %w", err)
		}
		if !activity.IsPublished {
			return nil, ErrActivityNotFound
		}
		if !activity.IsActiveAt(now) {
			return nil, ErrActivityNotAccepting
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	donation := &models.Donation{
		Amount:        req.Amount,
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Message:       strings.TrimSpace(req.Message),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		ProofURL:      strings.TrimSpace(req.ProofURL),
		IsAnonymous:   req.IsAnonymous,
		IsPublic:      isPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.ActivityID != nil && *req.ActivityID != uuid.Nil {
		activityID := *req.ActivityID
		donation.ActivityID = &activityID
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		donation.Name = &name
	}

	if err := s.donationRepo.Create(donation); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	kind := "general"
	if donation.IsCampaignDonation() {
		kind = "campaign"
	}
	s.metrics.IncrementCounter(MetricDonationSubmitted, map[string]string{"kind": kind})
	s.publish(ctx, models.DonationEventSubmitted, donation, now)

	s.logger.InfoContext(ctx, "donation submitted",
		"donation_id", donation.ID,
		"activity_id", donation.ActivityID,
		"is_anonymous", donation.IsAnonymous)

	return donation, nil
}

func (s *DonationService) GetDonation(id uuid.UUID) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrDonationNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	return donation, nil
}

func (s *DonationService) ListDonations(filters models.DonationFilters, offset, limit int) ([]models.Donation, int64, error) {
	donations, total, err := s.donationRepo.List(filters, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, total, nil
}

// ConfirmDonation marks a pending donation as received
func (s *DonationService) ConfirmDonation(ctx context.Context, donationID, adminID uuid.UUID) (*models.Donation, error) {
	return s.transition(ctx, donationID, models.DonationEventConfirmed, func(d *models.Donation, at time.Time) error {
		return d.Confirm(adminID, at)
	})
}

// RejectDonation marks a pending donation as not received
func (s *DonationService) RejectDonation(ctx context.Context, donationID uuid.UUID, reason string) (*models.Donation, error) {
	return s.transition(ctx, donationID, models.DonationEventRejected, func(d *models.Donation, at time.Time) error {
		return d.Reject(reason, at)
	})
}

func (s *DonationService) transition(ctx context.Context, donationID uuid.UUID, eventType string, apply func(*models.Donation, time.Time) error) (*models.Donation, error) {
	donation, err := s.GetDonation(donationID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := apply(donation, now); err != nil {
		if errors.Is(err, models.ErrDonationAlreadyConfirmed) || errors.Is(err, models.ErrDonationAlreadyRejected) {
			return nil, ErrDonationAlreadyProcessed
		}
		return nil, err
	}

	if err := s.donationRepo.Update(donation); err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}

	s.metrics.IncrementCounter(MetricDonationStatusChanged, map[string]string{"status": donation.Status()})
	s.publish(ctx, eventType, donation, now)

	s.logger.InfoContext(ctx, "donation status changed",
		"donation_id", donation.ID,
		"status", donation.Status())

	return donation, nil
}

// publish never fails the caller; the donation is already stored
func (s *DonationService) publish(ctx context.Context, eventType string, donation *models.Donation, at time.Time) {
	event := models.NewDonationEvent(eventType, donation, at)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.IncrementCounter(MetricEventPublishFailed, nil)
		s.logger.ErrorContext(ctx, "failed to publish donation event",
			"error", err,
			"event_type", eventType,
			"donation_id", donation.ID)
	}
}
