package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrActivitySlugTaken   = errors.New("activity slug is already in use")
	ErrActivityHasRecords  = errors.New("activity has donations or expenses")
	ErrActivityInvalidSlug = errors.New("activity title does not produce a valid slug")
)

// ActivityService manages fundraising activities
type ActivityService struct {
	activityRepo repositories.ActivityRepositoryInterface
	donationRepo repositories.DonationRepositoryInterface
	expenseRepo  repositories.ExpenseRepositoryInterface
	logger       *slog.Logger
}

func NewActivityService(
	activityRepo repositories.ActivityRepositoryInterface,
	donationRepo repositories.DonationRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	logger *slog.Logger,
) ActivityServiceInterface {
	return &ActivityService{
		activityRepo: activityRepo,
		donationRepo: donationRepo,
		expenseRepo:  expenseRepo,
		logger:       logger,
	}
}

// CreateActivity stores a new activity. Without an explicit slug one is
// derived from the title.
func (s *ActivityService) CreateActivity(req *dto.CreateActivityRequest) (*models.Activity, error) {
	slug, err := s.claimSlug(req.Slug, req.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		Title:        strings.TrimSpace(req.Title),
		Slug:         slug,
		Description:  strings.TrimSpace(req.Description),
		Location:     strings.TrimSpace(req.Location),
		ImageURL:     strings.TrimSpace(req.ImageURL),
		TargetAmount: req.TargetAmount,
		IsPublished:  req.IsPublished,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Create(activity); err != nil {
		if errors.Is(err, repositories.ErrActivitySlugExists) {
			return nil, ErrActivitySlugTaken
		}
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.logger.Info("activity created", "activity_id", activity.ID, "slug", activity.Slug)
	return activity, nil
}

func (s *ActivityService) UpdateActivity(id uuid.UUID, req *dto.UpdateActivityRequest) (*models.Activity, error) {
	activity, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	slug := activity.Slug
	if req.Slug != "" && req.Slug != activity.Slug {
		if slug, err = s.claimSlug(req.Slug, req.Title, activity.ID); err != nil {
			return nil, err
		}
	}

	activity.Title = strings.TrimSpace(req.Title)
	activity.Slug = slug
	activity.Description = strings.TrimSpace(req.Description)
	activity.Location = strings.TrimSpace(req.Location)
	activity.ImageURL = strings.TrimSpace(req.ImageURL)
	activity.TargetAmount = req.TargetAmount
	activity.IsPublished = req.IsPublished
	activity.StartDate = req.StartDate
	activity.EndDate = req.EndDate

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Update(activity); err != nil {
		if errors.Is(err, repositories.ErrActivitySlugExists) {
			return nil, ErrActivitySlugTaken
		}
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	s.logger.Info("activity updated", "activity_id", activity.ID)
	return activity, nil
}

// DeleteActivity removes an activity that has no donations or expenses.
// Activities with records must be unpublished instead.
func (s *ActivityService) DeleteActivity(id uuid.UUID) error {
	if _, err := s.getByID(id); err != nil {
		return err
	}

	donations, err := s.donationRepo.CountByActivity(id)
	if err != nil {
		return fmt.Errorf("failed to count activity donations: %w", err)
	}
	expenses, err := s.expenseRepo.CountByActivity(id)
	if err != nil {
		return fmt.Errorf("failed to count activity expenses: %w", err)
	}
	if donations > 0 || expenses > 0 {
		return ErrActivityHasRecords
	}

	if err := s.activityRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.logger.Info("activity deleted", "activity_id", id)
	return nil
}

// GetActivity looks an activity up by id, falling back to its slug
func (s *ActivityService) GetActivity(idOrSlug string, publishedOnly bool) (*models.Activity, error) {
	var (
		activity *models.Activity
		err      error
	)

	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		activity, err = s.activityRepo.GetByID(id)
	} else {
		activity, err = s.activityRepo.GetBySlug(strings.ToLower(strings.TrimSpace(idOrSlug)))
	}

	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	if publishedOnly && !activity.IsPublished {
		return nil, ErrActivityNotFound
	}

	return activity, nil
}

func (s *ActivityService) ListActivities(publishedOnly bool, offset, limit int) ([]models.Activity, int64, error) {
	activities, total, err := s.activityRepo.List(publishedOnly, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, total, nil
}

func (s *ActivityService) getByID(id uuid.UUID) (*models.Activity, error) {
	activity, err := s.activityRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

// claimSlug returns the requested slug, or one derived from the title, after
// checking no other activity uses it
func (s *ActivityService) claimSlug(requested, title string, excludeID uuid.UUID) (string, error) {
	slug := strings.TrimSpace(requested)
	if slug == "" {
		slug = models.Slugify(title)
	}
	if slug == "" {
		return "", ErrActivityInvalidSlug
	}

	exists, err := s.activityRepo.SlugExists(slug, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return "", ErrActivitySlugTaken
	}

	return slug, nil
}
