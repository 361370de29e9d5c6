package repositories

import (
	"context"
	"testing"

	"charity-transparency/internal/database"
	"charity-transparency/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestActivityRepository(t *testing.T) {
	suite.Run(t, new(ActivityRepositorySuite))
}

type ActivityRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo ActivityRepositoryInterface
}

func (s *ActivityRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewActivityRepository(s.db.DB)
}

func (s *ActivityRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ActivityRepositorySuite) TestCreate_GeneratesSlug() {
	activity := &models.Activity{
		Title:        "Winter Blankets 2025!",
		TargetAmount: decimal.NewFromInt(10000000),
		IsPublished:  true,
	}
	s.Require().NoError(s.repo.Create(activity))
	s.Equal("winter-blankets-2025", activity.Slug)

	found, err := s.repo.GetBySlug("winter-blankets-2025")
	s.Require().NoError(err)
	s.Equal(activity.ID, found.ID)
	s.True(activity.TargetAmount.Equal(found.TargetAmount))
}

func (s *ActivityRepositorySuite) TestCreate_DuplicateSlug() {
	s.Require().NoError(s.repo.Create(&models.Activity{Title: "Food Bank"}))

	err := s.repo.Create(&models.Activity{Title: "Food  Bank"})
	s.ErrorIs(err, ErrActivitySlugExists)
}

func (s *ActivityRepositorySuite) TestSlugExists() {
	activity := &models.Activity{Title: "Food Bank"}
	s.Require().NoError(s.repo.Create(activity))

	exists, err := s.repo.SlugExists("food-bank", uuid.Nil)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.SlugExists("food-bank", activity.ID)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *ActivityRepositorySuite) TestUpdateAndDelete() {
	activity := database.CreateTestActivity(s.T(), s.db, "Mobile Clinic", false)

	activity.IsPublished = true
	activity.Location = "Kupang"
	s.Require().NoError(s.repo.Update(activity))

	found, err := s.repo.GetByID(activity.ID)
	s.Require().NoError(err)
	s.True(found.IsPublished)
	s.Equal("Kupang", found.Location)

	s.Require().NoError(s.repo.Delete(activity.ID))
	_, err = s.repo.GetByID(activity.ID)
	s.ErrorIs(err, ErrActivityNotFound)
	s.ErrorIs(s.repo.Delete(activity.ID), ErrActivityNotFound)
}

func (s *ActivityRepositorySuite) TestListAndCount() {
	database.CreateTestActivity(s.T(), s.db, "Published One", true)
	database.CreateTestActivity(s.T(), s.db, "Published Two", true)
	database.CreateTestActivity(s.T(), s.db, "Draft", false)

	published, total, err := s.repo.List(true, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(published, 2)

	_, total, err = s.repo.List(false, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(3), total)

	all, err := s.repo.ListPublished(context.Background())
	s.Require().NoError(err)
	s.Len(all, 2)

	count, publishedCount, err := s.repo.Count(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(3), count)
	s.Equal(int64(2), publishedCount)
}
