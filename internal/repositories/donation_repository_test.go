package repositories

import (
	"context"
	"testing"
	"time"

	"charity-transparency/internal/database"
	"charity-transparency/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestDonationRepository(t *testing.T) {
	suite.Run(t, new(DonationRepositorySuite))
}

type DonationRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     DonationRepositoryInterface
	activity *models.Activity
}

func (s *DonationRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewDonationRepository(s.db.DB)
	s.activity = database.CreateTestActivity(s.T(), s.db, "Clean Water", true)
}

func (s *DonationRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *DonationRepositorySuite) newDonation(confirmed, public bool, activityID *uuid.UUID) *models.Donation {
	name := gofakeit.Name()
	donation := &models.Donation{
		ActivityID:  activityID,
		Amount:      decimal.NewFromInt(int64(gofakeit.IntRange(1, 500)) * 1000),
		Name:        &name,
		Email:       gofakeit.Email(),
		IsPublic:    public,
		IsConfirmed: confirmed,
	}
	s.Require().NoError(s.repo.Create(donation))
	return donation
}

func (s *DonationRepositorySuite) TestCreate() {
	donation := s.newDonation(false, true, nil)

	s.NotEqual(uuid.Nil, donation.ID)
	s.NotZero(donation.CreatedAt)
	s.Error(s.repo.Create(nil))
}

func (s *DonationRepositorySuite) TestCreate_RejectsInvalidAmount() {
	err := s.repo.Create(&models.Donation{Amount: decimal.NewFromInt(-5)})
	s.ErrorIs(err, models.ErrDonationNegativeAmount)
}

func (s *DonationRepositorySuite) TestGetByID_PreloadsActivity() {
	donation := s.newDonation(true, true, &s.activity.ID)

	found, err := s.repo.GetByID(donation.ID)
	s.Require().NoError(err)
	s.True(donation.Amount.Equal(found.Amount))
	s.Require().NotNil(found.Activity)
	s.Equal("Clean Water", found.Activity.Title)

	_, err = s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrDonationNotFound)
}

func (s *DonationRepositorySuite) TestUpdate_Confirm() {
	donation := s.newDonation(false, true, nil)
	adminID := uuid.New()

	s.Require().NoError(donation.Confirm(adminID, time.Now().UTC()))
	s.Require().NoError(s.repo.Update(donation))

	found, err := s.repo.GetByID(donation.ID)
	s.Require().NoError(err)
	s.True(found.IsConfirmed)
	s.Require().NotNil(found.ConfirmedBy)
	s.Equal(adminID, *found.ConfirmedBy)
}

func (s *DonationRepositorySuite) TestList_StatusFilters() {
	s.newDonation(true, true, nil)
	s.newDonation(true, false, nil)
	s.newDonation(false, true, nil)
	rejected := s.newDonation(false, true, nil)
	s.Require().NoError(rejected.Reject("not received", time.Now().UTC()))
	s.Require().NoError(s.repo.Update(rejected))

	cases := map[string]int64{
		"":                             4,
		models.DonationStatusConfirmed: 2,
		models.DonationStatusPending:   1,
		models.DonationStatusRejected:  1,
	}
	for status, want := range cases {
		donations, total, err := s.repo.List(models.DonationFilters{Status: status}, 0, 10)
		s.Require().NoError(err)
		s.Equal(want, total, status)
		s.Len(donations, int(want), status)
	}
}

func (s *DonationRepositorySuite) TestList_SearchActivityAndPagination() {
	name := "Siti Rahma"
	target := &models.Donation{
		ActivityID: &s.activity.ID,
		Amount:     decimal.NewFromInt(75000),
		Name:       &name,
		IsPublic:   true,
	}
	s.Require().NoError(s.repo.Create(target))
	for i := 0; i < 4; i++ {
		s.newDonation(true, true, nil)
	}

	found, total, err := s.repo.List(models.DonationFilters{Search: "siti"}, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(target.ID, found[0].ID)

	_, total, err = s.repo.List(models.DonationFilters{ActivityID: &s.activity.ID}, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	page, total, err := s.repo.List(models.DonationFilters{}, 0, 2)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Len(page, 2)
}

func (s *DonationRepositorySuite) TestList_DateRange() {
	old := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{old, recent} {
		donation := &models.Donation{Amount: decimal.NewFromInt(1000), IsPublic: true, CreatedAt: at}
		s.Require().NoError(s.repo.Create(donation))
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	donations, total, err := s.repo.List(models.DonationFilters{StartDate: &start}, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.True(donations[0].CreatedAt.Equal(recent))
}

func (s *DonationRepositorySuite) TestFetchForReport() {
	other := database.CreateTestActivity(s.T(), s.db, "School Books", true)

	publicGeneral := s.newDonation(true, true, nil)
	privateGeneral := s.newDonation(true, false, nil)
	publicCampaign := s.newDonation(true, true, &s.activity.ID)
	s.newDonation(true, true, &other.ID)
	s.newDonation(false, true, nil)

	ctx := context.Background()

	admin, err := s.repo.FetchForReport(ctx, models.ReportFilter{})
	s.Require().NoError(err)
	s.Len(admin, 4)
	for _, d := range admin {
		s.True(d.IsConfirmed)
	}

	public, err := s.repo.FetchForReport(ctx, models.ReportFilter{PublicOnly: true})
	s.Require().NoError(err)
	s.Len(public, 3)
	s.NotContains(ids(public), privateGeneral.ID)
	s.Contains(ids(public), publicGeneral.ID)

	campaign, err := s.repo.FetchForReport(ctx, models.ReportFilter{PublicOnly: true, ActivityID: &s.activity.ID})
	s.Require().NoError(err)
	s.Require().Len(campaign, 1)
	s.Equal(publicCampaign.ID, campaign[0].ID)
	s.Require().NotNil(campaign[0].Activity)
	s.Equal(s.activity.Title, campaign[0].Activity.Title)
}

func (s *DonationRepositorySuite) TestCountPendingAndByActivity() {
	s.newDonation(false, true, &s.activity.ID)
	s.newDonation(false, false, nil)
	s.newDonation(true, true, &s.activity.ID)

	pending, err := s.repo.CountPending(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(2), pending)

	byActivity, err := s.repo.CountByActivity(s.activity.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), byActivity)
}

func ids(donations []models.Donation) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(donations))
	for _, d := range donations {
		out = append(out, d.ID)
	}
	return out
}
