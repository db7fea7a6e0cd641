package repositories

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ross2p/ems-app/internal/database"
	"github.com/ross2p/ems-app/internal/models"
)

func TestEventRepository(t *testing.T) {
	suite.Run(t, new(EventRepositorySuite))
}

type EventRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo EventRepositoryInterface
	user *models.User
}

func (s *EventRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewEventRepository(s.db.DB)

	s.user = &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: "hashed_password",
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
	}
	s.Require().NoError(NewUserRepository(s.db.DB).Create(s.user))
}

func (s *EventRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *EventRepositorySuite) newEvent(title string, start time.Time, categoryID *uuid.UUID) *models.Event {
	event := &models.Event{
		Title:       title,
		Description: gofakeit.Sentence(8),
		StartDate:   start,
		EndDate:     start.Add(2 * time.Hour),
		Location:    gofakeit.City(),
		CategoryID:  categoryID,
		CreatedByID: s.user.ID,
	}
	s.Require().NoError(s.repo.Create(event))
	return event
}

func (s *EventRepositorySuite) TestCreateAndGetByID() {
	event := s.newEvent("Jazz Night", time.Now().Add(24*time.Hour), nil)
	s.NotEqual(uuid.Nil, event.ID)

	found, err := s.repo.GetByID(event.ID)
	s.NoError(err)
	s.Equal(event.Title, found.Title)
	s.Require().NotNil(found.CreatedBy)
	s.Equal(s.user.Email, found.CreatedBy.Email)
}

func (s *EventRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrEventNotFound)
}

func (s *EventRepositorySuite) TestList_SearchMatchesTitleAndDescription() {
	s.newEvent("Jazz Night", time.Now().Add(24*time.Hour), nil)
	s.newEvent("Food Market", time.Now().Add(48*time.Hour), nil)

	events, total, err := s.repo.List(models.EventListParams{Search: "Jazz"})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(events, 1)
	s.Equal("Jazz Night", events[0].Title)
}

func (s *EventRepositorySuite) TestList_FilterByCategory() {
	category := &models.Category{Name: "Music", CreatedByID: s.user.ID}
	s.Require().NoError(NewCategoryRepository(s.db.DB).Create(category))

	s.newEvent("Jazz Night", time.Now().Add(24*time.Hour), &category.ID)
	s.newEvent("Food Market", time.Now().Add(48*time.Hour), nil)

	events, total, err := s.repo.List(models.EventListParams{CategoryID: category.ID.String()})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(events, 1)
	s.Equal("Jazz Night", events[0].Title)
}

func (s *EventRepositorySuite) TestList_FilterByDateWindow() {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s.newEvent("Early", base, nil)
	s.newEvent("Middle", base.AddDate(0, 0, 10), nil)
	s.newEvent("Late", base.AddDate(0, 0, 20), nil)

	events, total, err := s.repo.List(models.EventListParams{
		StartDate: "2026-09-05",
		EndDate:   "2026-09-15",
	})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(events, 1)
	s.Equal("Middle", events[0].Title)
}

func (s *EventRepositorySuite) TestList_SortByTitleDescending() {
	now := time.Now().Add(24 * time.Hour)
	s.newEvent("Alpha", now, nil)
	s.newEvent("Charlie", now.Add(time.Hour), nil)
	s.newEvent("Bravo", now.Add(2*time.Hour), nil)

	events, _, err := s.repo.List(models.EventListParams{
		SortBy:    models.SortByTitle,
		SortOrder: models.SortOrderDesc,
	})
	s.NoError(err)
	s.Require().Len(events, 3)
	s.Equal("Charlie", events[0].Title)
	s.Equal("Bravo", events[1].Title)
	s.Equal("Alpha", events[2].Title)
}

func (s *EventRepositorySuite) TestList_DefaultSortIsStartDateAscending() {
	now := time.Now().Add(24 * time.Hour)
	s.newEvent("Second", now.Add(time.Hour), nil)
	s.newEvent("First", now, nil)

	events, _, err := s.repo.List(models.EventListParams{})
	s.NoError(err)
	s.Require().Len(events, 2)
	s.Equal("First", events[0].Title)
}

func (s *EventRepositorySuite) TestList_Pagination() {
	now := time.Now().Add(24 * time.Hour)
	for i := 0; i < 5; i++ {
		s.newEvent(gofakeit.BookTitle(), now.Add(time.Duration(i)*time.Hour), nil)
	}

	page1, total, err := s.repo.List(models.EventListParams{PageNumber: 1, PageSize: 2})
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(page1, 2)

	page3, total, err := s.repo.List(models.EventListParams{PageNumber: 3, PageSize: 2})
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(page3, 1)
}

func (s *EventRepositorySuite) TestSimilar_SameCategoryUpcomingOnly() {
	categoryRepo := NewCategoryRepository(s.db.DB)
	music := &models.Category{Name: "Music", CreatedByID: s.user.ID}
	s.Require().NoError(categoryRepo.Create(music))
	food := &models.Category{Name: "Food", CreatedByID: s.user.ID}
	s.Require().NoError(categoryRepo.Create(food))

	target := s.newEvent("Jazz Night", time.Now().Add(24*time.Hour), &music.ID)
	s.newEvent("Rock Night", time.Now().Add(48*time.Hour), &music.ID)
	s.newEvent("Old Concert", time.Now().Add(-48*time.Hour), &music.ID)
	s.newEvent("Food Market", time.Now().Add(48*time.Hour), &food.ID)

	similar, err := s.repo.Similar(target, 4)
	s.NoError(err)
	s.Require().Len(similar, 1)
	s.Equal("Rock Night", similar[0].Title)
}

func (s *EventRepositorySuite) TestUpdateAndDelete() {
	event := s.newEvent("Jazz Night", time.Now().Add(24*time.Hour), nil)

	event.Title = "Jazz & Blues Night"
	s.NoError(s.repo.Update(event))

	found, err := s.repo.GetByID(event.ID)
	s.NoError(err)
	s.Equal("Jazz & Blues Night", found.Title)

	s.NoError(s.repo.Delete(event.ID))
	_, err = s.repo.GetByID(event.ID)
	s.ErrorIs(err, ErrEventNotFound)

	s.ErrorIs(s.repo.Delete(event.ID), ErrEventNotFound)
}
