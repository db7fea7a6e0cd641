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

func TestAttendanceRepository(t *testing.T) {
	suite.Run(t, new(AttendanceRepositorySuite))
}

type AttendanceRepositorySuite struct {
	suite.Suite
	db    *database.DB
	repo  AttendanceRepositoryInterface
	user  *models.User
	event *models.Event
}

func (s *AttendanceRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAttendanceRepository(s.db.DB)

	s.user = &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: "hashed_password",
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
	}
	s.Require().NoError(NewUserRepository(s.db.DB).Create(s.user))

	start := time.Now().Add(24 * time.Hour)
	s.event = &models.Event{
		Title:       "Jazz Night",
		Description: gofakeit.Sentence(8),
		StartDate:   start,
		EndDate:     start.Add(2 * time.Hour),
		Location:    gofakeit.City(),
		CreatedByID: s.user.ID,
	}
	s.Require().NoError(NewEventRepository(s.db.DB).Create(s.event))
}

func (s *AttendanceRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AttendanceRepositorySuite) TestCreate() {
	attendance := &models.Attendance{UserID: s.user.ID, EventID: s.event.ID}

	s.NoError(s.repo.Create(attendance))
	s.NotEqual(uuid.Nil, attendance.ID)
}

func (s *AttendanceRepositorySuite) TestCreate_DuplicatePair() {
	s.Require().NoError(s.repo.Create(&models.Attendance{UserID: s.user.ID, EventID: s.event.ID}))

	err := s.repo.Create(&models.Attendance{UserID: s.user.ID, EventID: s.event.ID})
	s.ErrorIs(err, ErrAttendanceAlreadyExists)
}

func (s *AttendanceRepositorySuite) TestList_FilterByUserAndEvent() {
	s.Require().NoError(s.repo.Create(&models.Attendance{UserID: s.user.ID, EventID: s.event.ID}))

	byUser, err := s.repo.List(models.AttendanceListParams{UserID: s.user.ID.String()})
	s.NoError(err)
	s.Len(byUser, 1)

	byEvent, err := s.repo.List(models.AttendanceListParams{EventID: s.event.ID.String()})
	s.NoError(err)
	s.Len(byEvent, 1)

	none, err := s.repo.List(models.AttendanceListParams{UserID: uuid.New().String()})
	s.NoError(err)
	s.Empty(none)
}

func (s *AttendanceRepositorySuite) TestGetByUserAndEvent() {
	s.Require().NoError(s.repo.Create(&models.Attendance{UserID: s.user.ID, EventID: s.event.ID}))

	found, err := s.repo.GetByUserAndEvent(s.user.ID, s.event.ID)
	s.NoError(err)
	s.Equal(s.event.ID, found.EventID)

	_, err = s.repo.GetByUserAndEvent(s.user.ID, uuid.New())
	s.ErrorIs(err, ErrAttendanceNotFound)
}

func (s *AttendanceRepositorySuite) TestDelete() {
	attendance := &models.Attendance{UserID: s.user.ID, EventID: s.event.ID}
	s.Require().NoError(s.repo.Create(attendance))

	s.NoError(s.repo.Delete(attendance.ID))
	s.ErrorIs(s.repo.Delete(attendance.ID), ErrAttendanceNotFound)
}
