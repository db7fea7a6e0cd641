package repositories

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ross2p/ems-app/internal/database"
	"github.com/ross2p/ems-app/internal/models"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) newUser() *models.User {
	return &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: "hashed_password",
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
	}
}

func (s *UserRepositorySuite) TestCreate() {
	user := s.newUser()

	s.NoError(s.repo.Create(user))
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
}

func (s *UserRepositorySuite) TestCreate_DuplicateEmail() {
	user := s.newUser()
	s.Require().NoError(s.repo.Create(user))

	duplicate := s.newUser()
	duplicate.Email = user.Email

	s.ErrorIs(s.repo.Create(duplicate), ErrUserAlreadyExists)
}

func (s *UserRepositorySuite) TestGetByEmail() {
	user := s.newUser()
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByEmail(user.Email)
	s.NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByEmail("nobody@example.com")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestGetByID() {
	user := s.newUser()
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(user.Email, found.Email)

	_, err = s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestDelete() {
	user := s.newUser()
	s.Require().NoError(s.repo.Create(user))

	tokenRepo := NewRefreshTokenRepository(s.db.DB)
	s.Require().NoError(tokenRepo.Create(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: "deadbeef",
		ExpiresAt: user.CreatedAt.AddDate(0, 0, 7),
	}))

	s.NoError(s.repo.Delete(user.ID))

	_, err := s.repo.GetByID(user.ID)
	s.ErrorIs(err, ErrUserNotFound)

	_, err = tokenRepo.GetByTokenHash("deadbeef")
	s.ErrorIs(err, ErrRefreshTokenNotFound)
}

func (s *UserRepositorySuite) TestDelete_NotFound() {
	s.ErrorIs(s.repo.Delete(uuid.New()), ErrUserNotFound)
}

func (s *UserRepositorySuite) TestUpdate() {
	user := s.newUser()
	s.Require().NoError(s.repo.Create(user))

	user.FirstName = "Updated"
	s.NoError(s.repo.Update(user))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("Updated", found.FirstName)
}
