package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/services/service_mocks"
	"github.com/ross2p/ems-app/internal/storage"
)

const (
	accessToken  = "YWNjZXNz.dG9rZW4.c2ln"
	refreshToken = "cmVmcmVzaA.dG9rZW4.c2ln"
)

type SessionManagerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	auth     *service_mocks.MockAuthServiceInterface
	backend  *storage.MemoryBackend
	tokens   *storage.TokenStore
	manager  *Manager
	testUser *models.User
}

func (s *SessionManagerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.auth = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.backend = storage.NewMemoryBackend()
	s.tokens = storage.NewTokenStore(s.backend, nil)
	s.manager = NewManager(s.tokens, s.auth, nil)
	s.testUser = &models.User{
		ID:        uuid.New(),
		Email:     "kate@example.com",
		FirstName: "Kate",
		LastName:  "Bell",
	}
}

func (s *SessionManagerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSessionManagerSuite(t *testing.T) {
	suite.Run(t, new(SessionManagerTestSuite))
}

func (s *SessionManagerTestSuite) TestStartsInitializing() {
	s.Equal(StateInitializing, s.manager.CurrentState())
	s.True(s.manager.IsLoading())
	s.False(s.manager.IsAuthenticated())
}

func (s *SessionManagerTestSuite) TestInitialize_NoTokens_AnonymousWithoutNetwork() {
	// No expectations on the auth mock: any call would fail the test
	s.manager.Initialize(context.Background())

	s.Equal(StateAnonymous, s.manager.CurrentState())
	s.False(s.manager.IsLoading())
	s.Nil(s.manager.CurrentUser())
}

func (s *SessionManagerTestSuite) TestInitialize_CachedProfile_AuthenticatedWithoutNetwork() {
	s.Require().True(s.tokens.SetTokens(accessToken, refreshToken))
	s.Require().True(s.tokens.SetUser(s.testUser))

	s.manager.Initialize(context.Background())

	s.Equal(StateAuthenticated, s.manager.CurrentState())
	s.Require().NotNil(s.manager.CurrentUser())
	s.Equal(s.testUser.Email, s.manager.CurrentUser().Email)
}

func (s *SessionManagerTestSuite) TestInitialize_TokenWithoutProfile_FetchesUser() {
	s.Require().True(s.tokens.SetTokens(accessToken, refreshToken))

	s.auth.EXPECT().GetCurrentUser(gomock.Any()).Return(s.testUser, nil)

	s.manager.Initialize(context.Background())

	s.Equal(StateAuthenticated, s.manager.CurrentState())
	s.Equal(s.testUser, s.manager.CurrentUser())

	// The fetched profile was written back to storage
	var cached models.User
	s.True(s.tokens.GetUser(&cached))
	s.Equal(s.testUser.Email, cached.Email)
}

func (s *SessionManagerTestSuite) TestInitialize_ProfileFetchFails_ClearsSession() {
	s.Require().True(s.tokens.SetTokens(accessToken, refreshToken))

	s.auth.EXPECT().GetCurrentUser(gomock.Any()).Return(nil, errors.New("401"))

	s.manager.Initialize(context.Background())

	s.Equal(StateAnonymous, s.manager.CurrentState())
	s.Nil(s.manager.CurrentUser())
	s.Empty(s.tokens.GetAccessToken())
	s.Empty(s.tokens.GetRefreshToken())
}

func (s *SessionManagerTestSuite) TestLogin_Success() {
	s.auth.EXPECT().
		Login(gomock.Any(), dto.LoginRequest{Email: "kate@example.com", Password: "secret"}).
		Return(&dto.AuthResponse{
			User:         s.testUser,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}, nil)

	user, err := s.manager.Login(context.Background(), "kate@example.com", "secret")

	s.NoError(err)
	s.Equal(s.testUser, user)
	s.Equal(StateAuthenticated, s.manager.CurrentState())
	s.Equal(accessToken, s.tokens.GetAccessToken())
	s.Equal(refreshToken, s.tokens.GetRefreshToken())
}

func (s *SessionManagerTestSuite) TestLogin_Failure_SurfacesErrorKeepsState() {
	s.manager.Initialize(context.Background())
	loginErr := errors.New("invalid credentials")

	s.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, loginErr)

	user, err := s.manager.Login(context.Background(), "kate@example.com", "wrong")

	s.ErrorIs(err, loginErr)
	s.Nil(user)
	s.Equal(StateAnonymous, s.manager.CurrentState())
	s.ErrorIs(s.manager.Err(), loginErr)

	s.manager.ClearError()
	s.NoError(s.manager.Err())
}

func (s *SessionManagerTestSuite) TestLogin_ResponseWithoutUserFails() {
	s.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(&dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil)

	user, err := s.manager.Login(context.Background(), "kate@example.com", "secret")

	s.Error(err)
	s.Nil(user)
	s.False(s.manager.IsAuthenticated())
}

func (s *SessionManagerTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{
		Email:     "kate@example.com",
		Password:  "secret1",
		FirstName: "Kate",
		LastName:  "Bell",
	}

	s.auth.EXPECT().Register(gomock.Any(), req).Return(&dto.AuthResponse{
		User:         s.testUser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil)

	user, err := s.manager.Register(context.Background(), req)

	s.NoError(err)
	s.Equal(s.testUser, user)
	s.True(s.manager.IsAuthenticated())
}

func (s *SessionManagerTestSuite) TestLogout_ClearsEverything() {
	s.Require().True(s.tokens.SetTokens(accessToken, refreshToken))
	s.Require().True(s.tokens.SetUser(s.testUser))

	s.auth.EXPECT().Logout(gomock.Any()).Return(nil)

	s.manager.Logout(context.Background())

	s.Equal(StateAnonymous, s.manager.CurrentState())
	s.Nil(s.manager.CurrentUser())
	s.Empty(s.tokens.GetAccessToken())
	s.Empty(s.tokens.GetRefreshToken())
}

func (s *SessionManagerTestSuite) TestLogout_ServerFailureStillClearsLocally() {
	s.Require().True(s.tokens.SetTokens(accessToken, refreshToken))

	s.auth.EXPECT().Logout(gomock.Any()).Return(errors.New("network down"))

	s.manager.Logout(context.Background())

	s.Equal(StateAnonymous, s.manager.CurrentState())
	s.Empty(s.tokens.GetAccessToken())
}

func (s *SessionManagerTestSuite) TestSetTokens() {
	s.True(s.manager.SetTokens(accessToken, refreshToken))
	s.Equal(accessToken, s.tokens.GetAccessToken())

	s.False(s.manager.SetTokens("bad", refreshToken))
	s.Error(s.manager.Err())
}
