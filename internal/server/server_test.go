package server

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/ross2p/ems-app/internal/errors"

	"github.com/ross2p/ems-app/internal/apiclient"
	"github.com/ross2p/ems-app/internal/config"
	"github.com/ross2p/ems-app/internal/database"
	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/services"
	"github.com/ross2p/ems-app/internal/session"
	"github.com/ross2p/ems-app/internal/storage"
)

func TestServerRoundTrip(t *testing.T) {
	suite.Run(t, new(ServerRoundTripSuite))
}

// ServerRoundTripSuite drives the full client stack against a wired server
// over a real HTTP listener. Nothing is mocked; the token store, the client
// interceptors and the session manager all run exactly as they do in the
// binaries.
type ServerRoundTripSuite struct {
	suite.Suite
	cfg        *config.Config
	db         *database.DB
	httpServer *httptest.Server
	tokens     *storage.TokenStore
	auth       services.AuthServiceInterface
	users      services.UserServiceInterface
	events     services.EventServiceInterface
	categories services.CategoryServiceInterface
	attendance services.AttendanceServiceInterface
	session    *session.Manager
	ctx        context.Context
}

func (s *ServerRoundTripSuite) SetupTest() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.cfg = &config.Config{
		JWT: config.JWTConfig{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
			PrivateKey:           privateKey,
			PublicKey:            publicKey,
			Issuer:               "ems-app",
		},
		Security: config.SecurityConfig{
			BCryptCost:         bcrypt.MinCost,
			RateLimitPerSecond: 100,
			RateLimitBurst:     100,
		},
	}

	s.db = database.SetupTestDB(s.T())
	s.httpServer = httptest.NewServer(New(s.cfg, s.db, slog.Default()).Echo())

	s.tokens = storage.NewTokenStore(storage.NewMemoryBackend(), slog.Default())
	client := apiclient.New(s.httpServer.URL+"/api/v1", s.tokens)
	s.auth = services.NewAuthService(client, slog.Default())
	s.users = services.NewUserService(client)
	s.events = services.NewEventService(client)
	s.categories = services.NewCategoryService(client)
	s.attendance = services.NewAttendanceService(client)
	s.session = session.NewManager(s.tokens, s.auth, slog.Default())
	s.ctx = context.Background()
}

func (s *ServerRoundTripSuite) TearDownTest() {
	s.httpServer.Close()
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ServerRoundTripSuite) register() (*models.User, string) {
	password := "secret123"
	user, err := s.session.Register(s.ctx, dto.RegisterRequest{
		Email:     gofakeit.Email(),
		Password:  password,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	})
	s.Require().NoError(err)
	return user, password
}

func (s *ServerRoundTripSuite) apiError(err error) *apperrors.APIError {
	s.Require().Error(err)
	apiErr := &apperrors.APIError{}
	s.Require().ErrorAs(err, &apiErr)
	return apiErr
}

func (s *ServerRoundTripSuite) TestRegisterLoginLogout() {
	user, password := s.register()
	s.Equal(session.StateAuthenticated, s.session.CurrentState())
	s.NotEmpty(s.tokens.GetAccessToken())
	s.NotEmpty(s.tokens.GetRefreshToken())

	me, err := s.auth.GetCurrentUser(s.ctx)
	s.NoError(err)
	s.Equal(user.Email, me.Email)

	s.session.Logout(s.ctx)
	s.Equal(session.StateAnonymous, s.session.CurrentState())
	s.Empty(s.tokens.GetAccessToken())
	s.Empty(s.tokens.GetRefreshToken())

	loggedIn, err := s.session.Login(s.ctx, user.Email, password)
	s.NoError(err)
	s.Equal(user.ID, loggedIn.ID)
	s.Equal(session.StateAuthenticated, s.session.CurrentState())
}

func (s *ServerRoundTripSuite) TestLogin_WrongPassword() {
	user, _ := s.register()
	s.session.Logout(s.ctx)

	_, err := s.session.Login(s.ctx, user.Email, "wrong-password")
	apiErr := s.apiError(err)
	s.Equal(apperrors.AuthInvalidCredentials, apiErr.Code())
	s.Equal(session.StateAnonymous, s.session.CurrentState())
}

func (s *ServerRoundTripSuite) TestRegister_DuplicateEmail() {
	user, password := s.register()

	_, err := s.session.Register(s.ctx, dto.RegisterRequest{
		Email:     user.Email,
		Password:  password,
		FirstName: "Other",
		LastName:  "Person",
	})
	s.Equal(apperrors.UserAlreadyExists, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestRegister_InvalidEmail() {
	_, err := s.session.Register(s.ctx, dto.RegisterRequest{
		Email:     "not-an-email",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	s.Equal(apperrors.ValidationGeneral, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestExpiredAccessTokenIsRefreshedTransparently() {
	user, _ := s.register()

	expiredCfg := s.cfg.JWT
	expiredCfg.AccessTokenDuration = -time.Minute
	expired, _, err := services.NewTokenService(&expiredCfg).GenerateAccessToken(user)
	s.Require().NoError(err)
	s.Require().True(s.tokens.SetAccessToken(expired))

	me, err := s.auth.GetCurrentUser(s.ctx)
	s.NoError(err)
	s.Equal(user.Email, me.Email)
	s.NotEqual(expired, s.tokens.GetAccessToken(), "access token should have been rotated")
}

func (s *ServerRoundTripSuite) TestLogoutRevokesRefreshToken() {
	s.register()
	refreshToken := s.tokens.GetRefreshToken()
	s.session.Logout(s.ctx)

	_, err := s.auth.Refresh(s.ctx, refreshToken)
	s.Equal(apperrors.AuthInvalidRefreshToken, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestEventLifecycle() {
	s.register()

	category, err := s.categories.Create(s.ctx, dto.CreateCategoryRequest{Name: "Music"})
	s.Require().NoError(err)

	start := time.Now().Add(48 * time.Hour).UTC()
	created, err := s.events.Create(s.ctx, dto.CreateEventRequest{
		Title:       "Jazz Evening",
		Description: "An evening of live jazz",
		StartDate:   start.Format(time.RFC3339),
		EndDate:     start.Add(3 * time.Hour).Format(time.RFC3339),
		Location:    "Blue Note",
		CategoryID:  category.ID.String(),
	})
	s.Require().NoError(err)
	s.NotNil(created.CategoryID)

	fetched, err := s.events.Get(s.ctx, created.ID.String())
	s.NoError(err)
	s.Equal("Jazz Evening", fetched.Title)

	page, err := s.events.List(s.ctx, models.EventListParams{Search: "jazz"})
	s.NoError(err)
	s.Equal(int64(1), page.Total)
	s.Len(page.Items, 1)

	newTitle := "Jazz Night"
	updated, err := s.events.Update(s.ctx, created.ID.String(), dto.UpdateEventRequest{Title: &newTitle})
	s.NoError(err)
	s.Equal(newTitle, updated.Title)

	s.NoError(s.events.Delete(s.ctx, created.ID.String()))

	_, err = s.events.Get(s.ctx, created.ID.String())
	s.Equal(apperrors.EventNotFound, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestEventUpdate_RejectedForNonOwner() {
	s.register()

	start := time.Now().Add(48 * time.Hour).UTC()
	created, err := s.events.Create(s.ctx, dto.CreateEventRequest{
		Title:       "Owners Only",
		Description: "Owner managed event",
		StartDate:   start.Format(time.RFC3339),
		EndDate:     start.Add(time.Hour).Format(time.RFC3339),
		Location:    "Town Hall",
	})
	s.Require().NoError(err)

	s.session.Logout(s.ctx)
	s.register()

	newTitle := "Hijacked"
	_, err = s.events.Update(s.ctx, created.ID.String(), dto.UpdateEventRequest{Title: &newTitle})
	s.Equal(apperrors.EventNotOwner, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestSimilarEvents() {
	s.register()

	category, err := s.categories.Create(s.ctx, dto.CreateCategoryRequest{Name: "Tech"})
	s.Require().NoError(err)

	var firstID string
	for i, title := range []string{"Go Meetup", "Rust Meetup", "Zig Meetup"} {
		start := time.Now().Add(time.Duration(24*(i+1)) * time.Hour).UTC()
		created, createErr := s.events.Create(s.ctx, dto.CreateEventRequest{
			Title:       title,
			Description: "A language meetup",
			StartDate:   start.Format(time.RFC3339),
			EndDate:     start.Add(2 * time.Hour).Format(time.RFC3339),
			Location:    "Hub",
			CategoryID:  category.ID.String(),
		})
		s.Require().NoError(createErr)
		if i == 0 {
			firstID = created.ID.String()
		}
	}

	similar, err := s.events.Similar(s.ctx, firstID)
	s.NoError(err)
	s.Len(similar, 2)
	for _, event := range similar {
		s.NotEqual(firstID, event.ID.String())
	}
}

func (s *ServerRoundTripSuite) TestAttendanceLifecycle() {
	user, _ := s.register()

	start := time.Now().Add(24 * time.Hour).UTC()
	event, err := s.events.Create(s.ctx, dto.CreateEventRequest{
		Title:       "Community Picnic",
		Description: "Food and games",
		StartDate:   start.Format(time.RFC3339),
		EndDate:     start.Add(4 * time.Hour).Format(time.RFC3339),
		Location:    "Central Park",
	})
	s.Require().NoError(err)

	created, err := s.attendance.Create(s.ctx, dto.CreateAttendanceRequest{
		UserID:  user.ID.String(),
		EventID: event.ID.String(),
	})
	s.Require().NoError(err)

	_, err = s.attendance.Create(s.ctx, dto.CreateAttendanceRequest{
		UserID:  user.ID.String(),
		EventID: event.ID.String(),
	})
	s.Equal(apperrors.AttendanceDuplicate, s.apiError(err).Code())

	byEvent, err := s.attendance.ByEvent(s.ctx, event.ID.String())
	s.NoError(err)
	s.Len(byEvent, 1)

	byUser, err := s.attendance.ByUser(s.ctx, user.ID.String())
	s.NoError(err)
	s.Len(byUser, 1)

	s.NoError(s.attendance.Delete(s.ctx, created.ID.String()))

	byEvent, err = s.attendance.ByEvent(s.ctx, event.ID.String())
	s.NoError(err)
	s.Empty(byEvent)
}

func (s *ServerRoundTripSuite) TestUserProfileLookup() {
	user, _ := s.register()

	profile, err := s.users.Get(s.ctx, user.ID.String())
	s.NoError(err)
	s.Equal(user.Email, profile.Email)

	_, err = s.users.Get(s.ctx, uuid.New().String())
	s.Equal(apperrors.UserNotFound, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestAccountDeletion_OwnAccountOnly() {
	victim, _ := s.register()
	s.session.Logout(s.ctx)

	attacker, password := s.register()

	err := s.users.Delete(s.ctx, victim.ID.String())
	s.Equal(apperrors.AuthInsufficientPermission, s.apiError(err).Code())

	s.NoError(s.users.Delete(s.ctx, attacker.ID.String()))
	s.session.Logout(s.ctx)

	_, err = s.session.Login(s.ctx, attacker.Email, password)
	s.Equal(apperrors.AuthInvalidCredentials, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestAttendanceGetByID() {
	user, _ := s.register()

	start := time.Now().Add(24 * time.Hour).UTC()
	event, err := s.events.Create(s.ctx, dto.CreateEventRequest{
		Title:       "Book Club",
		Description: "Monthly reading circle",
		StartDate:   start.Format(time.RFC3339),
		EndDate:     start.Add(2 * time.Hour).Format(time.RFC3339),
		Location:    "Library",
	})
	s.Require().NoError(err)

	created, err := s.attendance.Create(s.ctx, dto.CreateAttendanceRequest{
		UserID:  user.ID.String(),
		EventID: event.ID.String(),
	})
	s.Require().NoError(err)

	fetched, err := s.attendance.Get(s.ctx, created.ID.String())
	s.NoError(err)
	s.Equal(event.ID, fetched.EventID)
	s.Equal(user.ID, fetched.UserID)

	_, err = s.attendance.Get(s.ctx, uuid.New().String())
	s.Equal(apperrors.AttendanceNotFound, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestAttendanceCreate_RejectedForOtherUser() {
	s.register()

	start := time.Now().Add(24 * time.Hour).UTC()
	event, err := s.events.Create(s.ctx, dto.CreateEventRequest{
		Title:       "Closed Session",
		Description: "Invitation only",
		StartDate:   start.Format(time.RFC3339),
		EndDate:     start.Add(time.Hour).Format(time.RFC3339),
		Location:    "Annex",
	})
	s.Require().NoError(err)

	_, err = s.attendance.Create(s.ctx, dto.CreateAttendanceRequest{
		UserID:  uuid.New().String(),
		EventID: event.ID.String(),
	})
	s.Equal(apperrors.AuthInsufficientPermission, s.apiError(err).Code())
}

func (s *ServerRoundTripSuite) TestProtectedRouteWithoutToken() {
	_, err := s.auth.GetCurrentUser(s.ctx)
	s.Equal(apperrors.AuthMissingToken, s.apiError(err).Code())
}
