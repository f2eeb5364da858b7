package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/mock"
	"github.com/MKhiriev/go-login-server/internal/store"
	"github.com/MKhiriev/go-login-server/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testDummyHash = "dummy-hash"

// newTestUserSvc builds a userService over mocked persistence, hashing and
// nickname generation, and a real token service.
func newTestUserSvc(t *testing.T, ctrl *gomock.Controller, cfg config.App) (
	*userService,
	*mock.MockUserRepository,
	*mock.MockPasswordHasher,
	*mock.MockNicknameGenerator,
) {
	t.Helper()

	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	nicknames := mock.NewMockNicknameGenerator(ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return(testDummyHash, nil)

	svc, err := NewUserService(repo, NewTokenService(testAppConfig()), hasher, nicknames, cfg, logger.Nop())
	require.NoError(t, err)

	return svc.(*userService), repo, hasher, nicknames
}

func storedUser(t *testing.T, svc *userService, refreshToken string, expiresAt time.Time) models.User {
	t.Helper()

	user := models.User{
		ID:           1,
		LoginID:      "alice",
		PasswordHash: "hashed",
		Nickname:     "Al",
		Role:         models.RoleUser,
	}
	if refreshToken != "" {
		digest := svc.tokenService.Digest(refreshToken)
		user.RefreshToken = &digest
		user.RefreshTokenExpiresAt = &expiresAt
	}
	return user
}

func TestNewUserService_HashFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := mock.NewMockPasswordHasher(ctrl)
	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("boom"))

	svc, err := NewUserService(mock.NewMockUserRepository(ctrl), NewTokenService(testAppConfig()),
		hasher, mock.NewMockNicknameGenerator(ctrl), config.App{}, logger.Nop())

	assert.Nil(t, svc)
	assert.Error(t, err)
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestRegisterUser_WithNickname(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	hasher.EXPECT().Hash("secret").Return("hashed", nil)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "alice", u.LoginID)
			assert.Equal(t, "hashed", u.PasswordHash)
			assert.Equal(t, "Al", u.Nickname)
			assert.Equal(t, models.RoleUser, u.Role)
			u.ID = 1
			return u, nil
		})

	user, err := svc.RegisterUser(ctx, models.RegisterRequest{LoginID: " alice ", Password: "secret", Nickname: "Al"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.LoginID)
}

func TestRegisterUser_GeneratedNickname_Retries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, nicknames := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	hasher.EXPECT().Hash("secret").Return("hashed", nil)
	gomock.InOrder(
		nicknames.EXPECT().Generate().Return("TakenOwl1"),
		repo.EXPECT().ExistsByNickname(ctx, "TakenOwl1").Return(true, nil),
		nicknames.EXPECT().Generate().Return("RacedFox2"),
		repo.EXPECT().ExistsByNickname(ctx, "RacedFox2").Return(false, nil),
		repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrDuplicateNickname),
		nicknames.EXPECT().Generate().Return("FreeLynx3"),
		repo.EXPECT().ExistsByNickname(ctx, "FreeLynx3").Return(false, nil),
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				u.ID = 7
				return u, nil
			}),
	)

	user, err := svc.RegisterUser(ctx, models.RegisterRequest{LoginID: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "FreeLynx3", user.Nickname)
	assert.Equal(t, int64(7), user.ID)
}

func TestRegisterUser_GeneratedNickname_Exhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, nicknames := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	hasher.EXPECT().Hash("secret").Return("hashed", nil)
	nicknames.EXPECT().Generate().Return("BusyBear1").Times(maxNicknameAttempts)
	repo.EXPECT().ExistsByNickname(ctx, "BusyBear1").Return(true, nil).Times(maxNicknameAttempts)

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{LoginID: "alice", Password: "secret"})

	assert.ErrorIs(t, err, ErrNicknameGenerationFailed)
}

func TestRegisterUser_DuplicateLoginID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	hasher.EXPECT().Hash("secret").Return("hashed", nil)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrDuplicateLoginID)

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{LoginID: "alice", Password: "secret", Nickname: "Al"})

	assert.ErrorIs(t, err, store.ErrDuplicateLoginID)
}

func TestRegisterUser_DuplicateNicknameSupplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	hasher.EXPECT().Hash("secret").Return("hashed", nil)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrDuplicateNickname)

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{LoginID: "alice", Password: "secret", Nickname: "Al"})

	assert.ErrorIs(t, err, store.ErrDuplicateNickname)
}

func TestRegisterUser_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"empty login id", models.RegisterRequest{Password: "secret"}},
		{"blank login id", models.RegisterRequest{LoginID: "   ", Password: "secret"}},
		{"empty password", models.RegisterRequest{LoginID: "alice"}},
		{"login id too long", models.RegisterRequest{LoginID: strings.Repeat("a", 256), Password: "secret"}},
		{"nickname too long", models.RegisterRequest{LoginID: "alice", Password: "secret", Nickname: strings.Repeat("n", 256)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, _, _ := newTestUserSvc(t, ctrl, config.App{})

			_, err := svc.RegisterUser(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestRegisterUser_HashFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	hasher.EXPECT().Hash("secret").Return("", errors.New("boom"))

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{LoginID: "alice", Password: "secret"})

	assert.Error(t, err)
}

// ── IsLoginIDAvailable ───────────────────────────────────────────────────────

func TestIsLoginIDAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	repo.EXPECT().ExistsByLoginID(ctx, "alice").Return(true, nil)
	repo.EXPECT().ExistsByLoginID(ctx, "bob").Return(false, nil)

	available, err := svc.IsLoginIDAvailable(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.IsLoginIDAvailable(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsLoginIDAvailable_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestUserSvc(t, ctrl, config.App{})

	_, err := svc.IsLoginIDAvailable(context.Background(), " ")

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestIsLoginIDAvailable_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	dbErr := errors.New("connection refused")
	repo.EXPECT().ExistsByLoginID(gomock.Any(), "alice").Return(false, dbErr)

	_, err := svc.IsLoginIDAvailable(context.Background(), "alice")

	assert.ErrorIs(t, err, dbErr)
}

// ── LoginUser ────────────────────────────────────────────────────────────────

func TestLoginUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	var savedDigest string
	repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(storedUser(t, svc, "", time.Time{}), nil)
	hasher.EXPECT().Verify("secret", "hashed").Return(true)
	repo.EXPECT().SaveRefreshToken(ctx, "alice", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, digest string, expiresAt time.Time) error {
			savedDigest = digest
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 2*time.Second)
			return nil
		})

	pair, err := svc.LoginUser(ctx, "alice", "secret")
	require.NoError(t, err)

	claims, err := svc.tokenService.ParseClaims(pair.AccessToken.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.LoginID())
	assert.Equal(t, "Al", claims.Nickname)
	assert.Equal(t, models.RoleUser, claims.Role)

	assert.True(t, svc.tokenService.ValidateRefreshToken(pair.RefreshToken.SignedString, "alice"))
	assert.Equal(t, svc.tokenService.Digest(pair.RefreshToken.SignedString), savedDigest)
	assert.NotEqual(t, pair.RefreshToken.SignedString, savedDigest)
}

func TestLoginUser_FailuresAreIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	// unknown login id still verifies against the dummy hash
	repo.EXPECT().FindUserByLoginID(ctx, "ghost").Return(models.User{}, store.ErrNoUserWasFound)
	hasher.EXPECT().Verify("secret", testDummyHash).Return(false)

	repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(storedUser(t, svc, "", time.Time{}), nil)
	hasher.EXPECT().Verify("wrong", "hashed").Return(false)

	_, unknownErr := svc.LoginUser(ctx, "ghost", "secret")
	_, wrongErr := svc.LoginUser(ctx, "alice", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginUser_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	dbErr := errors.New("connection refused")
	repo.EXPECT().FindUserByLoginID(gomock.Any(), "alice").Return(models.User{}, dbErr)

	_, err := svc.LoginUser(context.Background(), "alice", "secret")

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_TokenCreationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	tokens := mock.NewMockTokenService(ctrl)
	svc.tokenService = tokens

	repo.EXPECT().FindUserByLoginID(gomock.Any(), "alice").Return(models.User{LoginID: "alice", PasswordHash: "hashed"}, nil)
	hasher.EXPECT().Verify("secret", "hashed").Return(true)
	tokens.EXPECT().CreateAccessToken("alice", gomock.Any(), gomock.Any()).Return(models.Token{}, ErrTokenCreationFailed)

	_, err := svc.LoginUser(context.Background(), "alice", "secret")

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestLoginUser_SaveRefreshTokenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(storedUser(t, svc, "", time.Time{}), nil)
	hasher.EXPECT().Verify("secret", "hashed").Return(true)
	repo.EXPECT().SaveRefreshToken(ctx, "alice", gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.LoginUser(ctx, "alice", "secret")

	assert.Error(t, err)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestRefresh_Valid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	refresh, err := svc.tokenService.CreateRefreshToken("alice")
	require.NoError(t, err)

	user := storedUser(t, svc, refresh.SignedString, refresh.ExpiresAt)
	user.Nickname = "StoredNick"
	user.Role = models.RoleAdmin
	repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(user, nil)

	pair, err := svc.Refresh(ctx, "alice", refresh.SignedString)
	require.NoError(t, err)

	claims, err := svc.tokenService.ParseClaims(pair.AccessToken.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.LoginID())
	assert.Equal(t, "StoredNick", claims.Nickname)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Empty(t, pair.RefreshToken.SignedString)
}

func TestRefresh_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	current, err := svc.tokenService.CreateRefreshToken("alice")
	require.NoError(t, err)
	stale, err := svc.tokenService.CreateRefreshToken("alice")
	require.NoError(t, err)
	access, err := svc.tokenService.CreateAccessToken("alice", "Al", models.RoleUser)
	require.NoError(t, err)

	t.Run("stale token", func(t *testing.T) {
		repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(storedUser(t, svc, current.SignedString, current.ExpiresAt), nil)

		_, err := svc.Refresh(ctx, "alice", stale.SignedString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("stored token expired", func(t *testing.T) {
		repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(storedUser(t, svc, current.SignedString, time.Now().Add(-time.Minute)), nil)

		_, err := svc.Refresh(ctx, "alice", current.SignedString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("nothing stored", func(t *testing.T) {
		repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(storedUser(t, svc, "", time.Time{}), nil)

		_, err := svc.Refresh(ctx, "alice", current.SignedString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("user deleted", func(t *testing.T) {
		repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(models.User{}, store.ErrNoUserWasFound)

		_, err := svc.Refresh(ctx, "alice", current.SignedString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "alice", "garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other subject", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "bob", current.SignedString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("access token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "alice", access.SignedString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "", current.SignedString)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)

		_, err = svc.Refresh(ctx, "alice", "")
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}

func TestRefresh_Rotation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{RotateRefreshTokens: true})
	ctx := context.Background()

	refresh, err := svc.tokenService.CreateRefreshToken("alice")
	require.NoError(t, err)

	var savedDigest string
	repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(storedUser(t, svc, refresh.SignedString, refresh.ExpiresAt), nil)
	repo.EXPECT().SaveRefreshToken(ctx, "alice", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, digest string, _ time.Time) error {
			savedDigest = digest
			return nil
		})

	pair, err := svc.Refresh(ctx, "alice", refresh.SignedString)
	require.NoError(t, err)

	require.NotEmpty(t, pair.RefreshToken.SignedString)
	assert.NotEqual(t, refresh.SignedString, pair.RefreshToken.SignedString)
	assert.Equal(t, svc.tokenService.Digest(pair.RefreshToken.SignedString), savedDigest)
}

// ── SaveRefreshToken ─────────────────────────────────────────────────────────

func TestSaveRefreshToken_LatestWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	var (
		digest    string
		expiresAt time.Time
	)
	repo.EXPECT().SaveRefreshToken(ctx, "alice", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, d string, e time.Time) error {
			digest, expiresAt = d, e
			return nil
		}).Times(2)
	repo.EXPECT().FindUserByLoginID(ctx, "alice").DoAndReturn(
		func(context.Context, string) (models.User, error) {
			return models.User{LoginID: "alice", Nickname: "Al", Role: models.RoleUser, RefreshToken: &digest, RefreshTokenExpiresAt: &expiresAt}, nil
		}).Times(2)

	first, err := svc.tokenService.CreateRefreshToken("alice")
	require.NoError(t, err)
	second, err := svc.tokenService.CreateRefreshToken("alice")
	require.NoError(t, err)

	require.NoError(t, svc.SaveRefreshToken(ctx, "alice", first))
	require.NoError(t, svc.SaveRefreshToken(ctx, "alice", second))

	_, err = svc.Refresh(ctx, "alice", first.SignedString)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(ctx, "alice", second.SignedString)
	assert.NoError(t, err)
}

func TestSaveRefreshToken_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	repo.EXPECT().SaveRefreshToken(gomock.Any(), "ghost", gomock.Any(), gomock.Any()).Return(store.ErrNoUserWasFound)

	err := svc.SaveRefreshToken(context.Background(), "ghost", models.Token{SignedString: "t", ExpiresAt: time.Now()})

	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

// ── Logout / GetUser ─────────────────────────────────────────────────────────

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	repo.EXPECT().ClearRefreshToken(ctx, "alice").Return(nil)
	repo.EXPECT().ClearRefreshToken(ctx, "ghost").Return(store.ErrNoUserWasFound)

	assert.NoError(t, svc.Logout(ctx, "alice"))
	assert.ErrorIs(t, svc.Logout(ctx, "ghost"), ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{})
	ctx := context.Background()

	repo.EXPECT().FindUserByLoginID(ctx, "alice").Return(models.User{ID: 1, LoginID: "alice"}, nil)
	repo.EXPECT().FindUserByLoginID(ctx, "ghost").Return(models.User{}, store.ErrNoUserWasFound)

	user, err := svc.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	_, err = svc.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ── BootstrapAdmin ───────────────────────────────────────────────────────────

func TestBootstrapAdmin_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestUserSvc(t, ctrl, config.App{})

	assert.NoError(t, svc.BootstrapAdmin(context.Background()))
}

func TestBootstrapAdmin_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{AdminLoginID: "root"})
	repo.EXPECT().ExistsByLoginID(gomock.Any(), "root").Return(true, nil)

	assert.NoError(t, svc.BootstrapAdmin(context.Background()))
}

func TestBootstrapAdmin_ConfiguredPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, nicknames := newTestUserSvc(t, ctrl, config.App{AdminLoginID: "root", AdminPassword: "s3cret"})
	ctx := context.Background()

	repo.EXPECT().ExistsByLoginID(ctx, "root").Return(false, nil)
	hasher.EXPECT().Hash("s3cret").Return("admin-hash", nil)
	nicknames.EXPECT().Generate().Return("MightyEagle1")
	repo.EXPECT().ExistsByNickname(ctx, "MightyEagle1").Return(false, nil)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "root", u.LoginID)
			assert.Equal(t, "admin-hash", u.PasswordHash)
			assert.Equal(t, models.RoleAdmin, u.Role)
			return u, nil
		})

	assert.NoError(t, svc.BootstrapAdmin(ctx))
}

func TestBootstrapAdmin_GeneratedPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, nicknames := newTestUserSvc(t, ctrl, config.App{AdminLoginID: "root"})

	var console, logs bytes.Buffer
	svc.console = &console
	ctx := zerolog.New(&logs).WithContext(context.Background())

	var plain string
	repo.EXPECT().ExistsByLoginID(ctx, "root").Return(false, nil)
	hasher.EXPECT().Hash(gomock.Any()).DoAndReturn(func(p string) (string, error) {
		plain = p
		return "admin-hash", nil
	})
	nicknames.EXPECT().Generate().Return("MightyEagle1")
	repo.EXPECT().ExistsByNickname(ctx, "MightyEagle1").Return(false, nil)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) { return u, nil })

	require.NoError(t, svc.BootstrapAdmin(ctx))

	assert.Len(t, plain, 24)
	assert.Contains(t, console.String(), plain)
	assert.Contains(t, logs.String(), "admin account created")
	assert.Contains(t, logs.String(), `"password_generated":true`)
	assert.NotContains(t, logs.String(), plain)
}

func TestBootstrapAdmin_LostRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, hasher, nicknames := newTestUserSvc(t, ctrl, config.App{AdminLoginID: "root", AdminPassword: "s3cret"})
	ctx := context.Background()

	repo.EXPECT().ExistsByLoginID(ctx, "root").Return(false, nil)
	hasher.EXPECT().Hash("s3cret").Return("admin-hash", nil)
	nicknames.EXPECT().Generate().Return("MightyEagle1")
	repo.EXPECT().ExistsByNickname(ctx, "MightyEagle1").Return(false, nil)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrDuplicateLoginID)

	assert.NoError(t, svc.BootstrapAdmin(ctx))
}

func TestBootstrapAdmin_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestUserSvc(t, ctrl, config.App{AdminLoginID: "root"})
	repo.EXPECT().ExistsByLoginID(gomock.Any(), "root").Return(false, errors.New("connection refused"))

	assert.Error(t, svc.BootstrapAdmin(context.Background()))
}
