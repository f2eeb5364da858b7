package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/crypto"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/store"
	"github.com/MKhiriev/go-login-server/models"
)

const (
	// maxNicknameAttempts bounds how many generated nicknames are tried
	// before registration gives up.
	maxNicknameAttempts = 10

	// maxIdentifierLength matches the login_id and nickname column widths.
	maxIdentifierLength = 255
)

// userService is the concrete implementation of [UserService].
// It owns the user lifecycle: registration, credential checks and the one
// refresh token each user may hold.
type userService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	tokenService TokenService
	hasher       crypto.PasswordHasher
	nicknames    NicknameGenerator

	// rotateRefreshTokens makes Refresh issue and store a new refresh
	// token on every call.
	rotateRefreshTokens bool

	adminLoginID  string
	adminPassword string

	// dummyHash is verified against when the login ID is unknown so that
	// both failure paths cost one hash comparison.
	dummyHash string

	// now is replaced in tests.
	now func() time.Time

	// console receives the generated admin password, outside the log.
	console io.Writer

	logger *logger.Logger
}

// NewUserService constructs a [UserService]. It hashes one throwaway
// password up front, which takes as long as a single login.
func NewUserService(
	userRepository store.UserRepository,
	tokenService TokenService,
	hasher crypto.PasswordHasher,
	nicknames NicknameGenerator,
	cfg config.App,
	logger *logger.Logger,
) (UserService, error) {
	dummyHash, err := hasher.Hash("dummy password for timing equalisation")
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}

	return &userService{
		userRepository:      userRepository,
		tokenService:        tokenService,
		hasher:              hasher,
		nicknames:           nicknames,
		rotateRefreshTokens: cfg.RotateRefreshTokens,
		adminLoginID:        cfg.AdminLoginID,
		adminPassword:       cfg.AdminPassword,
		dummyHash:           dummyHash,
		now:                 time.Now,
		console:             os.Stderr,
		logger:              logger,
	}, nil
}

// RegisterUser creates a USER account.
//
// The login ID is required; the nickname is generated when empty. The
// password is hashed before it reaches the repository.
//
// Returns:
//   - ErrInvalidDataProvided if the login ID or password is empty or too long.
//   - store.ErrDuplicateLoginID if the login ID is taken, including when a
//     concurrent registration won the race.
//   - store.ErrDuplicateNickname if a supplied nickname is taken.
func (s *userService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	loginID := strings.TrimSpace(req.LoginID)
	nickname := strings.TrimSpace(req.Nickname)
	if loginID == "" || req.Password == "" || len(loginID) > maxIdentifierLength || len(nickname) > maxIdentifierLength {
		log.Error().Str("login_id", req.LoginID).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		LoginID:      loginID,
		PasswordHash: passwordHash,
		Nickname:     nickname,
		Role:         models.RoleUser,
	}

	if nickname != "" {
		return s.createUser(ctx, user)
	}
	return s.createUserWithGeneratedNickname(ctx, user)
}

func (s *userService) createUser(ctx context.Context, user models.User) (models.User, error) {
	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login_id", user.LoginID).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// createUserWithGeneratedNickname draws nicknames until one is free. A
// nickname taken between the check and the insert is retried too.
func (s *userService) createUserWithGeneratedNickname(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	for attempt := 0; attempt < maxNicknameAttempts; attempt++ {
		candidate := s.nicknames.Generate()

		taken, err := s.userRepository.ExistsByNickname(ctx, candidate)
		if err != nil {
			log.Err(err).Msg("nickname lookup failed")
			return models.User{}, fmt.Errorf("nickname lookup failed: %w", err)
		}
		if taken {
			continue
		}

		user.Nickname = candidate
		created, err := s.userRepository.CreateUser(ctx, user)
		if errors.Is(err, store.ErrDuplicateNickname) {
			continue
		}
		if err != nil {
			log.Err(err).Str("login_id", user.LoginID).Msg("user creation ended with error")
			return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
		}

		return created, nil
	}

	log.Error().Int("attempts", maxNicknameAttempts).Msg("no free nickname found")
	return models.User{}, ErrNicknameGenerationFailed
}

// IsLoginIDAvailable reports whether no user holds loginID.
func (s *userService) IsLoginIDAvailable(ctx context.Context, loginID string) (bool, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return false, ErrInvalidDataProvided
	}

	exists, err := s.userRepository.ExistsByLoginID(ctx, loginID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login_id", loginID).Msg("login id lookup failed")
		return false, fmt.Errorf("login id lookup failed: %w", err)
	}

	return !exists, nil
}

// LoginUser authenticates loginID and issues a token pair.
//
// An unknown login ID still costs one hash comparison, and both it and a
// wrong password return the same ErrInvalidCredentials.
func (s *userService) LoginUser(ctx context.Context, loginID, password string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByLoginID(ctx, strings.TrimSpace(loginID))
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		s.hasher.Verify(password, s.dummyHash)
		log.Info().Str("login_id", loginID).Msg("login failed")
		return models.TokenPair{}, ErrInvalidCredentials
	case err != nil:
		log.Err(err).Str("login_id", loginID).Msg("user search by login id failed")
		return models.TokenPair{}, fmt.Errorf("user search by login id failed: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		log.Info().Str("login_id", loginID).Msg("login failed")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokenService.CreateAccessToken(user.LoginID, user.Nickname, user.Role)
	if err != nil {
		return models.TokenPair{}, err
	}

	refreshToken, err := s.tokenService.CreateRefreshToken(user.LoginID)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err = s.SaveRefreshToken(ctx, user.LoginID, refreshToken); err != nil {
		return models.TokenPair{}, err
	}

	log.Info().Str("login_id", user.LoginID).Msg("user logged in")
	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SaveRefreshToken stores the digest and expiry of refreshToken for
// loginID, replacing whatever was stored. Concurrent logins of one user
// therefore revoke each other's earlier refresh tokens.
func (s *userService) SaveRefreshToken(ctx context.Context, loginID string, refreshToken models.Token) error {
	digest := s.tokenService.Digest(refreshToken.SignedString)

	if err := s.userRepository.SaveRefreshToken(ctx, loginID, digest, refreshToken.ExpiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("login_id", loginID).Msg("saving refresh token failed")
		return fmt.Errorf("saving refresh token failed: %w", err)
	}

	return nil
}

// Refresh issues a new access token for loginID.
//
// Returns ErrInvalidToken unless refreshToken is a valid, unexpired refresh
// token for loginID that matches the stored one. The access token carries
// the stored nickname and role.
func (s *userService) Refresh(ctx context.Context, loginID, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if loginID == "" || refreshToken == "" {
		return models.TokenPair{}, ErrInvalidDataProvided
	}

	if !s.tokenService.ValidateRefreshToken(refreshToken, loginID) {
		log.Info().Str("login_id", loginID).Msg("refresh token rejected")
		return models.TokenPair{}, ErrInvalidToken
	}

	user, err := s.userRepository.FindUserByLoginID(ctx, loginID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.TokenPair{}, ErrInvalidToken
	case err != nil:
		log.Err(err).Str("login_id", loginID).Msg("user search by login id failed")
		return models.TokenPair{}, fmt.Errorf("user search by login id failed: %w", err)
	}

	if !user.HasActiveRefreshToken(s.tokenService.Digest(refreshToken), s.now()) {
		log.Info().Str("login_id", loginID).Msg("refresh token does not match stored token")
		return models.TokenPair{}, ErrInvalidToken
	}

	accessToken, err := s.tokenService.CreateAccessToken(user.LoginID, user.Nickname, user.Role)
	if err != nil {
		return models.TokenPair{}, err
	}
	pair := models.TokenPair{AccessToken: accessToken}

	if s.rotateRefreshTokens {
		newRefreshToken, err := s.tokenService.CreateRefreshToken(user.LoginID)
		if err != nil {
			return models.TokenPair{}, err
		}
		if err = s.SaveRefreshToken(ctx, user.LoginID, newRefreshToken); err != nil {
			return models.TokenPair{}, err
		}
		pair.RefreshToken = newRefreshToken
	}

	return pair, nil
}

// Logout clears the stored refresh token so it can no longer be used.
func (s *userService) Logout(ctx context.Context, loginID string) error {
	err := s.userRepository.ClearRefreshToken(ctx, loginID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("login_id", loginID).Msg("clearing refresh token failed")
		return fmt.Errorf("clearing refresh token failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("login_id", loginID).Msg("user logged out")
	return nil
}

// GetUser returns the account of loginID or ErrUserNotFound.
func (s *userService) GetUser(ctx context.Context, loginID string) (models.User, error) {
	user, err := s.userRepository.FindUserByLoginID(ctx, loginID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, ErrUserNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("login_id", loginID).Msg("user search by login id failed")
		return models.User{}, fmt.Errorf("user search by login id failed: %w", err)
	}

	return user, nil
}

// BootstrapAdmin creates the configured admin account when it does not
// exist yet. Without a configured admin login ID it does nothing. An
// existing account is left untouched, whatever its role.
//
// When no admin password is configured a random one is generated and
// printed once to stderr. The log only records that it was generated.
func (s *userService) BootstrapAdmin(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if s.adminLoginID == "" {
		return nil
	}

	exists, err := s.userRepository.ExistsByLoginID(ctx, s.adminLoginID)
	if err != nil {
		return fmt.Errorf("admin lookup failed: %w", err)
	}
	if exists {
		log.Debug().Str("login_id", s.adminLoginID).Msg("admin account already exists")
		return nil
	}

	password := s.adminPassword
	generated := password == ""
	if generated {
		if password, err = randomPassword(); err != nil {
			return fmt.Errorf("admin password generation failed: %w", err)
		}
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	admin := models.User{
		LoginID:      s.adminLoginID,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	created, err := s.createUserWithGeneratedNickname(ctx, admin)
	if errors.Is(err, store.ErrDuplicateLoginID) {
		// another instance created it first
		return nil
	}
	if err != nil {
		return err
	}

	log.Warn().
		Str("login_id", created.LoginID).
		Str("nickname", created.Nickname).
		Bool("password_generated", generated).
		Msg("admin account created")

	if generated {
		fmt.Fprintf(s.console, "admin account %q created with generated password: %s\n", created.LoginID, password)
	}

	return nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
