package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studenthive/student-keeper/internal/config"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/store"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, profile
// maintenance and the JWT token lifecycle, using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// bcryptCost is the work factor applied when hashing passwords.
	bcryptCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It hashes the password with bcrypt at the configured cost and delegates
// persistence to the UserRepository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if a required field is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUserAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Email == "" || request.Password == "" {
		log.Error().Str("username", request.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(request.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error: hashing password")
		return models.User{}, fmt.Errorf("password hashing ended with error: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by username and compares the supplied password
// against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Username or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Password == "" {
		log.Error().Str("username", request.Username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, request.Username)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(request.Password)); err != nil {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// GetProfile returns the account record for userID.
func (a *authService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// UpdateProfile changes the username and email of the account.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, request models.ProfileUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Email == "" {
		log.Error().Int64("userID", userID).Msg("invalid profile data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	updatedUser, err := a.userRepository.UpdateProfile(ctx, models.User{
		UserID:   userID,
		Username: request.Username,
		Email:    request.Email,
	})
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updatedUser, nil
}

// ChangePassword verifies the current password and stores a fresh bcrypt
// hash of the new one.
//
// Returns ErrWrongPassword when the current password does not match the
// stored hash.
func (a *authService) ChangePassword(ctx context.Context, userID int64, request models.PasswordChangeRequest) error {
	log := logger.FromContext(ctx)

	if request.CurrentPassword == "" || request.NewPassword == "" {
		log.Error().Int64("userID", userID).Msg("invalid password data provided")
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.CurrentPassword)); err != nil {
		log.Error().Int64("userID", userID).Msg("wrong current password")
		return ErrWrongPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("error: hashing new password")
		return fmt.Errorf("password hashing ended with error: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		log.Err(err).Int64("userID", userID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}
