package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dpstore-backend/internal/auth"
	"dpstore-backend/internal/broker"
	"dpstore-backend/internal/models"
	"dpstore-backend/internal/store"
	"dpstore-backend/internal/util"

	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

var (
	// ErrBadCredentials covers both unknown email and wrong password so the
	// response does not leak which one it was.
	ErrBadCredentials = errors.New("email atau password salah")

	// ErrGoogleAccount is returned when a password login hits an account that
	// was created through Google and has no local password.
	ErrGoogleAccount = errors.New("akun ini terdaftar via google")

	// ErrResetTokenInvalid is returned for unknown or expired reset tokens.
	ErrResetTokenInvalid = errors.New("token reset tidak valid atau kedaluwarsa")
)

// AccountService handles registration, login, profile and password flows for
// storefront users, plus the favorites list.
type AccountService struct {
	store       *store.Store
	events      *broker.NotificationPublisher
	frontendURL string
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(store *store.Store, events *broker.NotificationPublisher, frontendURL string) *AccountService {
	return &AccountService{
		store:       store,
		events:      events,
		frontendURL: frontendURL,
		logger:      util.GetLogger(),
	}
}

// Register creates a local account. Duplicate emails surface as
// store.ErrEmailUsed. The welcome mail is fire-and-forget.
func (s *AccountService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	ctx, span := util.StartSpan(ctx, "AccountService.Register")
	defer span.End()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, fullName, email, &hash)
	if err != nil {
		return nil, err
	}

	util.UsersRegisteredTotal.Inc()
	s.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	ev := &models.UserRegisteredEvent{
		BaseEvent:      broker.NewBaseEvent(models.EventTypeUserRegistered),
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
	}
	if err := s.events.PublishUserRegistered(ctx, ev); err != nil {
		s.logger.Error("Failed to publish UserRegistered event", zap.Error(err))
	}

	return user, nil
}

// Login verifies a local password login. Accounts created through Google have
// no password hash and get ErrGoogleAccount instead of a generic rejection.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	ctx, span := util.StartSpan(ctx, "AccountService.Login")
	defer span.End()

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.LoginFailuresTotal.Inc()
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		util.LoginFailuresTotal.Inc()
		return nil, ErrGoogleAccount
	}
	if !auth.CheckPassword(*user.PasswordHash, password) {
		util.LoginFailuresTotal.Inc()
		return nil, ErrBadCredentials
	}

	return user, nil
}

// FindOrCreateGoogleUser resolves a Google sign-in to a local account,
// creating a passwordless one on first login.
func (s *AccountService) FindOrCreateGoogleUser(ctx context.Context, profile *auth.GoogleProfile) (*models.User, error) {
	ctx, span := util.StartSpan(ctx, "AccountService.FindOrCreateGoogleUser")
	defer span.End()

	user, err := s.store.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	name := profile.Name
	if name == "" {
		name = profile.Email
	}
	user, err = s.store.CreateUser(ctx, name, profile.Email, nil)
	if err != nil {
		// Lost a race against a concurrent first login with the same email.
		if errors.Is(err, store.ErrEmailUsed) {
			return s.store.GetUserByEmail(ctx, profile.Email)
		}
		return nil, err
	}

	util.UsersRegisteredTotal.Inc()
	s.logger.Info("User registered via Google", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	ev := &models.UserRegisteredEvent{
		BaseEvent:      broker.NewBaseEvent(models.EventTypeUserRegistered),
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
	}
	if err := s.events.PublishUserRegistered(ctx, ev); err != nil {
		s.logger.Error("Failed to publish UserRegistered event", zap.Error(err))
	}

	return user, nil
}

// Profile returns the account behind an authenticated session.
func (s *AccountService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// UpdateProfile changes the display name.
func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, fullName string) (*models.User, error) {
	return s.store.UpdateFullName(ctx, userID, fullName)
}

// ChangePassword verifies the old password before storing the new hash, then
// sends the change notice.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	ctx, span := util.StartSpan(ctx, "AccountService.ChangePassword")
	defer span.End()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil {
		return ErrGoogleAccount
	}
	if !auth.CheckPassword(*user.PasswordHash, oldPassword) {
		return ErrBadCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.Int64("user_id", userID))

	ev := &models.PasswordChangedEvent{
		BaseEvent:      broker.NewBaseEvent(models.EventTypePasswordChanged),
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
	}
	if err := s.events.PublishPasswordChanged(ctx, ev); err != nil {
		s.logger.Error("Failed to publish PasswordChanged event", zap.Error(err))
	}
	return nil
}

// RequestPasswordReset stores a one-hour reset token and mails the link. An
// unknown email returns nil so the endpoint cannot be used to probe accounts.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, span := util.StartSpan(ctx, "AccountService.RequestPasswordReset")
	defer span.End()

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := auth.NewResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.store.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	ev := &models.PasswordResetLinkEvent{
		BaseEvent:      broker.NewBaseEvent(models.EventTypePasswordResetLink),
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
		ResetURL:       fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token),
	}
	if err := s.events.PublishPasswordResetLink(ctx, ev); err != nil {
		s.logger.Error("Failed to publish PasswordResetLink event", zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	ctx, span := util.StartSpan(ctx, "AccountService.ResetPassword")
	defer span.End()

	user, err := s.store.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.ResetPassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info("Password reset completed", zap.Int64("user_id", user.ID))

	ev := &models.PasswordResetDoneEvent{
		BaseEvent:      broker.NewBaseEvent(models.EventTypePasswordResetDone),
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
	}
	if err := s.events.PublishPasswordResetDone(ctx, ev); err != nil {
		s.logger.Error("Failed to publish PasswordResetDone event", zap.Error(err))
	}
	return nil
}

// --- Favorites ---

func (s *AccountService) ListFavorites(ctx context.Context, userID int64) ([]models.FavoriteGame, error) {
	return s.store.ListFavorites(ctx, userID)
}

func (s *AccountService) AddFavorite(ctx context.Context, userID, gameID int64) error {
	return s.store.AddFavorite(ctx, userID, gameID)
}

func (s *AccountService) RemoveFavorite(ctx context.Context, userID, gameID int64) error {
	return s.store.RemoveFavorite(ctx, userID, gameID)
}
