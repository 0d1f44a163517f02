package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	"github.com/zzincafe/zzincafe-server/internal/dto"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/model"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	CountByName(ctx context.Context, name string) (int64, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	UpdateProfile(ctx context.Context, id uint, phone, image string) error
	DeleteAccount(ctx context.Context, id uint) error
}

// MailSender abstracts outbound mail so tests run without SMTP.
type MailSender interface {
	SendVerificationCode(to, code string, ttl time.Duration) error
	SendPasswordReset(to, link string, ttl time.Duration) error
}

// UserService implements registration, login and account management.
type UserService struct {
	users         UserStore
	tokens        *TokenService
	sessions      *SessionService
	mail          MailSender
	resetLinkBase string
	log           *zap.Logger
}

func NewUserService(users UserStore, tokens *TokenService, sessions *SessionService, mail MailSender, resetLinkBase string, log *zap.Logger) *UserService {
	return &UserService{
		users:         users,
		tokens:        tokens,
		sessions:      sessions,
		mail:          mail,
		resetLinkBase: resetLinkBase,
		log:           log,
	}
}

// Register creates an account. Uniqueness is probed first for a friendly
// error; the partial unique indexes stay authoritative, so a racing insert
// still surfaces as ALREADY_IN_USE. A fresh verification code is mailed, but
// mail delivery failure does not undo the registration.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if count, err := s.users.CountByEmail(ctx, req.Email); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	} else if count > 0 {
		return nil, apperrors.ErrEmailInUse
	}

	if count, err := s.users.CountByName(ctx, req.Name); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	} else if count > 0 {
		return nil, apperrors.ErrNameInUse
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.PhoneNumber,
		Password: hashed,
		Image:    req.Image,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The translated error does not say which index collided, so
			// re-probe to report the right field.
			if count, cerr := s.users.CountByName(ctx, req.Name); cerr == nil && count > 0 {
				return nil, apperrors.ErrNameInUse
			}
			return nil, apperrors.ErrEmailInUse
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if record, err := s.tokens.Issue(ctx, user.Email, constants.PurposeEmailVerify); err != nil {
		s.log.Warn("Failed to issue verification code after registration",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	} else if err := s.mail.SendVerificationCode(user.Email, record.Code, s.tokens.TTL()); err != nil {
		s.log.Warn("Failed to send verification email after registration",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// CheckEmailAvailable reports whether the email is free among live users.
func (s *UserService) CheckEmailAvailable(ctx context.Context, email string) error {
	count, err := s.users.CountByEmail(ctx, email)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return apperrors.ErrEmailInUse
	}
	return nil
}

// CheckNameAvailable reports whether the display name is free among live users.
func (s *UserService) CheckNameAvailable(ctx context.Context, name string) error {
	count, err := s.users.CountByName(ctx, name)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return apperrors.ErrNameInUse
	}
	return nil
}

// Login verifies the credentials and starts a session. The session id goes
// into a cookie by the handler; the body carries only the public profile.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (string, *dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !VerifyPassword(req.Password, user.Password) {
		return "", nil, apperrors.ErrWrongPassword
	}

	sessionID, err := s.sessions.Start(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info("User logged in", zap.Uint("user_id", user.ID))
	return sessionID, &dto.LoginResponse{User: dto.ProfileSummary{
		ID:    user.ID,
		Name:  user.Name,
		Image: user.Image,
	}}, nil
}

// Logout ends the session. An already-dead session logs out cleanly.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.End(ctx, sessionID)
}

// SendVerificationEmail issues a fresh EMAIL_VERIFY code and mails it.
// Earlier codes stay valid until they expire on their own.
func (s *UserService) SendVerificationEmail(ctx context.Context, email string) error {
	record, err := s.tokens.Issue(ctx, email, constants.PurposeEmailVerify)
	if err != nil {
		return err
	}
	if err := s.mail.SendVerificationCode(email, record.Code, s.tokens.TTL()); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// VerifyEmail checks a submitted code against the latest one issued for the
// email. The outcome is tri-state; an expired code is reported distinctly
// from a wrong one.
func (s *UserService) VerifyEmail(ctx context.Context, email, code string) (*dto.VerifyResult, error) {
	status, err := s.tokens.ValidateLatest(ctx, email, code, constants.PurposeEmailVerify, time.Now())
	if err != nil {
		return nil, err
	}

	switch status {
	case TokenValid:
		return &dto.VerifyResult{Status: "ok"}, nil
	case TokenExpired:
		return &dto.VerifyResult{Status: "expired"}, nil
	default:
		return &dto.VerifyResult{Status: "mismatch"}, nil
	}
}

// RequestPasswordReset issues a PASSWORD_RESET token and mails the reset
// link. The email must belong to a live account.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	record, err := s.tokens.Issue(ctx, user.Email, constants.PurposePasswordReset)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/%d/password/%s", s.resetLinkBase, user.ID, record.Code)
	if err := s.mail.SendPasswordReset(user.Email, link, s.tokens.TTL()); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// CompletePasswordReset changes the password behind a reset token. The token
// must be live and must have been issued for the target user's email, and
// the current password must still match. On success the caller's session is
// ended so the new password has to be used.
func (s *UserService) CompletePasswordReset(ctx context.Context, userID uint, token string, req dto.ChangePasswordRequest, sessionID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	record, status, err := s.tokens.ValidateCode(ctx, token, constants.PurposePasswordReset, time.Now())
	if err != nil {
		return err
	}
	switch status {
	case TokenExpired:
		return apperrors.ErrTokenExpired
	case TokenNotFound:
		return apperrors.ErrTokenInvalid
	}
	if record.Email != user.Email {
		return apperrors.ErrTokenInvalid
	}

	if !VerifyPassword(req.CurrentPassword, user.Password) {
		return apperrors.ErrWrongPassword
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.sessions.End(ctx, sessionID); err != nil {
		s.log.Warn("Failed to end session after password change",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	}

	s.log.Info("Password reset completed", zap.Uint("user_id", user.ID))
	return nil
}

// GetProfile returns the public profile for a user id.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile updates the mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := s.users.UpdateProfile(ctx, userID, req.PhoneNumber, req.Image); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return s.GetProfile(ctx, userID)
}

// DeleteAccount soft-deletes the user with their likes and reviews and ends
// the session.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint, sessionID string) error {
	if err := s.users.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.sessions.End(ctx, sessionID); err != nil {
		s.log.Warn("Failed to end session after account deletion",
			zap.Uint("user_id", userID),
			zap.Error(err))
	}
	return nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}
