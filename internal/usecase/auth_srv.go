package usecase

import (
	"context"
	"fmt"
	"time"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"
	"spice-store/internal/dto/response"
	"spice-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, rawToken string, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   MailSender
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail MailSender,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	// 2. Check email is not taken yet
	existingUser, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 4. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         entity.RoleCustomer,
	}

	// 5. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 6. Welcome email (async, best-effort)
	go s.sendWelcomeEmail(user)

	// 7. Issue token
	token, err := utils.GenerateToken(s.config.JWT, user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return response.AuthToResponse(user, token), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to find user")
	}

	// 3. Uniform rejection: same error for unknown email and wrong password
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 4. Issue token
	token, err := utils.GenerateToken(s.config.JWT, user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return response.AuthToResponse(user, token), nil
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint cannot be used to enumerate accounts.
func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Forgot password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for password reset", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to process request")
	}
	if user == nil {
		// Quietly done
		return nil
	}

	// Generate raw token, store only its hash
	rawToken, err := utils.GenerateResetToken()
	if err != nil {
		s.log.Error("Failed to generate reset token", zap.Error(err))
		return fmt.Errorf("failed to process request")
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.repo.User.SetResetToken(ctx, user.ID, utils.HashToken(rawToken), expiresAt); err != nil {
		s.log.Error("Failed to store reset token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to process request")
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.config.App.FrontendURL, rawToken)

	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	if err := s.mail.SendPasswordReset(user.Email, name, resetURL); err != nil {
		// Token is stored either way; the caller still gets success
		s.log.Warn("Failed to send reset email", zap.Error(err), zap.String("email", user.Email))
	}

	s.log.Info("Password reset token issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expiresAt))

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, rawToken string, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reset password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Hash the presented token and look for a live match
	user, err := s.repo.User.FindByValidResetToken(ctx, utils.HashToken(rawToken))
	if err != nil {
		s.log.Error("Failed to look up reset token", zap.Error(err))
		return fmt.Errorf("failed to process request")
	}
	if user == nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	// Overwrite password and clear the token in one statement
	if err := s.repo.User.UpdatePasswordAndClearToken(ctx, user.ID, hashedPassword); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to reset password")
	}

	// Confirmation email must not roll back the password change
	go s.sendPasswordChangedEmail(user)

	s.log.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) sendWelcomeEmail(user *entity.User) {
	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	if err := s.mail.SendWelcome(user.Email, name); err != nil {
		s.log.Warn("Failed to send welcome email", zap.Error(err), zap.String("email", user.Email))
	}
}

func (s *authService) sendPasswordChangedEmail(user *entity.User) {
	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	if err := s.mail.SendPasswordChanged(user.Email, name); err != nil {
		s.log.Warn("Failed to send password changed email", zap.Error(err), zap.String("email", user.Email))
	}
}
