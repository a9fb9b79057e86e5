package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nclex_keys/internal/model"
	"nclex_keys/internal/notify"
	"nclex_keys/internal/repository"
	"nclex_keys/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("invalid or already used enrollment token")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", utils.MinPasswordLength)
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.RegistrationResult, error)
	Login(ctx context.Context, email, password string) (*model.AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	EnsureAdmin(ctx context.Context, email, password, fullName string) (*model.User, error)
	CreateInstructor(ctx context.Context, req model.CreateInstructorRequest) (*model.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	tokenRepo      repository.TokenRepository
	programRepo    repository.ProgramRepository
	enrollmentRepo repository.EnrollmentRepository
	jwtUtil        *utils.JWTUtil
	mailer         notify.Mailer
	whatsAppNumber string
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	programRepo repository.ProgramRepository,
	enrollmentRepo repository.EnrollmentRepository,
	jwtUtil *utils.JWTUtil,
	mailer notify.Mailer,
	whatsAppNumber string,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
		programRepo:    programRepo,
		enrollmentRepo: enrollmentRepo,
		jwtUtil:        jwtUtil,
		mailer:         mailer,
		whatsAppNumber: whatsAppNumber,
		logger:         logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(password, confirm string) error {
	if len(password) < utils.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Register creates a student account by redeeming an enrollment token
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.RegistrationResult, error) {
	if err := checkPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}
	tokenCode := strings.TrimSpace(req.EnrollmentToken)

	// Early rejection only, the redemption below is what guarantees single use
	token, err := s.tokenRepo.FindByToken(ctx, tokenCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up enrollment token: %w", err)
	}
	if !token.Redeemable() {
		return nil, ErrTokenInvalid
	}
	program, err := s.programRepo.FindByID(ctx, token.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up program: %w", err)
	}
	if program == nil || !program.IsActive {
		return nil, ErrProgramUnavailable
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	phone := strings.TrimSpace(req.PhoneNumber)
	user := &model.User{
		Email:        normalizeEmail(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         model.RoleStudent,
		PhoneNumber:  &phone,
		PasswordHash: hashedPassword,
	}

	enrollment, err := s.enrollmentRepo.RegisterWithToken(ctx, user, tokenCode)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrTokenUnavailable):
			return nil, ErrTokenInvalid
		case errors.Is(err, repository.ErrProgramInactive):
			return nil, ErrProgramUnavailable
		}
		return nil, fmt.Errorf("failed to register with token: %w", err)
	}
	enrollment.Program = program

	s.logger.Info("Student registered",
		zap.String("user_id", user.ID.String()),
		zap.String("enrollment_id", enrollment.ID.String()),
		zap.String("program", program.Name),
	)

	waURL := utils.WhatsAppLink(s.whatsAppNumber, utils.PaymentMessage(program.Name))
	s.mailer.SendMessages(notify.WelcomeMessage(user, program.Name, waURL))

	sessionToken, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("User created, but failed to generate token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return &model.RegistrationResult{
		User:       user,
		Enrollment: enrollment,
		Token:      sessionToken,
		RedirectTo: redirectFor(user.Role, enrollment),
	}, nil
}

// Login authenticates a user and returns a session token with the landing page
func (s *authService) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	var latest *model.Enrollment
	if user.Role == model.RoleStudent {
		latest, err = s.enrollmentRepo.FindLatestByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load enrollment: %w", err)
		}
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResult{User: user, Token: token, RedirectTo: redirectFor(user.Role, latest)}, nil
}

// Me returns the profile of the signed-in user
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account, or resets it if it already exists
func (s *authService) EnsureAdmin(ctx context.Context, email, password, fullName string) (*model.User, error) {
	if len(password) < utils.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        normalizeEmail(email),
		FullName:     fullName,
		Role:         model.RoleAdmin,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.UpsertAdmin(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to ensure admin: %w", err)
	}
	s.logger.Info("Admin account ensured", zap.String("email", user.Email), zap.String("user_id", user.ID.String()))
	return user, nil
}

// CreateInstructor opens an instructor account
func (s *authService) CreateInstructor(ctx context.Context, req model.CreateInstructorRequest) (*model.User, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        normalizeEmail(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         model.RoleInstructor,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create instructor: %w", err)
	}
	s.logger.Info("Instructor created", zap.String("user_id", user.ID.String()))
	return user, nil
}
