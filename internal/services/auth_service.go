package services

import (
	"context"
	"strings"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"
	"fleetdesk/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *validators.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *validators.LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, logger *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, request *validators.RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:      email,
		Password:   string(hashed),
		FirstName:  request.FirstName,
		LastName:   request.LastName,
		Department: request.Department,
		Role:       models.RoleEmployee,
		Enabled:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).WithField("email", user.Email).Info("User registered")

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, request *validators.LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, models.NewAuthorizationError("invalid credentials")
	}

	if !user.Enabled {
		return nil, models.NewAuthorizationError("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, models.NewAuthorizationError("invalid credentials")
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_login_at": time.Now()})
	s.logger.WithUserID(user.ID).Info("User logged in")

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	pair, err := utils.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, models.NewAuthorizationError("invalid refresh token")
	}
	return pair, nil
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
