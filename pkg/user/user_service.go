package user

import (
	"context"
	"errors"
	"strings"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/metrics"
	"bloodbank/pkg/access"
	"bloodbank/pkg/jwt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, p domain.Principal) (domain.UserResponse, error)
		CreateAdmin(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		validate       *validator.Validate
		metrics        *metrics.Metrics
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	validate *validator.Validate,
	m *metrics.Metrics,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		validate:       validate,
		metrics:        m,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	user, err := s.createUser(ctx, req, domain.RoleDonor)
	if err != nil {
		return domain.UserResponse{}, err
	}
	s.metrics.IncUserRegistered()
	return toUserResponse(user, false), nil
}

// CreateAdmin is reachable only from the command line and the seeder.
func (s *userService) CreateAdmin(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	user, err := s.createUser(ctx, req, domain.RoleAdmin)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user, false), nil
}

func (s *userService) createUser(ctx context.Context, req domain.RegisterRequest, role string) (entities.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Struct(req); err != nil {
		return entities.User{}, domain.NewValidationError(err)
	}

	taken, err := s.userRepository.CheckUsername(ctx, req.Username)
	if err != nil {
		return entities.User{}, err
	}
	if taken {
		return entities.User{}, domain.ErrUsernameTaken
	}

	taken, err = s.userRepository.CheckEmail(ctx, req.Email)
	if err != nil {
		return entities.User{}, err
	}
	if taken {
		return entities.User{}, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, err
	}

	return s.userRepository.CreateUser(ctx, entities.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
	})
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.LoginResponse{}, domain.NewValidationError(err)
	}

	user, err := s.userRepository.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	hasProfile, err := s.userRepository.HasDonorProfile(ctx, user.ID.String())
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		Role:  user.Role,
		User:  toUserResponse(user, hasProfile),
	}, nil
}

func (s *userService) Me(ctx context.Context, p domain.Principal) (domain.UserResponse, error) {
	if err := access.Check(p, access.Authenticated); err != nil {
		return domain.UserResponse{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, p.UserID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	hasProfile, err := s.userRepository.HasDonorProfile(ctx, p.UserID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user, hasProfile), nil
}

func toUserResponse(user entities.User, hasProfile bool) domain.UserResponse {
	return domain.UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		HasProfile:  hasProfile,
		CreatedAt:   user.CreatedAt,
	}
}
