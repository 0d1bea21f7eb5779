package user

import (
	"context"
	"errors"
	"log"

	"recipe-crm/domain"
	"recipe-crm/entities"
	"recipe-crm/internal/utils/mailing"
	"recipe-crm/pkg/jwt"
	"recipe-crm/pkg/restaurant"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.ProfileResponse, error)
	}

	userService struct {
		userRepository       UserRepository
		restaurantRepository restaurant.RestaurantRepository
		jwtService           jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, restaurantRepository restaurant.RestaurantRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:       userRepository,
		restaurantRepository: restaurantRepository,
		jwtService:           jwtService,
	}
}

// Register creates the user, get-or-creates its restaurant and associates
// them. The first registrant of a restaurant gets the admin role.
func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	exists, err := s.userRepository.CheckUsernameExists(ctx, req.Username)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		Role:     domain.RoleAdmin,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	rest, err := s.restaurantRepository.GetOrCreateRestaurant(ctx, req.RestaurantName)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if err := s.restaurantRepository.AddUser(ctx, rest.ID.String(), user.ID.String()); err != nil {
		return domain.RegisterResponse{}, err
	}

	if user.Email != "" {
		if err := mailing.SendWelcomeMail(user.Email, user.Username, rest.Name); err != nil {
			log.Printf("failed to send welcome mail to %s: %v", user.Email, err)
		}
	}

	return domain.RegisterResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Restaurant: domain.RestaurantSummary{
			ID:       rest.ID.String(),
			Name:     rest.Name,
			ImageURL: rest.ImageURL,
		},
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return domain.LoginResponse{
		AccessToken: token,
		Role:        user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.ProfileResponse{}, err
	}

	profile := domain.ProfileResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}
	if len(user.Restaurants) > 0 {
		first := user.Restaurants[0]
		profile.Restaurant = &domain.RestaurantSummary{
			ID:       first.ID.String(),
			Name:     first.Name,
			ImageURL: first.ImageURL,
		}
	}
	return profile, nil
}
