package service

import (
	"errors"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Cfg: cfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: *user}, nil
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin editor"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.UserRole(req.Role),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
