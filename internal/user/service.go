package user

import (
	"context"
	"errors"

	"gomitas-be/internal/logger"
	"gomitas-be/internal/policy"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetByID(ctx context.Context, id uint) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed, policy.RoleCustomer)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		log.Error("failed to look up user", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login rejected, password mismatch", zap.Uint("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		return "", User{}, err
	}

	log.Info("user logged in", zap.Uint("user_id", u.ID))
	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}
