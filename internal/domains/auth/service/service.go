package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"musafir/infras/jwt"
	"musafir/infras/otel"
	"musafir/internal/domains/auth/model/dto"
	userModel "musafir/internal/domains/user/model"
	userRepo "musafir/internal/domains/user/repository"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
	"musafir/shared/password"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*jwt.TokenPair, error)
}

type serviceImpl struct {
	repo userRepo.User
	jwt  jwt.JWT
	otel otel.Otel
}

func New(repo userRepo.User, jwtService jwt.JWT, otel otel.Otel) Auth {
	return &serviceImpl{
		repo: repo,
		jwt:  jwtService,
		otel: otel,
	}
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Value:    email,
				Operator: gDto.FilterOperatorEq,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exist {
		return res, failure.Conflict("email is already registered") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hashed)

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromModel(user, tokens)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to verify password: %w", err)
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromModel(user, tokens)

	return res, nil
}

func (s *serviceImpl) Refresh(ctx context.Context, req dto.RefreshRequest) (*jwt.TokenPair, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Refresh")
	defer scope.End()

	tokens, err := s.jwt.RefreshTokens(req.RefreshToken)
	if err != nil {
		scope.TraceError(err)

		return nil, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	return tokens, nil
}
