package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"musafir/config"
	"musafir/infras/jwt"
	"musafir/infras/otel/mocks"
	"musafir/internal/domains/auth/model/dto"
	"musafir/internal/domains/auth/service"
	userMocks "musafir/internal/domains/user/mocks"
	"musafir/internal/domains/user/model"
	"musafir/shared/constant"
	"musafir/shared/password"
)

func newAuthService(t *testing.T) (service.Auth, *userMocks.MockUser, jwt.JWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	jwtService := jwt.New(cfg)
	svc := service.New(mockRepo, jwtService, mocks.NewOtel())

	return svc, mockRepo, jwtService
}

func TestAuthService_Register(t *testing.T) {
	t.Run("new email registers and returns tokens", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, constant.RoleUser, user.Role)
				assert.NotEqual(t, "secret-password", user.Password)
				assert.NoError(t, password.Verify("secret-password", user.Password))
				return nil
			})

		res, err := svc.Register(context.Background(), dto.RegisterRequest{
			Name:     "Imran",
			Email:    "imran@example.com",
			Password: "secret-password",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.UserID)
		assert.Equal(t, "imran@example.com", res.Email)
		assert.NotEmpty(t, res.Tokens.AccessToken)
		assert.NotEmpty(t, res.Tokens.RefreshToken)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Name:     "Imran",
			Email:    "imran@example.com",
			Password: "secret-password",
		})

		assert.EqualError(t, err, "email is already registered")
	})

	t.Run("requested role is kept", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, "vendor", user.Role)
				return nil
			})

		res, err := svc.Register(context.Background(), dto.RegisterRequest{
			Name:     "Huda",
			Email:    "huda@example.com",
			Password: "secret-password",
			Role:     "vendor",
		})

		assert.NoError(t, err)
		assert.Equal(t, "vendor", res.Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("secret-password")
	assert.NoError(t, err)

	activeUser := model.User{
		ID:       "user-1",
		Name:     "Imran",
		Email:    "imran@example.com",
		Password: hashed,
		Role:     constant.RoleUser,
		Active:   true,
	}

	t.Run("valid credentials return tokens", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser, nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "imran@example.com",
			Password: "secret-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.UserID)
		assert.NotEmpty(t, res.Tokens.AccessToken)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "imran@example.com",
			Password: "wrong-password",
		})

		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("unknown email is rejected with the same message", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret-password",
		})

		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		inactive := activeUser
		inactive.Active = false

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "imran@example.com",
			Password: "secret-password",
		})

		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, errors.New("database error"))

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "imran@example.com",
			Password: "secret-password",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		svc, _, jwtService := newAuthService(t)

		pair, err := jwtService.GenerateTokenPair("user-1", "imran@example.com", constant.RoleUser)
		assert.NoError(t, err)

		tokens, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: pair.RefreshToken})

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("access tokens cannot refresh", func(t *testing.T) {
		svc, _, jwtService := newAuthService(t)

		pair, err := jwtService.GenerateTokenPair("user-1", "imran@example.com", constant.RoleUser)
		assert.NoError(t, err)

		_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: pair.AccessToken})

		assert.EqualError(t, err, "invalid refresh token")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		_, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "not-a-token"})

		assert.EqualError(t, err, "invalid refresh token")
	})
}
