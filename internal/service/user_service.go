package service

import (
	"context"

	"github.com/daybookhq/journal-sync-service/global"
	"github.com/daybookhq/journal-sync-service/internal/domain"
	"github.com/daybookhq/journal-sync-service/internal/dto"
	"github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/code"
	"github.com/daybookhq/journal-sync-service/pkg/logger"
	"github.com/daybookhq/journal-sync-service/pkg/timex"
	"github.com/daybookhq/journal-sync-service/pkg/util"

	"go.uber.org/zap"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// Get 获取用户信息
	Get(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// GetDomain 获取用户领域模型（内部使用，解析时区等）
	GetDomain(ctx context.Context, uid int64) (*domain.User, error)
}

// userService 实现 UserService 接口
type userService struct {
	repo         domain.UserRepository
	tokenManager app.TokenManager
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(repo domain.UserRepository, tokenManager app.TokenManager, config *ServiceConfig) UserService {
	return &userService{
		repo:         repo,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (s *userService) domainToDTO(u *domain.User, token string) *dto.UserDTO {
	if u == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       u.UID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Token:     token,
		Timezone:  u.Timezone,
		CreatedAt: timex.Time(u.CreatedAt),
		UpdatedAt: timex.Time(u.UpdatedAt),
	}
}

func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error) {
	existing, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorUserAlreadyExists
	}

	hashed, err := util.HashPassword(params.Password)
	if err != nil {
		return nil, code.ErrorUserRegisterFailed.WithDetails(err.Error())
	}

	timezone := params.Timezone
	if timezone == "" {
		timezone = s.config.Timezone
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Email:    params.Email,
		Nickname: params.Nickname,
		Password: hashed,
		Timezone: timezone,
	})
	if err != nil {
		return nil, code.ErrorUserRegisterFailed.WithDetails(err.Error())
	}

	global.Logger.Info("user registered",
		zap.Int64(logger.FieldUID, user.UID),
		zap.String("email", user.Email))

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTO(user, token), nil
}

func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error) {
	user, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if user == nil {
		return nil, code.ErrorUserNotExist
	}

	if !util.CheckPassword(params.Password, user.Password) {
		return nil, code.ErrorUserPasswordWrong
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTO(user, token), nil
}

func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	user, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if user == nil {
		return code.ErrorUserNotExist
	}

	if !util.CheckPassword(params.OldPassword, user.Password) {
		return code.ErrorUserPasswordWrong
	}

	hashed, err := util.HashPassword(params.Password)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if err := s.repo.UpdatePassword(ctx, uid, hashed); err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	return nil
}

func (s *userService) Get(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if user == nil {
		return nil, code.ErrorUserNotExist
	}
	return s.domainToDTO(user, ""), nil
}

func (s *userService) GetDomain(ctx context.Context, uid int64) (*domain.User, error) {
	return s.repo.GetByUID(ctx, uid)
}
