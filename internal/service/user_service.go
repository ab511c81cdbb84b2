package service

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/model"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/redis"
	"Splintr/internal/pkg/security"
	"Splintr/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenDTO, error) {
	exist, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "username", req.Username, "err", err)
		return nil, UnExpectedError
	}
	if exist != nil {
		return nil, ErrUserExist
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		log.ErrorContext(ctx, "密码加密失败", "err", err)
		return nil, UnExpectedError
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Nickname:     nickname,
		AvatarURL:    consts.DefaultAvatarURL,
		Role:         "USER",
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		log.ErrorContext(ctx, "创建用户失败", "username", req.Username, "err", err)
		return nil, UnExpectedError
	}

	return s.issueToken(ctx, user)
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "username", req.Username, "err", err)
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err := security.CheckPasswordHash(req.Password, user.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return s.issueToken(ctx, user)
}

// Logout 吊销当前 Token：签名写入黑名单直至原有效期结束
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return UnauthorizedError
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := redis.SetWithExpiration(ctx, consts.TokenRevokedKey+signature, "1", ttl); err != nil {
		log.ErrorContext(ctx, "写入Token黑名单失败", "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

func (s *userServiceImpl) issueToken(ctx context.Context, user *model.User) (*dto.TokenDTO, error) {
	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.ErrorContext(ctx, "签发Token失败", "user_id", user.ID, "err", err)
		return nil, UnExpectedError
	}
	return &dto.TokenDTO{Token: token, User: toUserDTO(user)}, nil
}
