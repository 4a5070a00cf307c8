package service

import (
	"context"
	"errors"

	"chat-journal-be/internal/dto"
	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/pkg/apperr"
	"chat-journal-be/internal/pkg/token"
	"chat-journal-be/internal/repository/specification"
	"chat-journal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	tokens     token.Service
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, tokens token.Service) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		tokens:     tokens,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("User already exists with this email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if req.Name != "" {
		name := req.Name
		user.Name = &name
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// Two registrations can pass the pre-check concurrently; the unique
		// constraint settles the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("User already exists with this email")
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	signedToken, err := s.tokens.Issue(user.Id)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: signedToken,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	// Unknown email and wrong password must be indistinguishable.
	if user == nil {
		return nil, apperr.Auth("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Auth("Invalid email or password")
	}

	signedToken, err := s.tokens.Issue(user.Id)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: signedToken,
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		// The token can outlive the user row.
		return nil, apperr.NotFound("User not found")
	}

	res := toUserResponse(user)
	return &res, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
