package usecase

import (
	"context"
	"errors"
	"time"

	"syntora/dto"
	"syntora/model"
	"syntora/services"
	"syntora/utils"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// UserStore is the persistence surface account workflows run against.
type UserStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUser(ctx context.Context, userID string) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	CountByUsername(ctx context.Context, username string) (int, error)
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (svc *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	count, err := svc.store.CountByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		utils.TrackAuthAttempt("failure", "register")
		return nil, ErrUsernameTaken
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateUserID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	if err := svc.store.AddUser(ctx, user); err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "register")
	return user, nil
}

// Authenticate checks credentials without revealing whether the username
// or the password was wrong.
func (svc *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := svc.store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		return nil, ErrInvalidCredentials
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		utils.TrackAuthAttempt("failure", "login")
		return nil, ErrInvalidCredentials
	}

	utils.TrackAuthAttempt("success", "login")
	return user, nil
}

func (svc *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return svc.store.FindUser(ctx, userID)
}
