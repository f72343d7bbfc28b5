package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrEmailTaken = errors.New("email already registered")

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	Register(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	DeleteUser(ctx context.Context, id int) error
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

// Register creates a new user. Emails are unique; a fresh UID is assigned
// when the caller did not bring one.
func (u *UserServiceImpl) Register(ctx context.Context, user User) (User, error) {
	available, err := u.repo.IsEmailAvailable(ctx, user.Email)
	if err != nil {
		return User{}, err
	}
	if !available {
		return User{}, ErrEmailTaken
	}

	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) DeleteUser(ctx context.Context, id int) error {
	return u.repo.DeleteUser(ctx, id)
}
