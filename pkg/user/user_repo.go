package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	IsEmailAvailable(ctx context.Context, email string) (bool, error)
	DeleteUser(ctx context.Context, id int) error
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, name, email) VALUES (?, ?, ?)`
	result, err := u.db.ExecContext(ctx, query, user.Uid, user.Name, user.Email)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(id), nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, name, email FROM users WHERE id = ?`
	var user User
	err := u.db.QueryRowContext(ctx, query, id).Scan(&user.Id, &user.Uid, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		log.Errorf("failed to get user %d: %v", id, err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, name, email FROM users WHERE uid = ?`
	var user User
	err := u.db.QueryRowContext(ctx, query, uid).Scan(&user.Id, &user.Uid, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		log.Errorf("failed to get user by uid %s: %v", uid, err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	query := `SELECT COUNT(1) FROM users WHERE email = ?`
	var count int
	if err := u.db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		log.Errorf("failed to check email availability: %v", err)
		return false, err
	}
	return count == 0, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = ?`
	if _, err := u.db.ExecContext(ctx, query, id); err != nil {
		log.Errorf("failed to delete user %d: %v", id, err)
		return err
	}
	return nil
}
