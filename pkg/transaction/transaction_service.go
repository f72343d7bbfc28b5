package transaction

import (
	"context"
	"fmt"

	"github.com/trackwise/trackwise/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Record(ctx context.Context, tx Transaction) (Transaction, error)
	List(ctx context.Context, kind Kind) ([]Transaction, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewServiceImpl(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Record(ctx context.Context, tx Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	tx.OwnerID = userId

	id, err := s.repo.Store(ctx, userId, tx)
	if err != nil {
		return Transaction{}, err
	}
	tx.ID = id

	return tx, nil
}

func (s *ServiceImpl) List(ctx context.Context, kind Kind) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByOwner(ctx, userId, kind)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("transaction not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
	}
	return deleted, nil
}
