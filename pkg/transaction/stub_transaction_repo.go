package transaction

import (
	"context"
	"sort"
)

type StubRepo struct {
	nextId int
	data   map[int]Transaction
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Transaction{}}
}

func (s *StubRepo) Store(ctx context.Context, userId int, tx Transaction) (int, error) {
	s.nextId++
	tx.ID = s.nextId
	tx.OwnerID = userId
	s.data[s.nextId] = tx
	return s.nextId, nil
}

func (s *StubRepo) ListByOwner(ctx context.Context, userId int, kind Kind) ([]Transaction, error) {
	var transactions []Transaction
	for _, tx := range s.data {
		if tx.OwnerID == userId && tx.Kind == kind {
			transactions = append(transactions, tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].MoreRecentThan(transactions[j])
	})
	return transactions, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, transactionId int) (bool, error) {
	tx, ok := s.data[transactionId]
	if !ok || tx.OwnerID != userId {
		return false, nil
	}
	delete(s.data, transactionId)
	return true, nil
}

func (s *StubRepo) Reset() {
	s.nextId = 0
	s.data = map[int]Transaction{}
}
