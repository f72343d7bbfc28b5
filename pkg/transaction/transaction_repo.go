package transaction

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Repo is the store adapter for expense and income records. Analytics only
// uses the read side; the write side backs the CRUD endpoints.
type Repo interface {
	Store(ctx context.Context, userId int, tx Transaction) (int, error)
	// ListByOwner returns all of a user's records of the given kind, most
	// recent first.
	ListByOwner(ctx context.Context, userId int, kind Kind) ([]Transaction, error)
	Delete(ctx context.Context, userId int, transactionId int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r RepoImpl) Store(ctx context.Context, userId int, tx Transaction) (int, error) {
	query := `INSERT INTO transactions (
                    user_id,
                    kind,
                    amount_cents,
                    occurred_on,
                    occurred_at,
                    category
				) VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		userId,
		string(tx.Kind),
		tx.Amount.Cents,
		formatStoredDate(tx.Date),
		tx.TimeOfDay,
		tx.Category,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func (r RepoImpl) ListByOwner(ctx context.Context, userId int, kind Kind) ([]Transaction, error) {
	query := `SELECT id, amount_cents, occurred_on, occurred_at, category
				FROM transactions
				WHERE user_id = ? AND kind = ?
				ORDER BY occurred_on DESC, occurred_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userId, string(kind))
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		tx := Transaction{OwnerID: userId, Kind: kind}
		var occurredOn string
		if err := rows.Scan(
			&tx.ID,
			&tx.Amount.Cents,
			&occurredOn,
			&tx.TimeOfDay,
			&tx.Category,
		); err != nil {
			err := fmt.Errorf("could not scan transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := parseStoredDate(occurredOn)
		if err != nil {
			// A row with an unparsable date poisons the whole snapshot.
			// Callers get the failure, never a partial result.
			log.Errorf("transaction %d: %v", tx.ID, err)
			return nil, err
		}
		tx.Date = date
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return transactions, nil
}

func (r RepoImpl) Delete(ctx context.Context, userId int, transactionId int) (bool, error) {
	query := "DELETE FROM transactions WHERE id = ? AND user_id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, transactionId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
