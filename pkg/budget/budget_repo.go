package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trackwise/trackwise/pkg/category"
	"github.com/trackwise/trackwise/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Store stores a new Budget to the database
	Store(ctx context.Context, userId int, budget Budget) (int, error)
	GetAll(ctx context.Context, userId int) ([]Budget, error)
	// FindByCategory returns ErrBudgetNotFound when the user has no budget
	// for the category.
	FindByCategory(ctx context.Context, userId int, c category.Category) (Budget, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, budgetId int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r RepoImpl) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	query := `INSERT INTO budget (
                    user_id,
                    category,
                    limit_cents,
                    time_frame
				) VALUES (?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		userId,
		string(budget.Category),
		budget.Limit.Cents,
		string(budget.TimeFrame),
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

func (r RepoImpl) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	query := `SELECT id, category, limit_cents, time_frame
				FROM budget WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget := Budget{OwnerID: userId}
		if err := rows.Scan(
			&budget.ID,
			&budget.Category,
			&budget.Limit.Cents,
			&budget.TimeFrame,
		); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return budgets, nil
}

func (r RepoImpl) FindByCategory(ctx context.Context, userId int, c category.Category) (Budget, error) {
	query := `SELECT id, limit_cents, time_frame
				FROM budget WHERE user_id = ? AND category = ?`
	row := r.db.QueryRowContext(ctx, query, userId, string(c))

	budget := Budget{OwnerID: userId, Category: c}
	var limitCents int64
	if err := row.Scan(&budget.ID, &limitCents, &budget.TimeFrame); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Budget{}, ErrBudgetNotFound
		}
		err := fmt.Errorf("could not scan budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	budget.Limit = transaction.Money{Cents: limitCents}

	return budget, nil
}

func (r RepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET
                  category = ?,
                  limit_cents = ?,
                  time_frame = ?
              WHERE id = ? AND user_id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		string(budget.Category),
		budget.Limit.Cents,
		string(budget.TimeFrame),
		budget.ID,
		userId,
	)
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

func (r RepoImpl) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	query := "DELETE FROM budget WHERE id = ? AND user_id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, budgetId, userId)
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
