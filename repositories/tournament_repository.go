package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Danthemainman1/debate-scheduler/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Tournament, error)
	ListIDs(ctx context.Context) ([]int, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, owner_id, name, date, format_name,
       round_duration_seconds, break_duration_seconds, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	if tournament.CreatedAt.IsZero() {
		tournament.CreatedAt = time.Now()
	}
	query := `INSERT INTO tournaments
              (owner_id, name, date, format_name, round_duration_seconds, break_duration_seconds, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		tournament.OwnerID, tournament.Name, tournament.Date,
		tournament.Format.Name, tournament.Format.RoundDurationSeconds, tournament.Format.BreakDurationSeconds,
		tournament.CreatedAt,
	).Scan(&tournament.ID)
	if err != nil {
		return fmt.Errorf("create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	var t models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.Date,
		&t.Format.Name, &t.Format.RoundDurationSeconds, &t.Format.BreakDurationSeconds,
		&t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tournament %d: %w", id, err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tournaments for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Name, &t.Date,
			&t.Format.Name, &t.Format.RoundDurationSeconds, &t.Format.BreakDurationSeconds,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM tournaments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tournament ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tournament id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `UPDATE tournaments
              SET name = $1, date = $2, format_name = $3, round_duration_seconds = $4, break_duration_seconds = $5
              WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		tournament.Name, tournament.Date,
		tournament.Format.Name, tournament.Format.RoundDurationSeconds, tournament.Format.BreakDurationSeconds,
		tournament.ID,
	)
	if err != nil {
		return fmt.Errorf("update tournament %d: %w", tournament.ID, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	// Rounds, matches, teams and venues cascade.
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
