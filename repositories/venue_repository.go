package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Danthemainman1/debate-scheduler/models"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	Create(ctx context.Context, exec SQLExecutor, venue *models.Venue) error
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresVenueRepository) Create(ctx context.Context, exec SQLExecutor, venue *models.Venue) error {
	query := `INSERT INTO venues (tournament_id, name, available)
              VALUES ($1, $2, $3)
              RETURNING id`
	err := r.executor(exec).QueryRowContext(ctx, query,
		venue.TournamentID, venue.Name, venue.Available,
	).Scan(&venue.ID)
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *postgresVenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `UPDATE venues SET name = $1, available = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, venue.Name, venue.Available, venue.ID)
	if err != nil {
		return fmt.Errorf("update venue %d: %w", venue.ID, err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	// Matches keep their venue reference via ON DELETE SET NULL, so removing
	// a venue never fails on schedule references.
	result, err := r.executor(exec).ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `SELECT id, tournament_id, name, available FROM venues WHERE id = $1`
	var venue models.Venue
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID, &venue.TournamentID, &venue.Name, &venue.Available,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}
	return &venue, nil
}

func (r *postgresVenueRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Venue, error) {
	query := `SELECT id, tournament_id, name, available
              FROM venues WHERE tournament_id = $1 ORDER BY id`
	rows, err := r.executor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list venues for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var venue models.Venue
		if err := rows.Scan(&venue.ID, &venue.TournamentID, &venue.Name, &venue.Available); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	return venues, rows.Err()
}
