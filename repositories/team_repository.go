package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Danthemainman1/debate-scheduler/models"
)

var (
	ErrTeamNotFound = errors.New("team not found")

	// ErrTeamReferenced is returned when deleting a team that existing
	// matches still point at. The schedule must be regenerated first.
	ErrTeamReferenced = errors.New("team is referenced by an existing schedule")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `INSERT INTO teams (tournament_id, name, affiliation)
              VALUES ($1, $2, $3)
              RETURNING id`
	err := r.executor(exec).QueryRowContext(ctx, query,
		team.TournamentID, team.Name, team.Affiliation,
	).Scan(&team.ID)
	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1, affiliation = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.Affiliation, team.ID)
	if err != nil {
		return fmt.Errorf("update team %d: %w", team.ID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.executor(exec).ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return mapConstraintError(fmt.Errorf("delete team %d: %w", id, err), nil, ErrTeamReferenced)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, tournament_id, name, affiliation FROM teams WHERE id = $1`
	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.TournamentID, &team.Name, &team.Affiliation,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get team %d: %w", id, err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error) {
	query := `SELECT id, tournament_id, name, affiliation
              FROM teams WHERE tournament_id = $1 ORDER BY id`
	rows, err := r.executor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.TournamentID, &team.Name, &team.Affiliation); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}
