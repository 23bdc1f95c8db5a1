package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Danthemainman1/debate-scheduler/models"
)

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrMatchNotFound = errors.New("match not found")
)

// ScheduleRepository persists the generated rounds and matches of a
// tournament. Rounds are only ever written as a whole (generate, shuffle,
// import all replace the previous schedule); per-row updates are limited to
// the mutable fields.
type ScheduleRepository interface {
	ReplaceRounds(ctx context.Context, exec SQLExecutor, tournamentID int, rounds []models.Round) error
	ListRounds(ctx context.Context, tournamentID int) ([]models.Round, error)
	GetRoundByNumber(ctx context.Context, tournamentID, number int) (*models.Round, error)
	UpdateRound(ctx context.Context, round *models.Round) error
	GetMatch(ctx context.Context, tournamentID, matchID int) (*models.Match, error)
	UpdateMatch(ctx context.Context, match *models.Match) error
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

// ReplaceRounds swaps the tournament's schedule atomically: the old rounds
// (and their matches, via cascade) are deleted and the new ones inserted in
// a single transaction. A caller already inside a transaction passes it as
// exec; with a nil exec the method opens and commits its own.
func (r *postgresScheduleRepository) ReplaceRounds(ctx context.Context, exec SQLExecutor, tournamentID int, rounds []models.Round) error {
	if exec == nil {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("replace rounds: begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := r.replaceRounds(ctx, tx, tournamentID, rounds); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("replace rounds: commit: %w", err)
		}
		return nil
	}
	return r.replaceRounds(ctx, exec, tournamentID, rounds)
}

func (r *postgresScheduleRepository) replaceRounds(ctx context.Context, tx SQLExecutor, tournamentID int, rounds []models.Round) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM rounds WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("replace rounds: clear previous schedule: %w", err)
	}

	roundQuery := `INSERT INTO rounds (tournament_id, number, start_time, status)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id`
	matchQuery := `INSERT INTO matches
                   (round_id, number, team_a_id, team_b_id, venue_id, time_slot, status, winner_id, notes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id`

	for i := range rounds {
		round := &rounds[i]
		round.TournamentID = tournamentID
		err := tx.QueryRowContext(ctx, roundQuery,
			tournamentID, round.Number, round.StartTime, round.Status,
		).Scan(&round.ID)
		if err != nil {
			return fmt.Errorf("replace rounds: insert round %d: %w", round.Number, err)
		}

		for j := range round.Matches {
			match := &round.Matches[j]
			match.RoundID = round.ID
			err := tx.QueryRowContext(ctx, matchQuery,
				round.ID, match.Number, match.TeamAID, match.TeamBID,
				match.VenueID, match.TimeSlot, match.Status, match.WinnerID, match.Notes,
			).Scan(&match.ID)
			if err != nil {
				return fmt.Errorf("replace rounds: insert match %d of round %d: %w", match.Number, round.Number, err)
			}
		}
	}
	return nil
}

func (r *postgresScheduleRepository) ListRounds(ctx context.Context, tournamentID int) ([]models.Round, error) {
	roundQuery := `SELECT id, tournament_id, number, start_time, status
                   FROM rounds WHERE tournament_id = $1 ORDER BY number`
	rows, err := r.db.QueryContext(ctx, roundQuery, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list rounds for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var rounds []models.Round
	byID := make(map[int]*models.Round)
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(&round.ID, &round.TournamentID, &round.Number, &round.StartTime, &round.Status); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range rounds {
		byID[rounds[i].ID] = &rounds[i]
	}

	matchQuery := `SELECT m.id, m.round_id, m.number, m.team_a_id, m.team_b_id,
                          m.venue_id, m.time_slot, m.status, m.winner_id, m.notes
                   FROM matches m
                   JOIN rounds r ON r.id = m.round_id
                   WHERE r.tournament_id = $1
                   ORDER BY r.number, m.number`
	matchRows, err := r.db.QueryContext(ctx, matchQuery, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list matches for tournament %d: %w", tournamentID, err)
	}
	defer matchRows.Close()

	for matchRows.Next() {
		var match models.Match
		if err := matchRows.Scan(
			&match.ID, &match.RoundID, &match.Number, &match.TeamAID, &match.TeamBID,
			&match.VenueID, &match.TimeSlot, &match.Status, &match.WinnerID, &match.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if round, ok := byID[match.RoundID]; ok {
			round.Matches = append(round.Matches, match)
		}
	}
	return rounds, matchRows.Err()
}

func (r *postgresScheduleRepository) GetRoundByNumber(ctx context.Context, tournamentID, number int) (*models.Round, error) {
	query := `SELECT id, tournament_id, number, start_time, status
              FROM rounds WHERE tournament_id = $1 AND number = $2`
	var round models.Round
	err := r.db.QueryRowContext(ctx, query, tournamentID, number).Scan(
		&round.ID, &round.TournamentID, &round.Number, &round.StartTime, &round.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get round %d of tournament %d: %w", number, tournamentID, err)
	}
	return &round, nil
}

func (r *postgresScheduleRepository) UpdateRound(ctx context.Context, round *models.Round) error {
	query := `UPDATE rounds SET start_time = $1, status = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, round.StartTime, round.Status, round.ID)
	if err != nil {
		return fmt.Errorf("update round %d: %w", round.ID, err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresScheduleRepository) GetMatch(ctx context.Context, tournamentID, matchID int) (*models.Match, error) {
	query := `SELECT m.id, m.round_id, m.number, m.team_a_id, m.team_b_id,
                     m.venue_id, m.time_slot, m.status, m.winner_id, m.notes
              FROM matches m
              JOIN rounds r ON r.id = m.round_id
              WHERE m.id = $1 AND r.tournament_id = $2`
	var match models.Match
	err := r.db.QueryRowContext(ctx, query, matchID, tournamentID).Scan(
		&match.ID, &match.RoundID, &match.Number, &match.TeamAID, &match.TeamBID,
		&match.VenueID, &match.TimeSlot, &match.Status, &match.WinnerID, &match.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}
	return &match, nil
}

func (r *postgresScheduleRepository) UpdateMatch(ctx context.Context, match *models.Match) error {
	query := `UPDATE matches
              SET venue_id = $1, time_slot = $2, status = $3, winner_id = $4, notes = $5
              WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		match.VenueID, match.TimeSlot, match.Status, match.WinnerID, match.Notes, match.ID,
	)
	if err != nil {
		return fmt.Errorf("update match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
