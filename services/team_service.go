package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Danthemainman1/debate-scheduler/models"
	"github.com/Danthemainman1/debate-scheduler/repositories"
)

type TeamInput struct {
	Name        string  `json:"name"`
	Affiliation *string `json:"affiliation,omitempty"`
}

type TeamService interface {
	Add(ctx context.Context, callerID, tournamentID int, input TeamInput) (*models.Team, error)
	Update(ctx context.Context, callerID, tournamentID, teamID int, input TeamInput) (*models.Team, error)
	Remove(ctx context.Context, callerID, tournamentID, teamID int) error
	List(ctx context.Context, tournamentID int) ([]models.Team, error)
}

type teamService struct {
	teams       repositories.TeamRepository
	tournaments TournamentService
}

func NewTeamService(teams repositories.TeamRepository, tournaments TournamentService) TeamService {
	return &teamService{teams: teams, tournaments: tournaments}
}

func (s *teamService) Add(ctx context.Context, callerID, tournamentID int, input TeamInput) (*models.Team, error) {
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		TournamentID: tournamentID,
		Name:         input.Name,
		Affiliation:  input.Affiliation,
	}
	if err := s.teams.Create(ctx, nil, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Update touches display fields only; a team's identity inside an existing
// schedule never changes.
func (s *teamService) Update(ctx context.Context, callerID, tournamentID, teamID int, input TeamInput) (*models.Team, error) {
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	team, err := s.getInTournament(ctx, tournamentID, teamID)
	if err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	team.Name = input.Name
	team.Affiliation = input.Affiliation
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Remove rejects deleting a team the current schedule still references; the
// coach must regenerate (or discard) the schedule first.
func (s *teamService) Remove(ctx context.Context, callerID, tournamentID, teamID int) error {
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return err
	}
	if _, err := s.getInTournament(ctx, tournamentID, teamID); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, nil, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamReferenced) {
			return ErrTeamInUse
		}
		return err
	}
	return nil
}

func (s *teamService) List(ctx context.Context, tournamentID int) ([]models.Team, error) {
	return s.teams.ListByTournament(ctx, nil, tournamentID)
}

func (s *teamService) getInTournament(ctx context.Context, tournamentID, teamID int) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.TournamentID != tournamentID {
		return nil, ErrTeamNotFound
	}
	return team, nil
}
