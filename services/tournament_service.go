package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Danthemainman1/debate-scheduler/models"
	"github.com/Danthemainman1/debate-scheduler/repositories"
)

type TournamentCreateInput struct {
	Name   string              `json:"name"`
	Date   *string             `json:"date,omitempty"`
	Format models.FormatPreset `json:"format"`
}

type TournamentService interface {
	Create(ctx context.Context, ownerID int, input TournamentCreateInput) (*models.Tournament, error)
	List(ctx context.Context, ownerID int) ([]models.Tournament, error)
	Delete(ctx context.Context, callerID, tournamentID int) error

	// Get loads the bare tournament without linked entities.
	Get(ctx context.Context, tournamentID int) (*models.Tournament, error)

	// GetOwned loads the bare tournament and enforces ownership. Services
	// that mutate schedule state go through this before anything else.
	GetOwned(ctx context.Context, callerID, tournamentID int) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) Create(ctx context.Context, ownerID int, input TournamentCreateInput) (*models.Tournament, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	format := input.Format
	if format.RoundDurationSeconds <= 0 || format.BreakDurationSeconds < 0 {
		format = models.DefaultFormat()
	}

	tournament := &models.Tournament{
		OwnerID: ownerID,
		Name:    input.Name,
		Date:    input.Date,
		Format:  format,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, ownerID int) ([]models.Tournament, error) {
	return s.tournamentRepo.ListByOwner(ctx, ownerID)
}

func (s *tournamentService) Delete(ctx context.Context, callerID, tournamentID int) error {
	if _, err := s.GetOwned(ctx, callerID, tournamentID); err != nil {
		return err
	}
	return s.tournamentRepo.Delete(ctx, tournamentID)
}

func (s *tournamentService) Get(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) GetOwned(ctx context.Context, callerID, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OwnerID != callerID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}
