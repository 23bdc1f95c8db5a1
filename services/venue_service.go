package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Danthemainman1/debate-scheduler/models"
	"github.com/Danthemainman1/debate-scheduler/repositories"
)

type VenueInput struct {
	Name      string `json:"name"`
	Available *bool  `json:"available,omitempty"`
}

type VenueService interface {
	Add(ctx context.Context, callerID, tournamentID int, input VenueInput) (*models.Venue, error)
	Update(ctx context.Context, callerID, tournamentID, venueID int, input VenueInput) (*models.Venue, error)
	Remove(ctx context.Context, callerID, tournamentID, venueID int) error
	List(ctx context.Context, tournamentID int) ([]models.Venue, error)
}

type venueService struct {
	venues      repositories.VenueRepository
	tournaments TournamentService
}

func NewVenueService(venues repositories.VenueRepository, tournaments TournamentService) VenueService {
	return &venueService{venues: venues, tournaments: tournaments}
}

func (s *venueService) Add(ctx context.Context, callerID, tournamentID int, input VenueInput) (*models.Venue, error) {
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrVenueNameRequired
	}

	venue := &models.Venue{
		TournamentID: tournamentID,
		Name:         input.Name,
		Available:    true,
	}
	if input.Available != nil {
		venue.Available = *input.Available
	}
	if err := s.venues.Create(ctx, nil, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// Update covers both renaming and the availability toggle. Availability is
// not applied retroactively to matches that already hold the venue.
func (s *venueService) Update(ctx context.Context, callerID, tournamentID, venueID int, input VenueInput) (*models.Venue, error) {
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	venue, err := s.getInTournament(ctx, tournamentID, venueID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		venue.Name = name
	}
	if input.Available != nil {
		venue.Available = *input.Available
	}
	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *venueService) Remove(ctx context.Context, callerID, tournamentID, venueID int) error {
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return err
	}
	if _, err := s.getInTournament(ctx, tournamentID, venueID); err != nil {
		return err
	}
	return s.venues.Delete(ctx, nil, venueID)
}

func (s *venueService) List(ctx context.Context, tournamentID int) ([]models.Venue, error) {
	return s.venues.ListByTournament(ctx, nil, tournamentID)
}

func (s *venueService) getInTournament(ctx context.Context, tournamentID, venueID int) (*models.Venue, error) {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if venue.TournamentID != tournamentID {
		return nil, ErrVenueNotFound
	}
	return venue, nil
}
