package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/Danthemainman1/debate-scheduler/models"
	"github.com/Danthemainman1/debate-scheduler/repositories"
	"github.com/Danthemainman1/debate-scheduler/scheduling"
	"golang.org/x/sync/errgroup"
)

type GenerateOptions struct {
	// Repeats is how many times each pair meets; below 1 means 1.
	Repeats int `json:"repeats"`
	// SideStrategy is the wire name of a scheduling.SideStrategy; empty
	// selects round-parity alternation.
	SideStrategy string `json:"side_strategy,omitempty"`
}

type RoundUpdateInput struct {
	Status    *models.RoundStatus `json:"status,omitempty"`
	StartTime *string             `json:"start_time,omitempty"`
}

type MatchUpdateInput struct {
	Status   *models.MatchStatus `json:"status,omitempty"`
	VenueID  *int                `json:"venue_id,omitempty"`
	TimeSlot *string             `json:"time_slot,omitempty"`
	Notes    *string             `json:"notes,omitempty"`
}

// ScheduleServiceConfig toggles optional strictness. The defaults reproduce
// the permissive historical behavior.
type ScheduleServiceConfig struct {
	// RequireCompletedForWinner refuses RecordResult unless the match is
	// already completed.
	RequireCompletedForWinner bool
}

type ScheduleService interface {
	Generate(ctx context.Context, callerID, tournamentID int, opts GenerateOptions) (*models.Tournament, error)
	Shuffle(ctx context.Context, callerID, tournamentID int, opts GenerateOptions) (*models.Tournament, error)
	AssignVenues(ctx context.Context, callerID, tournamentID int) (*models.Tournament, error)
	AssignTimes(ctx context.Context, callerID, tournamentID int, baseTime string) (*models.Tournament, error)
	UpdateRound(ctx context.Context, callerID, tournamentID, roundNumber int, input RoundUpdateInput) (*models.Round, error)
	UpdateMatch(ctx context.Context, callerID, tournamentID, matchID int, input MatchUpdateInput) (*models.Match, error)
	RecordResult(ctx context.Context, callerID, tournamentID, matchID, winnerID int) (*models.Match, error)

	GetFull(ctx context.Context, tournamentID int) (*models.Tournament, error)
	Conflicts(ctx context.Context, tournamentID int) ([]models.Conflict, error)
	Standings(ctx context.Context, tournamentID int) ([]models.Standing, error)
}

type scheduleService struct {
	tournaments  TournamentService
	teamRepo     repositories.TeamRepository
	venueRepo    repositories.VenueRepository
	scheduleRepo repositories.ScheduleRepository
	generator    scheduling.MatchupGenerator
	hub          *scheduling.Hub
	logger       *slog.Logger
	cfg          ScheduleServiceConfig

	// One mutex per tournament serializes mutations so readers never
	// observe a half-replaced schedule.
	locksMu sync.Mutex
	locks   map[int]*sync.Mutex
}

func NewScheduleService(
	tournaments TournamentService,
	teamRepo repositories.TeamRepository,
	venueRepo repositories.VenueRepository,
	scheduleRepo repositories.ScheduleRepository,
	hub *scheduling.Hub,
	logger *slog.Logger,
	cfg ScheduleServiceConfig,
) ScheduleService {
	return &scheduleService{
		tournaments:  tournaments,
		teamRepo:     teamRepo,
		venueRepo:    venueRepo,
		scheduleRepo: scheduleRepo,
		generator:    scheduling.NewRoundRobinGenerator(),
		hub:          hub,
		logger:       logger,
		cfg:          cfg,
		locks:        make(map[int]*sync.Mutex),
	}
}

func (s *scheduleService) lock(tournamentID int) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[tournamentID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[tournamentID] = mu
	}
	s.locksMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

func (s *scheduleService) Generate(ctx context.Context, callerID, tournamentID int, opts GenerateOptions) (*models.Tournament, error) {
	return s.generate(ctx, callerID, tournamentID, opts, false)
}

// Shuffle regenerates with the roster in a random order, producing a fresh
// draw with the same completeness guarantees.
func (s *scheduleService) Shuffle(ctx context.Context, callerID, tournamentID int, opts GenerateOptions) (*models.Tournament, error) {
	return s.generate(ctx, callerID, tournamentID, opts, true)
}

func (s *scheduleService) generate(ctx context.Context, callerID, tournamentID int, opts GenerateOptions, shuffle bool) (*models.Tournament, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}

	sides, err := scheduling.SideStrategyByName(opts.SideStrategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	if shuffle {
		rand.Shuffle(len(teams), func(i, j int) {
			teams[i], teams[j] = teams[j], teams[i]
		})
	}

	rounds, err := s.generator.Generate(scheduling.GenerateParams{
		Teams:   teams,
		Repeats: opts.Repeats,
		Sides:   sides,
	})
	if err != nil {
		if errors.Is(err, scheduling.ErrNotEnoughTeams) {
			return nil, ErrNotEnoughTeams
		}
		return nil, err
	}

	if err := s.scheduleRepo.ReplaceRounds(ctx, nil, tournamentID, rounds); err != nil {
		return nil, err
	}
	s.logger.Info("schedule generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("teams", len(teams)),
		slog.Int("rounds", len(rounds)),
		slog.String("generator", s.generator.Name()),
		slog.String("sides", sides.Name()))

	return s.broadcastAndReturn(ctx, tournamentID)
}

func (s *scheduleService) AssignVenues(ctx context.Context, callerID, tournamentID int) (*models.Tournament, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	rounds, err := s.scheduleRepo.ListRounds(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	venues, err := s.venueRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	scheduling.AssignVenues(rounds, venues)
	if err := s.scheduleRepo.ReplaceRounds(ctx, nil, tournamentID, rounds); err != nil {
		return nil, err
	}
	return s.broadcastAndReturn(ctx, tournamentID)
}

func (s *scheduleService) AssignTimes(ctx context.Context, callerID, tournamentID int, baseTime string) (*models.Tournament, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	tournament, err := s.tournaments.GetOwned(ctx, callerID, tournamentID)
	if err != nil {
		return nil, err
	}
	rounds, err := s.scheduleRepo.ListRounds(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	if err := scheduling.AssignStartTimes(rounds, baseTime, tournament.Format); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := s.scheduleRepo.ReplaceRounds(ctx, nil, tournamentID, rounds); err != nil {
		return nil, err
	}
	return s.broadcastAndReturn(ctx, tournamentID)
}

func (s *scheduleService) UpdateRound(ctx context.Context, callerID, tournamentID, roundNumber int, input RoundUpdateInput) (*models.Round, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	round, err := s.scheduleRepo.GetRoundByNumber(ctx, tournamentID, roundNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		if !round.Status.CanTransitionTo(*input.Status) {
			return nil, ErrInvalidStatusTransition
		}
		round.Status = *input.Status
	}
	if input.StartTime != nil {
		// Changing a round's start time does not propagate to its matches;
		// only the explicit auto-assign operation does that.
		round.StartTime = input.StartTime
	}

	if err := s.scheduleRepo.UpdateRound(ctx, round); err != nil {
		return nil, err
	}
	s.broadcast(ctx, tournamentID, scheduling.EventScheduleUpdated)
	return round, nil
}

func (s *scheduleService) UpdateMatch(ctx context.Context, callerID, tournamentID, matchID int, input MatchUpdateInput) (*models.Match, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	match, err := s.getMatch(ctx, tournamentID, matchID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		if !match.Status.CanTransitionTo(*input.Status) {
			return nil, ErrInvalidStatusTransition
		}
		match.Status = *input.Status
	}
	if input.VenueID != nil {
		if *input.VenueID == 0 {
			match.VenueID = nil
		} else {
			match.VenueID = input.VenueID
		}
	}
	if input.TimeSlot != nil {
		match.TimeSlot = input.TimeSlot
	}
	if input.Notes != nil {
		match.Notes = *input.Notes
	}

	if err := s.scheduleRepo.UpdateMatch(ctx, match); err != nil {
		return nil, err
	}
	s.broadcast(ctx, tournamentID, scheduling.EventScheduleUpdated)
	return match, nil
}

// RecordResult is the single entry point for setting a winner. The
// historical behavior accepts a winner at any status; RequireCompletedForWinner
// switches on the stricter variant.
func (s *scheduleService) RecordResult(ctx context.Context, callerID, tournamentID, matchID, winnerID int) (*models.Match, error) {
	unlock := s.lock(tournamentID)
	defer unlock()

	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	match, err := s.getMatch(ctx, tournamentID, matchID)
	if err != nil {
		return nil, err
	}

	if !match.HasTeam(winnerID) {
		return nil, ErrWinnerNotInMatch
	}
	if s.cfg.RequireCompletedForWinner && match.Status != models.MatchStatusCompleted {
		return nil, ErrWinnerRequiresCompleted
	}

	match.WinnerID = &winnerID
	if err := s.scheduleRepo.UpdateMatch(ctx, match); err != nil {
		return nil, err
	}
	s.logger.Info("result recorded",
		slog.Int("tournament_id", tournamentID),
		slog.Int("match_id", matchID),
		slog.Int("winner_id", winnerID))
	s.broadcast(ctx, tournamentID, scheduling.EventStandingsUpdated)
	return match, nil
}

// GetFull assembles the complete tournament view, loading the roster, the
// venue pool and the schedule concurrently.
func (s *scheduleService) GetFull(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gctx, nil, tournamentID)
		if err == nil {
			tournament.Teams = teams
		}
		return err
	})
	g.Go(func() error {
		venues, err := s.venueRepo.ListByTournament(gctx, nil, tournamentID)
		if err == nil {
			tournament.Venues = venues
		}
		return err
	})
	g.Go(func() error {
		rounds, err := s.scheduleRepo.ListRounds(gctx, tournamentID)
		if err == nil {
			tournament.Rounds = rounds
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	linkEntities(tournament)
	return tournament, nil
}

func (s *scheduleService) Conflicts(ctx context.Context, tournamentID int) ([]models.Conflict, error) {
	tournament, err := s.GetFull(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	conflicts := scheduling.DetectConflicts(tournament.Rounds, tournament.Teams, tournament.Venues)
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	return conflicts, nil
}

func (s *scheduleService) Standings(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	tournament, err := s.GetFull(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return scheduling.CalculateStandings(tournament.Rounds, tournament.Teams, nil), nil
}

func (s *scheduleService) loadTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	// Reads are open to any authenticated caller; only mutations check
	// ownership.
	return s.tournaments.Get(ctx, tournamentID)
}

func (s *scheduleService) getMatch(ctx context.Context, tournamentID, matchID int) (*models.Match, error) {
	match, err := s.scheduleRepo.GetMatch(ctx, tournamentID, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *scheduleService) broadcastAndReturn(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.GetFull(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToRoom(scheduling.RoomID(tournamentID), scheduling.Event{
		Type:    scheduling.EventScheduleUpdated,
		Payload: tournament,
	})
	return tournament, nil
}

func (s *scheduleService) broadcast(ctx context.Context, tournamentID int, eventType string) {
	var payload interface{}
	var err error
	switch eventType {
	case scheduling.EventStandingsUpdated:
		payload, err = s.Standings(ctx, tournamentID)
	default:
		payload, err = s.GetFull(ctx, tournamentID)
	}
	if err != nil {
		s.logger.Error("failed to build broadcast payload",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom(scheduling.RoomID(tournamentID), scheduling.Event{
		Type:    eventType,
		Payload: payload,
	})
}

// linkEntities resolves team and venue references on every match so the
// presentation layer gets names without extra lookups.
func linkEntities(t *models.Tournament) {
	teams := make(map[int]*models.Team, len(t.Teams))
	for i := range t.Teams {
		teams[t.Teams[i].ID] = &t.Teams[i]
	}
	venues := make(map[int]*models.Venue, len(t.Venues))
	for i := range t.Venues {
		venues[t.Venues[i].ID] = &t.Venues[i]
	}
	for r := range t.Rounds {
		for m := range t.Rounds[r].Matches {
			match := &t.Rounds[r].Matches[m]
			match.TeamA = teams[match.TeamAID]
			match.TeamB = teams[match.TeamBID]
			if match.VenueID != nil {
				match.Venue = venues[*match.VenueID]
			}
		}
	}
}
