package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Danthemainman1/debate-scheduler/models"
	"github.com/Danthemainman1/debate-scheduler/repositories"
	"github.com/Danthemainman1/debate-scheduler/storage"
	"github.com/google/uuid"
)

// ScheduleDocument is the serialized exchange form of a tournament. It
// round-trips through JSON without loss: importing a previously exported
// document reconstructs an identical structure when identifiers are kept.
type ScheduleDocument struct {
	TournamentName string              `json:"tournamentName"`
	Date           *string             `json:"date,omitempty"`
	Format         models.FormatPreset `json:"format"`
	Teams          []models.Team       `json:"teams"`
	Venues         []models.Venue      `json:"venues"`
	Rounds         []models.Round      `json:"rounds"`
}

// ImportResult reports what an import brought in. Import failures leave the
// stored schedule untouched, so a caller can show a status banner without
// interrupting the session.
type ImportResult struct {
	Teams   int `json:"teams"`
	Venues  int `json:"venues"`
	Rounds  int `json:"rounds"`
	Matches int `json:"matches"`
}

type ExportService interface {
	Document(ctx context.Context, tournamentID int) (*ScheduleDocument, error)
	Printable(ctx context.Context, tournamentID int) (string, error)

	// Publish uploads the JSON document to object storage and returns the
	// public location.
	Publish(ctx context.Context, callerID, tournamentID int) (*storage.UploadResult, error)

	Import(ctx context.Context, callerID, tournamentID int, raw []byte) (*ImportResult, error)
}

type exportService struct {
	schedule    ScheduleService
	tournaments TournamentService
	teams       repositories.TeamRepository
	venues      repositories.VenueRepository
	rounds      repositories.ScheduleRepository
	txm         repositories.TxManager
	uploader    storage.FileUploader
}

func NewExportService(
	schedule ScheduleService,
	tournaments TournamentService,
	teams repositories.TeamRepository,
	venues repositories.VenueRepository,
	rounds repositories.ScheduleRepository,
	txm repositories.TxManager,
	uploader storage.FileUploader,
) ExportService {
	return &exportService{
		schedule:    schedule,
		tournaments: tournaments,
		teams:       teams,
		venues:      venues,
		rounds:      rounds,
		txm:         txm,
		uploader:    uploader,
	}
}

func (s *exportService) Document(ctx context.Context, tournamentID int) (*ScheduleDocument, error) {
	tournament, err := s.schedule.GetFull(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return BuildDocument(tournament), nil
}

func (s *exportService) Printable(ctx context.Context, tournamentID int) (string, error) {
	doc, err := s.Document(ctx, tournamentID)
	if err != nil {
		return "", err
	}
	return RenderPrintable(doc), nil
}

func (s *exportService) Publish(ctx context.Context, callerID, tournamentID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}
	doc, err := s.Document(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schedule document: %w", err)
	}

	key := fmt.Sprintf("exports/tournament-%d/%s.json", tournamentID, uuid.NewString())
	return s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
}

// Import replaces the tournament's roster, venues and schedule with the
// document's content. Validation happens entirely before the first write,
// and every write runs in one transaction: a failure rolls the whole import
// back, leaving the stored schedule untouched.
func (s *exportService) Import(ctx context.Context, callerID, tournamentID int, raw []byte) (*ImportResult, error) {
	if _, err := s.tournaments.GetOwned(ctx, callerID, tournamentID); err != nil {
		return nil, err
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}

	var result *ImportResult
	err = s.txm.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		result, err = s.applyDocument(ctx, exec, tournamentID, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *exportService) applyDocument(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, doc *ScheduleDocument) (*ImportResult, error) {
	// Old rounds go first so team deletion is not blocked by match
	// references; the document's rounds are rewritten against the new team
	// IDs below.
	if err := s.rounds.ReplaceRounds(ctx, exec, tournamentID, nil); err != nil {
		return nil, err
	}

	existingTeams, err := s.teams.ListByTournament(ctx, exec, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, team := range existingTeams {
		if err := s.teams.Delete(ctx, exec, team.ID); err != nil {
			return nil, err
		}
	}
	existingVenues, err := s.venues.ListByTournament(ctx, exec, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, venue := range existingVenues {
		if err := s.venues.Delete(ctx, exec, venue.ID); err != nil {
			return nil, err
		}
	}

	teamIDs := make(map[int]int, len(doc.Teams))
	for i := range doc.Teams {
		team := models.Team{
			TournamentID: tournamentID,
			Name:         doc.Teams[i].Name,
			Affiliation:  doc.Teams[i].Affiliation,
		}
		if err := s.teams.Create(ctx, exec, &team); err != nil {
			return nil, err
		}
		teamIDs[doc.Teams[i].ID] = team.ID
	}
	venueIDs := make(map[int]int, len(doc.Venues))
	for i := range doc.Venues {
		venue := models.Venue{
			TournamentID: tournamentID,
			Name:         doc.Venues[i].Name,
			Available:    doc.Venues[i].Available,
		}
		if err := s.venues.Create(ctx, exec, &venue); err != nil {
			return nil, err
		}
		venueIDs[doc.Venues[i].ID] = venue.ID
	}

	rounds := make([]models.Round, len(doc.Rounds))
	matches := 0
	for i, docRound := range doc.Rounds {
		round := models.Round{
			Number:    docRound.Number,
			StartTime: docRound.StartTime,
			Status:    docRound.Status,
		}
		for _, docMatch := range docRound.Matches {
			match := models.Match{
				Number:   docMatch.Number,
				TeamAID:  teamIDs[docMatch.TeamAID],
				TeamBID:  teamIDs[docMatch.TeamBID],
				TimeSlot: docMatch.TimeSlot,
				Status:   docMatch.Status,
				Notes:    docMatch.Notes,
			}
			if docMatch.VenueID != nil {
				id := venueIDs[*docMatch.VenueID]
				match.VenueID = &id
			}
			if docMatch.WinnerID != nil {
				id := teamIDs[*docMatch.WinnerID]
				match.WinnerID = &id
			}
			round.Matches = append(round.Matches, match)
			matches++
		}
		rounds[i] = round
	}
	if err := s.rounds.ReplaceRounds(ctx, exec, tournamentID, rounds); err != nil {
		return nil, err
	}

	return &ImportResult{
		Teams:   len(doc.Teams),
		Venues:  len(doc.Venues),
		Rounds:  len(rounds),
		Matches: matches,
	}, nil
}

// BuildDocument strips a loaded tournament down to its exchange form. The
// linked entity pointers the service layer attaches are dropped; references
// travel as plain identifiers.
func BuildDocument(t *models.Tournament) *ScheduleDocument {
	doc := &ScheduleDocument{
		TournamentName: t.Name,
		Date:           t.Date,
		Format:         t.Format,
		Teams:          append([]models.Team{}, t.Teams...),
		Venues:         append([]models.Venue{}, t.Venues...),
		Rounds:         make([]models.Round, len(t.Rounds)),
	}
	for i, round := range t.Rounds {
		round.Matches = append([]models.Match{}, round.Matches...)
		for j := range round.Matches {
			round.Matches[j].TeamA = nil
			round.Matches[j].TeamB = nil
			round.Matches[j].Venue = nil
		}
		doc.Rounds[i] = round
	}
	return doc
}

// ParseDocument decodes and validates a schedule document. Everything wrong
// with the payload surfaces as ErrImportInvalid so callers can treat import
// failures uniformly.
func ParseDocument(raw []byte) (*ScheduleDocument, error) {
	var doc ScheduleDocument
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}

	if doc.TournamentName == "" {
		return nil, fmt.Errorf("%w: missing tournament name", ErrImportInvalid)
	}
	if doc.Teams == nil || doc.Venues == nil || doc.Rounds == nil {
		return nil, fmt.Errorf("%w: teams, venues and rounds must be arrays", ErrImportInvalid)
	}

	teamIDs := make(map[int]bool, len(doc.Teams))
	for _, team := range doc.Teams {
		if team.Name == "" {
			return nil, fmt.Errorf("%w: team %d has no name", ErrImportInvalid, team.ID)
		}
		if teamIDs[team.ID] {
			return nil, fmt.Errorf("%w: duplicate team id %d", ErrImportInvalid, team.ID)
		}
		teamIDs[team.ID] = true
	}
	venueIDs := make(map[int]bool, len(doc.Venues))
	for _, venue := range doc.Venues {
		if venueIDs[venue.ID] {
			return nil, fmt.Errorf("%w: duplicate venue id %d", ErrImportInvalid, venue.ID)
		}
		venueIDs[venue.ID] = true
	}

	for _, round := range doc.Rounds {
		if !round.Status.Valid() {
			return nil, fmt.Errorf("%w: round %d has invalid status %q", ErrImportInvalid, round.Number, round.Status)
		}
		for _, match := range round.Matches {
			if !match.Status.Valid() {
				return nil, fmt.Errorf("%w: match %d in round %d has invalid status %q",
					ErrImportInvalid, match.Number, round.Number, match.Status)
			}
			if !teamIDs[match.TeamAID] || !teamIDs[match.TeamBID] {
				return nil, fmt.Errorf("%w: match %d in round %d references an unknown team",
					ErrImportInvalid, match.Number, round.Number)
			}
			if match.TeamAID == match.TeamBID {
				return nil, fmt.Errorf("%w: match %d in round %d pairs a team with itself",
					ErrImportInvalid, match.Number, round.Number)
			}
			if match.WinnerID != nil && !match.HasTeam(*match.WinnerID) {
				return nil, fmt.Errorf("%w: match %d in round %d has a winner outside the pairing",
					ErrImportInvalid, match.Number, round.Number)
			}
			if match.VenueID != nil && !venueIDs[*match.VenueID] {
				return nil, fmt.Errorf("%w: match %d in round %d references an unknown venue",
					ErrImportInvalid, match.Number, round.Number)
			}
		}
	}
	return &doc, nil
}

// RenderPrintable flattens a document into the plain listing coaches pin to
// the wall: one header per round, one line per match.
func RenderPrintable(doc *ScheduleDocument) string {
	teamNames := make(map[int]string, len(doc.Teams))
	for _, team := range doc.Teams {
		teamNames[team.ID] = team.Name
	}
	venueNames := make(map[int]string, len(doc.Venues))
	for _, venue := range doc.Venues {
		venueNames[venue.ID] = venue.Name
	}

	var b strings.Builder
	b.WriteString(doc.TournamentName + "\n")
	if doc.Date != nil {
		b.WriteString(*doc.Date + "\n")
	}
	for _, round := range doc.Rounds {
		b.WriteString("\n")
		header := fmt.Sprintf("Round %d", round.Number)
		if round.StartTime != nil {
			header += " - " + *round.StartTime
		}
		b.WriteString(header + "\n")
		for _, match := range round.Matches {
			line := fmt.Sprintf("  %d. %s (A) vs %s (B)",
				match.Number, teamNames[match.TeamAID], teamNames[match.TeamBID])
			if match.VenueID != nil {
				line += " @ " + venueNames[*match.VenueID]
			}
			if match.TimeSlot != nil {
				line += ", " + *match.TimeSlot
			}
			if match.WinnerID != nil {
				line += " - winner: " + teamNames[*match.WinnerID]
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
