package services

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Danthemainman1/debate-scheduler/models"
	"github.com/Danthemainman1/debate-scheduler/repositories"
	"github.com/Danthemainman1/debate-scheduler/scheduling"
)

func exportFixture(t *testing.T) *models.Tournament {
	t.Helper()

	teams := []models.Team{
		{ID: 1, Name: "Lincoln"},
		{ID: 2, Name: "Douglas"},
		{ID: 3, Name: "Webster"},
		{ID: 4, Name: "Hayne"},
	}
	venues := []models.Venue{
		{ID: 10, Name: "Room 101", Available: true},
		{ID: 20, Name: "Room 102", Available: true},
	}

	gen := scheduling.NewRoundRobinGenerator()
	rounds, err := gen.Generate(scheduling.GenerateParams{Teams: teams, Repeats: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	scheduling.AssignVenues(rounds, venues)
	if err := scheduling.AssignStartTimes(rounds, "09:00", models.DefaultFormat()); err != nil {
		t.Fatalf("AssignStartTimes: %v", err)
	}

	// One decided match so the winner field round-trips too.
	winner := rounds[0].Matches[0].TeamAID
	rounds[0].Matches[0].Status = models.MatchStatusCompleted
	rounds[0].Matches[0].WinnerID = &winner
	rounds[0].Matches[0].Notes = "close 2-1"

	date := "2026-03-14"
	return &models.Tournament{
		ID:     1,
		Name:   "Spring Invitational",
		Date:   &date,
		Format: models.DefaultFormat(),
		Teams:  teams,
		Venues: venues,
		Rounds: rounds,
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	tournament := exportFixture(t)
	doc := BuildDocument(tournament)

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if !reflect.DeepEqual(doc, parsed) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", parsed, doc)
	}
}

func TestBuildDocumentDropsLinkedEntities(t *testing.T) {
	tournament := exportFixture(t)
	tournament.Rounds[0].Matches[0].TeamA = &tournament.Teams[0]
	tournament.Rounds[0].Matches[0].Venue = &tournament.Venues[0]

	doc := BuildDocument(tournament)
	m := doc.Rounds[0].Matches[0]
	if m.TeamA != nil || m.TeamB != nil || m.Venue != nil {
		t.Error("linked entities leaked into the document")
	}
	// The original stays linked.
	if tournament.Rounds[0].Matches[0].TeamA == nil {
		t.Error("BuildDocument mutated its input")
	}
}

func TestParseDocumentRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{"tournamentName":`},
		{"teams not an array", `{"tournamentName":"T","format":{},"teams":{},"venues":[],"rounds":[]}`},
		{"missing name", `{"format":{},"teams":[],"venues":[],"rounds":[]}`},
		{"null rounds", `{"tournamentName":"T","format":{},"teams":[],"venues":[],"rounds":null}`},
		{"duplicate team id", `{"tournamentName":"T","format":{},"teams":[{"id":1,"name":"A"},{"id":1,"name":"B"}],"venues":[],"rounds":[]}`},
		{"unknown team in match", `{"tournamentName":"T","format":{},"teams":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"venues":[],"rounds":[{"id":0,"number":1,"status":"pending","matches":[{"id":0,"number":1,"team_a_id":1,"team_b_id":9,"status":"scheduled","notes":""}]}]}`},
		{"self pairing", `{"tournamentName":"T","format":{},"teams":[{"id":1,"name":"A"}],"venues":[],"rounds":[{"id":0,"number":1,"status":"pending","matches":[{"id":0,"number":1,"team_a_id":1,"team_b_id":1,"status":"scheduled","notes":""}]}]}`},
		{"winner outside pairing", `{"tournamentName":"T","format":{},"teams":[{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":3,"name":"C"}],"venues":[],"rounds":[{"id":0,"number":1,"status":"pending","matches":[{"id":0,"number":1,"team_a_id":1,"team_b_id":2,"status":"completed","winner_id":3,"notes":""}]}]}`},
		{"bad match status", `{"tournamentName":"T","format":{},"teams":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"venues":[],"rounds":[{"id":0,"number":1,"status":"pending","matches":[{"id":0,"number":1,"team_a_id":1,"team_b_id":2,"status":"paused","notes":""}]}]}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(c.raw))
			if !errors.Is(err, ErrImportInvalid) {
				t.Errorf("err = %v, want ErrImportInvalid", err)
			}
		})
	}
}

// fakeTxManager mirrors transactional semantics over the in-memory repos:
// the repo state is snapshotted before the callback and restored when it
// fails, so nothing the callback wrote survives an error.
type fakeTxManager struct {
	teams  *fakeTeamRepo
	venues *fakeVenueRepo
	rounds *fakeScheduleRepo
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	savedTeams := append([]models.Team{}, m.teams.teams...)
	savedVenues := append([]models.Venue{}, m.venues.venues...)
	savedRounds := append([]models.Round{}, m.rounds.rounds...)

	if err := fn(nil); err != nil {
		m.teams.teams = savedTeams
		m.venues.venues = savedVenues
		m.rounds.rounds = savedRounds
		return err
	}
	return nil
}

type failingVenueRepo struct {
	*fakeVenueRepo
	createErr error
}

func (f *failingVenueRepo) Create(ctx context.Context, exec repositories.SQLExecutor, venue *models.Venue) error {
	return f.createErr
}

type importFixture struct {
	tournament *models.Tournament
	raw        []byte
	teams      *fakeTeamRepo
	venues     *fakeVenueRepo
	rounds     *fakeScheduleRepo
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()

	tournament := exportFixture(t)
	tournament.OwnerID = testOwnerID

	raw, err := json.Marshal(BuildDocument(tournament))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	teamRepo := &fakeTeamRepo{teams: append([]models.Team{}, tournament.Teams...), nextID: 100}
	venueRepo := &fakeVenueRepo{venues: append([]models.Venue{}, tournament.Venues...), nextID: 100}
	scheduleRepo := &fakeScheduleRepo{}

	seed := make([]models.Round, len(tournament.Rounds))
	copy(seed, tournament.Rounds)
	if err := scheduleRepo.ReplaceRounds(context.Background(), nil, tournament.ID, seed); err != nil {
		t.Fatalf("seed rounds: %v", err)
	}

	return &importFixture{
		tournament: tournament,
		raw:        raw,
		teams:      teamRepo,
		venues:     venueRepo,
		rounds:     scheduleRepo,
	}
}

func TestImportRebuildsSchedule(t *testing.T) {
	fx := newImportFixture(t)
	svc := NewExportService(nil, &fakeTournaments{tournament: *fx.tournament},
		fx.teams, fx.venues, fx.rounds,
		&fakeTxManager{teams: fx.teams, venues: fx.venues, rounds: fx.rounds}, nil)

	result, err := svc.Import(context.Background(), testOwnerID, fx.tournament.ID, fx.raw)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	want := ImportResult{Teams: 4, Venues: 2, Rounds: 3, Matches: 6}
	if *result != want {
		t.Fatalf("result = %+v, want %+v", *result, want)
	}

	// The document's identifiers are remapped onto freshly created rows.
	newTeamIDs := make(map[int]bool, len(fx.teams.teams))
	for _, team := range fx.teams.teams {
		if team.ID <= 100 {
			t.Fatalf("team %q kept its pre-import id %d", team.Name, team.ID)
		}
		newTeamIDs[team.ID] = true
	}
	for _, round := range fx.rounds.rounds {
		for _, match := range round.Matches {
			if !newTeamIDs[match.TeamAID] || !newTeamIDs[match.TeamBID] {
				t.Errorf("round %d match %d references a stale team id", round.Number, match.Number)
			}
		}
	}
}

func TestImportFailureKeepsExistingSchedule(t *testing.T) {
	fx := newImportFixture(t)
	insertErr := errors.New("pq: connection reset by peer")
	svc := NewExportService(nil, &fakeTournaments{tournament: *fx.tournament},
		fx.teams, &failingVenueRepo{fakeVenueRepo: fx.venues, createErr: insertErr}, fx.rounds,
		&fakeTxManager{teams: fx.teams, venues: fx.venues, rounds: fx.rounds}, nil)

	_, err := svc.Import(context.Background(), testOwnerID, fx.tournament.ID, fx.raw)
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected the venue insert failure, got %v", err)
	}

	// A failed import must leave what was there before, not a half-written
	// replacement or an emptied schedule.
	if got := len(fx.rounds.rounds); got != 3 {
		t.Fatalf("expected the 3 original rounds to survive, got %d", got)
	}
	if got := len(fx.teams.teams); got != 4 {
		t.Errorf("expected the 4 original teams to survive, got %d", got)
	}
	if got := len(fx.venues.venues); got != 2 {
		t.Errorf("expected the 2 original venues to survive, got %d", got)
	}
}

func TestRenderPrintable(t *testing.T) {
	doc := BuildDocument(exportFixture(t))
	listing := RenderPrintable(doc)

	for _, want := range []string{
		"Spring Invitational",
		"2026-03-14",
		"Round 1 - 09:00",
		"Round 3",
		"Room 101",
		"(A) vs",
		"winner:",
	} {
		if !strings.Contains(listing, want) {
			t.Errorf("printable listing missing %q:\n%s", want, listing)
		}
	}
}
