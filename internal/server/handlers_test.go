package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/docsource"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/export"
	"github.com/courtdata/stats-tracker/internal/extract"
	"github.com/courtdata/stats-tracker/internal/merge"
	"github.com/courtdata/stats-tracker/internal/parse"
	"github.com/courtdata/stats-tracker/internal/repository"
	"github.com/courtdata/stats-tracker/internal/service"
)

type memRepo struct {
	matches map[int64]*entity.Match
	nextID  int64
}

func newMemRepo() *memRepo {
	return &memRepo{matches: map[int64]*entity.Match{}}
}

func (m *memRepo) SaveMatch(_ context.Context, rec *entity.Match) (int64, error) {
	m.nextID++
	rec.ID = m.nextID
	m.matches[m.nextID] = rec
	return m.nextID, nil
}

func (m *memRepo) GetMatch(_ context.Context, id int64) (*entity.Match, error) {
	rec, ok := m.matches[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return rec, nil
}

func (m *memRepo) ListMatches(context.Context) ([]*entity.Match, error) {
	out := make([]*entity.Match, 0, len(m.matches))
	for _, rec := range m.matches {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memRepo) LatestMatch(context.Context) (*entity.Match, error) {
	if m.nextID == 0 {
		return nil, common.ErrNotFound
	}
	return m.matches[m.nextID], nil
}

func (m *memRepo) FindMatch(_ context.Context, date, team string) (*entity.Match, error) {
	for _, rec := range m.matches {
		if rec.Date == date && (strings.Contains(rec.HomeTeam, team) || strings.Contains(rec.AwayTeam, team)) {
			return rec, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memRepo) PlayerHistory(_ context.Context, name string) ([]repository.PlayerGame, error) {
	var out []repository.PlayerGame
	for id, rec := range m.matches {
		for _, p := range rec.Players {
			if strings.Contains(p.Name, name) {
				out = append(out, repository.PlayerGame{MatchID: id, Date: rec.Date, Stat: p})
			}
		}
	}
	return out, nil
}

func (m *memRepo) DeleteMatch(_ context.Context, id int64) error {
	delete(m.matches, id)
	return nil
}

var _ repository.MatchRepository = (*memRepo)(nil)

type cannedReader struct{}

func (cannedReader) Read(_ context.Context, filename string, _ io.Reader) (docsource.Document, error) {
	return docsource.Document{
		Filename: filename,
		Text:     "FIBA Box Score\nALPHA 72 - 65 BETA\n",
	}, nil
}

func testServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemRepo()
	ex := extract.New(extract.Config{}, logger)
	mg := merge.New(parse.TeamRules{}, logger)
	upload := service.NewUploadService(cannedReader{}, ex, mg, repo, nil, logger)

	router := NewRouter(Deps{
		Upload:   upload,
		Repo:     repo,
		Exporter: export.NewService(repo, logger),
		Logger:   logger,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, repo
}

func seedMatch(t *testing.T, repo *memRepo) int64 {
	t.Helper()
	score := 72
	id, err := repo.SaveMatch(context.Background(), &entity.Match{
		Date:      "2023-10-14",
		HomeTeam:  "CSMF PARIS",
		AwayTeam:  "ALPHA BASKET",
		HomeScore: &score,
		Players:   []entity.PlayerStat{{Team: "CSMF PARIS", Name: "SMITH", Points: 20}},
		Lineups: []entity.LineupStint{{
			Team:    "CSMF PARIS",
			Players: []string{"1-SMITH", "4-JONES", "7-LEE", "9-KO", "11-NOEL"},
		}},
	})
	require.NoError(t, err)
	return id
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	var body map[string]any
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}

func TestUploadBatch(t *testing.T) {
	srv, repo := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", "fiba_box.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/upload", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result service.UploadResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, merge.StateComplete, result.State)
	assert.Equal(t, "ALPHA", result.HomeTeam)
	assert.Len(t, repo.matches, 1)
}

func TestUploadWithoutPrimaryIsBadRequest(t *testing.T) {
	srv, _ := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/upload", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMatchAndNotFound(t *testing.T) {
	srv, repo := testServer(t)
	id := seedMatch(t, repo)

	var m entity.Match
	status := getJSON(t, srv.URL+"/api/matches/1", &m)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "CSMF PARIS", m.HomeTeam)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/matches/999", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/matches/abc", nil))
}

func TestFindMatchValidation(t *testing.T) {
	srv, repo := testServer(t)
	seedMatch(t, repo)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/matches/find", nil))

	var m entity.Match
	status := getJSON(t, srv.URL+"/api/matches/find?date=2023-10-14&opponent=ALPHA", &m)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ALPHA BASKET", m.AwayTeam)
}

func TestMatchLineups(t *testing.T) {
	srv, repo := testServer(t)
	seedMatch(t, repo)

	var body struct {
		Lineups []entity.LineupStint `json:"lineups"`
		Count   int                  `json:"count"`
	}
	status := getJSON(t, srv.URL+"/api/matches/1/lineups", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Lineups, 1)
	assert.Len(t, body.Lineups[0].Players, 5)
}

func TestPlayerHistoryEndpoint(t *testing.T) {
	srv, repo := testServer(t)
	seedMatch(t, repo)

	var body struct {
		Player string                  `json:"player"`
		Games  []repository.PlayerGame `json:"games"`
	}
	status := getJSON(t, srv.URL+"/api/players/SMITH", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SMITH", body.Player)
	require.Len(t, body.Games, 1)
	assert.Equal(t, 20, body.Games[0].Stat.Points)
}

func TestExportMatchEndpoint(t *testing.T) {
	srv, repo := testServer(t)
	seedMatch(t, repo)

	resp, err := http.Get(srv.URL + "/api/matches/1/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestImportJSONEndpoint(t *testing.T) {
	srv, repo := testServer(t)

	doc := `{"matchs": [], "stats_joueuses": [], "stats_equipes": [], "combinaisons_5": []}`
	resp, err := http.Post(srv.URL+"/api/import-json", "application/json", strings.NewReader(doc))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, repo.matches)

	resp2, err := http.Post(srv.URL+"/api/import-json", "application/json", strings.NewReader(`{"matchs": []}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestDeleteMatchEndpoint(t *testing.T) {
	srv, repo := testServer(t)
	seedMatch(t, repo)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/matches/1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, repo.matches)
}
