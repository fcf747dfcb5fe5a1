package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/docsource"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/extract"
	"github.com/courtdata/stats-tracker/internal/interchange"
	"github.com/courtdata/stats-tracker/internal/merge"
	"github.com/courtdata/stats-tracker/internal/parse"
	"github.com/courtdata/stats-tracker/internal/repository"
	"github.com/courtdata/stats-tracker/internal/storage"
)

// fakeReader maps filenames to canned documents.
type fakeReader struct {
	docs map[string]docsource.Document
}

func (f *fakeReader) Read(_ context.Context, filename string, _ io.Reader) (docsource.Document, error) {
	doc, ok := f.docs[filename]
	if !ok {
		return docsource.Document{}, errors.New("unreadable document")
	}
	return doc, nil
}

// fakeRepo captures saved matches.
type fakeRepo struct {
	saved []*entity.Match
}

func (f *fakeRepo) SaveMatch(_ context.Context, m *entity.Match) (int64, error) {
	f.saved = append(f.saved, m)
	return int64(len(f.saved)), nil
}
func (f *fakeRepo) GetMatch(context.Context, int64) (*entity.Match, error) {
	return nil, common.ErrNotFound
}
func (f *fakeRepo) ListMatches(context.Context) ([]*entity.Match, error)  { return nil, nil }
func (f *fakeRepo) LatestMatch(context.Context) (*entity.Match, error)    { return nil, common.ErrNotFound }
func (f *fakeRepo) FindMatch(context.Context, string, string) (*entity.Match, error) {
	return nil, common.ErrNotFound
}
func (f *fakeRepo) PlayerHistory(context.Context, string) ([]repository.PlayerGame, error) {
	return nil, nil
}
func (f *fakeRepo) DeleteMatch(context.Context, int64) error { return nil }

var _ repository.MatchRepository = (*fakeRepo)(nil)

const boxText = `FIBA Box Score
Match No: 1234
ALPHA 72 - 65 BETA
`

const lineupText = `Analyse des 5 en jeu
`

func testService(t *testing.T, reader DocReader, repo repository.MatchRepository, blobs storage.Store) *UploadService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ex := extract.New(extract.Config{Teams: parse.TeamRules{}}, logger)
	mg := merge.New(parse.TeamRules{}, logger)
	return NewUploadService(reader, ex, mg, repo, blobs, logger)
}

func TestProcessBatchPersistsMatch(t *testing.T) {
	reader := &fakeReader{docs: map[string]docsource.Document{
		"fiba_box.pdf": {Filename: "fiba_box.pdf", Text: boxText},
	}}
	repo := &fakeRepo{}
	svc := testService(t, reader, repo, nil)

	res, err := svc.ProcessBatch(context.Background(), []UploadFile{
		{Filename: "fiba_box.pdf", Content: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)

	assert.Equal(t, merge.StateComplete, res.State)
	assert.Equal(t, int64(1), res.MatchID)
	assert.Equal(t, "ALPHA", res.HomeTeam)
	assert.Equal(t, "BETA", res.AwayTeam)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, entity.DocBoxScore, res.Documents[0].DocType)

	require.Len(t, repo.saved, 1)
	require.NotNil(t, repo.saved[0].HomeScore)
	assert.Equal(t, 72, *repo.saved[0].HomeScore)
}

func TestProcessBatchRejectsSupplementsOnly(t *testing.T) {
	reader := &fakeReader{docs: map[string]docsource.Document{
		"analyse_5.pdf": {Filename: "analyse_5.pdf", Text: lineupText},
	}}
	repo := &fakeRepo{}
	svc := testService(t, reader, repo, nil)

	res, err := svc.ProcessBatch(context.Background(), []UploadFile{
		{Filename: "analyse_5.pdf", Content: strings.NewReader("%PDF")},
	})
	assert.ErrorIs(t, err, common.ErrMissingPrimary)
	assert.Equal(t, merge.StateRejected, res.State)
	assert.Empty(t, repo.saved)
}

func TestProcessBatchEmpty(t *testing.T) {
	svc := testService(t, &fakeReader{}, &fakeRepo{}, nil)
	_, err := svc.ProcessBatch(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestProcessBatchArchivesSources(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blobs, err := storage.NewFSStore(t.TempDir(), logger)
	require.NoError(t, err)

	reader := &fakeReader{docs: map[string]docsource.Document{
		"fiba_box.pdf": {Filename: "fiba_box.pdf", Text: boxText},
	}}
	repo := &fakeRepo{}
	svc := testService(t, reader, repo, blobs)

	res, err := svc.ProcessBatch(context.Background(), []UploadFile{
		{Filename: "fiba_box.pdf", Content: strings.NewReader("%PDF")},
		{Filename: "photo.bin", Content: strings.NewReader("not a document")},
	})
	require.NoError(t, err)

	require.Len(t, res.Documents, 2)
	assert.True(t, strings.HasPrefix(res.Documents[0].BlobURL, "file://"))
	assert.NotEmpty(t, res.Documents[1].Error)

	// both files stay on the record, readable or not
	require.Len(t, repo.saved, 1)
	refs := repo.saved[0].SourceRefs
	require.Len(t, refs, 2)
	for _, ref := range refs {
		assert.True(t, strings.HasPrefix(ref.BlobURL, "file://"), "ref %q should carry a blob url", ref.Filename)
	}
}

func TestImportJSON(t *testing.T) {
	m := entity.Match{
		Date:     "2023-10-14",
		HomeTeam: "CSMF PARIS",
		AwayTeam: "ALPHA BASKET",
		Players: []entity.PlayerStat{
			{Team: "CSMF PARIS", Number: 7, Name: "SMITH", Points: 20},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, interchange.Encode(&buf, []entity.Match{m}))

	repo := &fakeRepo{}
	svc := testService(t, &fakeReader{}, repo, nil)

	ids, err := svc.ImportJSON(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "CSMF PARIS", repo.saved[0].HomeTeam)
	assert.Len(t, repo.saved[0].Players, 1)
}

func TestImportJSONRejectsMalformed(t *testing.T) {
	svc := testService(t, &fakeReader{}, &fakeRepo{}, nil)
	_, err := svc.ImportJSON(context.Background(), []byte(`{"matchs": []}`))
	assert.Error(t, err)
}
