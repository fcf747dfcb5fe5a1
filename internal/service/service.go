// Package service orchestrates the upload pipeline: classify each uploaded
// document, extract its partial record, fold the batch into one match and
// persist it together with the archived source files.
package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/courtdata/stats-tracker/internal/classify"
	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/docsource"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/extract"
	"github.com/courtdata/stats-tracker/internal/interchange"
	"github.com/courtdata/stats-tracker/internal/merge"
	"github.com/courtdata/stats-tracker/internal/repository"
	"github.com/courtdata/stats-tracker/internal/storage"
)

// UploadFile is one document of an upload batch.
type UploadFile struct {
	Filename string
	Content  io.Reader
}

// DocResult reports what happened to one uploaded document.
type DocResult struct {
	Filename    string              `json:"filename"`
	DocType     entity.DocumentType `json:"doc_type"`
	BlobURL     string              `json:"blob_url,omitempty"`
	SkippedRows int                 `json:"skipped_rows,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// UploadResult summarizes one processed batch.
type UploadResult struct {
	MatchID          int64       `json:"match_id"`
	State            merge.State `json:"state"`
	HomeTeam         string      `json:"home_team"`
	AwayTeam         string      `json:"away_team"`
	Date             string      `json:"date,omitempty"`
	Documents        []DocResult `json:"documents"`
	DroppedDetails   int         `json:"dropped_details,omitempty"`
	UnresolvedLabels int         `json:"unresolved_labels,omitempty"`
}

// DocReader is the behavior the service needs from the document source
// layer; satisfied by *docsource.Reader.
type DocReader interface {
	Read(ctx context.Context, filename string, src io.Reader) (docsource.Document, error)
}

type UploadService struct {
	logger    *slog.Logger
	reader    DocReader
	extractor *extract.Extractor
	merger    *merge.Merger
	repo      repository.MatchRepository
	blobs     storage.Store
}

func NewUploadService(
	reader DocReader,
	extractor *extract.Extractor,
	merger *merge.Merger,
	repo repository.MatchRepository,
	blobs storage.Store,
	logger *slog.Logger,
) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		logger:    logger,
		reader:    reader,
		extractor: extractor,
		merger:    merger,
		repo:      repo,
		blobs:     blobs,
	}
}

// ProcessBatch runs the whole pipeline over one upload batch and stores the
// resulting match. The batch must contain a primary box score; a batch of
// supplements alone is rejected and nothing is persisted.
func (s *UploadService) ProcessBatch(ctx context.Context, files []UploadFile) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, common.NewAppError("EMPTY_BATCH", "no files in upload batch", common.ErrInvalidInput)
	}

	batch := merge.NewBatch()
	result := &UploadResult{}
	blobURLs := map[string]string{}

	for _, f := range files {
		doc := s.processFile(ctx, batch, f, blobURLs)
		result.Documents = append(result.Documents, doc)
	}

	rec, rep, err := batch.Finalize(s.merger)
	result.State = batch.State()
	if err != nil {
		s.logger.Error("upload.rejected", "state", string(batch.State()), "error", err)
		return result, err
	}
	result.DroppedDetails = rep.DroppedDetails
	result.UnresolvedLabels = rep.UnresolvedLabels

	for i := range rec.SourceRefs {
		rec.SourceRefs[i].BlobURL = blobURLs[rec.SourceRefs[i].Filename]
	}

	id, err := s.repo.SaveMatch(ctx, rec)
	if err != nil {
		return result, err
	}
	result.MatchID = id
	result.HomeTeam = rec.HomeTeam
	result.AwayTeam = rec.AwayTeam
	result.Date = rec.Date

	s.logger.Info("upload.ok",
		"match_id", id,
		"home", rec.HomeTeam,
		"away", rec.AwayTeam,
		"documents", len(files),
		"dropped_details", rep.DroppedDetails,
	)
	return result, nil
}

// ImportJSON validates an interchange document and stores every match it
// contains. Returns the new ids in document order.
func (s *UploadService) ImportJSON(ctx context.Context, raw []byte) ([]int64, error) {
	export, err := interchange.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	matches := export.Matches()

	ids := make([]int64, 0, len(matches))
	for i := range matches {
		id, err := s.repo.SaveMatch(ctx, &matches[i])
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	s.logger.Info("import.ok", "matches", len(ids))
	return ids, nil
}

func (s *UploadService) processFile(ctx context.Context, batch *merge.Batch, f UploadFile, blobURLs map[string]string) DocResult {
	out := DocResult{Filename: f.Filename, DocType: entity.DocUnknown}

	raw, err := io.ReadAll(f.Content)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	if s.blobs != nil {
		blob, err := s.blobs.Put(ctx, f.Filename, bytes.NewReader(raw))
		if err != nil {
			// archiving is best effort; extraction still proceeds
			s.logger.Error("upload.blob", "filename", f.Filename, "error", err)
		} else {
			out.BlobURL = blob.URL
			blobURLs[f.Filename] = blob.URL
		}
	}

	doc, err := s.reader.Read(ctx, f.Filename, bytes.NewReader(raw))
	if err != nil {
		out.Error = err.Error()
		// keep the archived file on the record even when unreadable
		batch.Add(&entity.PartialRecord{DocType: entity.DocUnknown, Filename: f.Filename, Ignored: true})
		return out
	}

	docType := classify.ForFile(doc.Text, f.Filename)
	out.DocType = docType

	rec, rep := s.extractor.Extract(docType, doc.Text, doc.Tables)
	rec.Filename = f.Filename
	out.SkippedRows = len(rep.Skipped)
	batch.Add(rec)
	return out
}
