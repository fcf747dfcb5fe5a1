package merge

import (
	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/metrics"
)

// State is the lifecycle of one upload batch.
type State string

const (
	StateAwaitingPrimary   State = "AWAITING_PRIMARY"
	StatePrimaryExtracted  State = "PRIMARY_EXTRACTED"
	StateSupplementPending State = "SUPPLEMENT_PENDING"
	StateComplete          State = "COMPLETE"
	StateRejected          State = "REJECTED"
)

// Batch accumulates one upload's partial records. Documents arrive in any
// order; the batch is only viable once the primary box score is present.
type Batch struct {
	state       State
	base        *entity.PartialRecord
	supplements []*entity.PartialRecord
}

func NewBatch() *Batch {
	return &Batch{state: StateAwaitingPrimary}
}

func (b *Batch) State() State { return b.state }

// Add registers one extracted partial. A second primary box score
// supersedes the first; supplements accumulate.
func (b *Batch) Add(rec *entity.PartialRecord) {
	if rec == nil || b.state == StateComplete || b.state == StateRejected {
		return
	}
	if rec.DocType == entity.DocBoxScore && !rec.Ignored {
		b.base = rec
		if len(b.supplements) == 0 {
			b.state = StatePrimaryExtracted
		} else {
			b.state = StateSupplementPending
		}
		return
	}
	b.supplements = append(b.supplements, rec)
	if b.base != nil {
		b.state = StateSupplementPending
	}
}

// Finalize merges the batch and computes the derived metrics. Without a
// primary box score the batch is terminally rejected and nothing is
// returned for persistence.
func (b *Batch) Finalize(m *Merger) (*entity.Match, *Report, error) {
	if b.base == nil {
		b.state = StateRejected
		return nil, nil, common.ErrMissingPrimary
	}
	rec, rep, err := m.Merge(b.base, b.supplements...)
	if err != nil {
		b.state = StateRejected
		return nil, nil, err
	}
	metrics.Finalize(rec)
	b.state = StateComplete
	return rec, rep, nil
}
