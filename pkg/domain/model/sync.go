package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

// SyncReport describes the outcome of one mirror run
type SyncReport struct {
	ID         string           // Job ID
	Mirror     string           // Mirror name
	Trigger    types.Trigger    // What started the run
	Branch     types.BranchName // Synchronized branch
	BeforeHead types.CommitSHA  // Target head before the push (empty on first sync)
	AfterHead  types.CommitSHA  // Source head that was pushed
	Pushed     bool             // Whether the target accepted new history
	UpToDate   bool             // Whether both sides already matched
	StartedAt  time.Time
	Duration   time.Duration
}

// NewSyncReport creates a report with a fresh job ID
func NewSyncReport(mirror string, branch types.BranchName, trigger types.Trigger) *SyncReport {
	return &SyncReport{
		ID:        uuid.NewString(),
		Mirror:    mirror,
		Branch:    branch,
		Trigger:   trigger,
		StartedAt: time.Now(),
	}
}

// SyncState classifies the relationship between source and target heads
type SyncState string

const (
	StateInSync        SyncState = "in_sync"
	StatePending       SyncState = "pending"
	StateDiverged      SyncState = "diverged"
	StateMissingBranch SyncState = "missing_branch"
)

// VerifyReport describes the head comparison of one mirror
type VerifyReport struct {
	Mirror     string
	Branch     types.BranchName
	SourceHead types.CommitSHA
	TargetHead types.CommitSHA
	State      SyncState
}

// Classify derives the sync state from the two heads. Divergence cannot
// be decided from refs alone, so a mismatch reports as pending; the
// engine detects true divergence when it pushes.
func (r *VerifyReport) Classify() {
	switch {
	case r.SourceHead.IsZero():
		r.State = StateMissingBranch
	case r.TargetHead.IsZero():
		r.State = StateMissingBranch
	case r.SourceHead == r.TargetHead:
		r.State = StateInSync
	default:
		r.State = StatePending
	}
}
