package types

// Version is the application version, overwritten at build time via ldflags.
var Version = "dev"

// BranchName is a git branch name without the refs/heads/ prefix
type BranchName string

func (b BranchName) String() string {
	return string(b)
}

// Ref returns the fully qualified reference name for the branch
func (b BranchName) Ref() string {
	return "refs/heads/" + string(b)
}

// CommitSHA is a git commit hash
type CommitSHA string

func (s CommitSHA) String() string {
	return string(s)
}

// Short returns the abbreviated hash used in log output
func (s CommitSHA) Short() string {
	if len(s) > 8 {
		return string(s[:8])
	}
	return string(s)
}

// IsZero reports whether the hash is empty
func (s CommitSHA) IsZero() bool {
	return s == ""
}

// Trigger identifies what started a sync run
type Trigger string

const (
	TriggerManual   Trigger = "manual"
	TriggerWebhook  Trigger = "webhook"
	TriggerSchedule Trigger = "schedule"
)

// RepoKind is the Hugging Face hub repository type
type RepoKind string

const (
	RepoKindSpace   RepoKind = "space"
	RepoKindModel   RepoKind = "model"
	RepoKindDataset RepoKind = "dataset"
)

// IsValid reports whether the kind is one of the hub repository types
func (k RepoKind) IsValid() bool {
	switch k {
	case RepoKindSpace, RepoKindModel, RepoKindDataset:
		return true
	default:
		return false
	}
}
