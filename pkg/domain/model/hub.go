package model

import "github.com/spacesync-dev/spacesync/pkg/domain/types"

// HubIdentity is the owner of a Hugging Face access token
type HubIdentity struct {
	Name string // Account name
	Type string // "user" or "org"
}

// HubRepoInfo is the hub API view of a repository
type HubRepoInfo struct {
	ID        string          // Repository id as reported by the hub
	SHA       types.CommitSHA // Head commit of the default revision
	Private   bool            // Visibility
	FileCount int             // Number of files (siblings) on the head revision
}
