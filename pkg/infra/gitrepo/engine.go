// Package gitrepo implements the mirror engine on top of go-git. Each
// mirror keeps a bare cache repository with two named remotes: the GitHub
// source and the Hugging Face target. A sync fetches the branch from the
// source into the cache and pushes it on to the target.
package gitrepo

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

const (
	remoteSource = "github"
	remoteTarget = "hub"
)

// Engine runs mirror operations against a local cache directory. It is
// not safe for concurrent use on the same mirror; callers serialize runs
// per mirror name.
type Engine struct {
	cacheDir   string
	sourceAuth transport.AuthMethod
	targetAuth transport.AuthMethod
	progress   io.Writer
	sourceURL  func(*model.Mirror) string
	targetURL  func(*model.Mirror) string
}

// New creates an Engine storing bare caches under cacheDir
func New(cacheDir string, options ...Option) *Engine {
	cacheDir, _ = filepath.Abs(cacheDir)
	e := &Engine{
		cacheDir: cacheDir,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// CachePath returns the bare repository path for a mirror
func (e *Engine) CachePath(mirror *model.Mirror) string {
	return filepath.Join(e.cacheDir, mirror.Name+".git")
}

func (e *Engine) resolveSourceURL(mirror *model.Mirror) string {
	if e.sourceURL != nil {
		return e.sourceURL(mirror)
	}
	return mirror.Source.CloneURL()
}

func (e *Engine) resolveTargetURL(mirror *model.Mirror) string {
	if e.targetURL != nil {
		return e.targetURL(mirror)
	}
	return mirror.Target.CloneURL()
}

// Sync updates the cache from the source remote and pushes the branch to
// the target remote. In the case of a malformed cache it deletes the
// cache and re-clones once before giving up.
func (e *Engine) Sync(ctx context.Context, mirror *model.Mirror, trigger types.Trigger) (*model.SyncReport, error) {
	logger := ctxlog.From(ctx)
	report := model.NewSyncReport(mirror.Name, mirror.Branch, trigger)

	repo, err := e.prepare(ctx, mirror)
	if err != nil {
		return nil, err
	}

	if err := e.reconcileRemote(repo, remoteSource, e.resolveSourceURL(mirror)); err != nil {
		return nil, err
	}
	if err := e.reconcileRemote(repo, remoteTarget, e.resolveTargetURL(mirror)); err != nil {
		return nil, err
	}

	targetHead, err := e.lsRemoteHead(ctx, e.resolveTargetURL(mirror), e.targetAuth, mirror.Branch)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve target head", goerr.V("mirror", mirror.Name))
	}
	report.BeforeHead = targetHead

	logger.Debug("fetching from source",
		"mirror", mirror.Name,
		"remote", e.resolveSourceURL(mirror),
		"branch", mirror.Branch,
	)
	fetchSpec := gitconfig.RefSpec("+" + mirror.Branch.Ref() + ":" + mirror.Branch.Ref())
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteSource,
		RefSpecs:   []gitconfig.RefSpec{fetchSpec},
		Auth:       e.sourceAuth,
		Progress:   e.progress,
		Force:      true,
	})
	switch err {
	case nil, git.NoErrAlreadyUpToDate:
	default:
		return nil, goerr.Wrap(err, "failed to fetch from source",
			goerr.V("mirror", mirror.Name),
			goerr.V("branch", mirror.Branch),
		)
	}

	localRef, err := repo.Reference(plumbing.ReferenceName(mirror.Branch.Ref()), true)
	if err != nil {
		return nil, goerr.Wrap(err, "branch missing after fetch",
			goerr.V("mirror", mirror.Name),
			goerr.V("branch", mirror.Branch),
		)
	}
	report.AfterHead = types.CommitSHA(localRef.Hash().String())

	if report.AfterHead == report.BeforeHead {
		report.UpToDate = true
		report.Duration = time.Since(report.StartedAt)
		logger.Info("mirror already up to date",
			"mirror", mirror.Name,
			"head", report.AfterHead.Short(),
		)
		return report, nil
	}

	pushSpec := gitconfig.RefSpec(mirror.Branch.Ref() + ":" + mirror.Branch.Ref())
	if mirror.Force {
		pushSpec = "+" + pushSpec
	}

	logger.Debug("pushing to target",
		"mirror", mirror.Name,
		"remote", e.resolveTargetURL(mirror),
		"branch", mirror.Branch,
		"force", mirror.Force,
	)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteTarget,
		RefSpecs:   []gitconfig.RefSpec{pushSpec},
		Auth:       e.targetAuth,
		Progress:   e.progress,
	})
	switch {
	case err == nil:
		report.Pushed = true
	case err == git.NoErrAlreadyUpToDate:
		report.UpToDate = true
	case isNonFastForward(err):
		return nil, goerr.Wrap(model.ErrHistoryDiverged, "push rejected",
			goerr.V("mirror", mirror.Name),
			goerr.V("source_head", report.AfterHead),
			goerr.V("target_head", report.BeforeHead),
		)
	default:
		return nil, goerr.Wrap(err, "failed to push to target",
			goerr.V("mirror", mirror.Name),
			goerr.V("branch", mirror.Branch),
		)
	}

	report.Duration = time.Since(report.StartedAt)
	logger.Info("mirror synchronized",
		"mirror", mirror.Name,
		"before", report.BeforeHead.Short(),
		"after", report.AfterHead.Short(),
		"duration", report.Duration,
	)
	return report, nil
}

// Heads resolves the branch head on both remotes via their ref
// advertisements, without touching the local cache.
func (e *Engine) Heads(ctx context.Context, mirror *model.Mirror) (source, target types.CommitSHA, err error) {
	source, err = e.lsRemoteHead(ctx, e.resolveSourceURL(mirror), e.sourceAuth, mirror.Branch)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to list source refs", goerr.V("mirror", mirror.Name))
	}
	target, err = e.lsRemoteHead(ctx, e.resolveTargetURL(mirror), e.targetAuth, mirror.Branch)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to list target refs", goerr.V("mirror", mirror.Name))
	}
	return source, target, nil
}

// prepare opens the cache repository, cloning it when absent. A cache
// whose HEAD cannot be resolved is deleted and re-cloned once.
func (e *Engine) prepare(ctx context.Context, mirror *model.Mirror) (*git.Repository, error) {
	const attempts = 2
	path := e.CachePath(mirror)

	for i := 0; i < attempts; i++ {
		repo, cloned, err := e.openOrClone(ctx, path, mirror)
		if err != nil {
			return nil, err
		}

		if _, err := repo.Head(); err == nil {
			return repo, nil
		}

		if cloned {
			return nil, goerr.New("cloned repository has no HEAD", goerr.V("path", path))
		}

		ctxlog.From(ctx).Warn("cache repository is malformed, deleting and re-cloning",
			"mirror", mirror.Name,
			"path", path,
		)
		if err := e.deleteCache(path); err != nil {
			return nil, err
		}
	}

	return nil, goerr.New("failed to prepare cache repository", goerr.V("path", path))
}

func (e *Engine) openOrClone(ctx context.Context, path string, mirror *model.Mirror) (repo *git.Repository, cloned bool, err error) {
	repo, err = git.PlainOpen(path)
	switch err {
	case nil:
		return repo, false, nil
	case git.ErrRepositoryNotExists:
		repo, err = git.PlainCloneContext(ctx, path, true, &git.CloneOptions{
			URL:           e.resolveSourceURL(mirror),
			RemoteName:    remoteSource,
			ReferenceName: plumbing.ReferenceName(mirror.Branch.Ref()),
			SingleBranch:  true,
			Auth:          e.sourceAuth,
			Progress:      e.progress,
		})
		if err != nil {
			return nil, false, goerr.Wrap(err, "failed to clone source",
				goerr.V("mirror", mirror.Name),
				goerr.V("url", e.resolveSourceURL(mirror)),
			)
		}
		return repo, true, nil
	default:
		return nil, false, goerr.Wrap(err, "failed to open cache repository", goerr.V("path", path))
	}
}

// reconcileRemote makes the named remote point at exactly the given URL,
// recreating it when the configuration drifted.
func (e *Engine) reconcileRemote(repo *git.Repository, name, url string) error {
	cfg := gitconfig.RemoteConfig{
		Name: name,
		URLs: []string{url},
	}

	remote, err := repo.Remote(name)
	switch err {
	case git.ErrRemoteNotFound:
		_, err = repo.CreateRemote(&cfg)
		return err
	case nil:
		urls := remote.Config().URLs
		if len(urls) == 1 && urls[0] == url {
			return nil
		}
		if err := repo.DeleteRemote(name); err != nil {
			return err
		}
		_, err = repo.CreateRemote(&cfg)
		return err
	default:
		return err
	}
}

// deleteCache removes the bare cache directory after sanity checks
func (e *Engine) deleteCache(path string) error {
	if !strings.HasSuffix(path, ".git") || !strings.HasPrefix(path, e.cacheDir) {
		return goerr.New("refusing to delete path outside cache directory", goerr.V("path", path))
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return goerr.Wrap(err, "failed to stat cache path", goerr.V("path", path))
	}
	if !info.IsDir() {
		return goerr.New("cache path is not a directory", goerr.V("path", path))
	}

	return os.RemoveAll(path)
}

// lsRemoteHead lists refs advertised by a remote and returns the head of
// the branch, or an empty hash when the branch does not exist.
func (e *Engine) lsRemoteHead(ctx context.Context, url string, auth transport.AuthMethod, branch types.BranchName) (types.CommitSHA, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: auth})
	if err != nil {
		return "", err
	}

	want := plumbing.ReferenceName(branch.Ref())
	for _, ref := range refs {
		if ref.Name() == want {
			return types.CommitSHA(ref.Hash().String()), nil
		}
	}
	return "", nil
}

// isNonFastForward detects a push rejected because the target holds
// history the source does not. go-git reports this per ref without a
// sentinel error, so the message is matched.
func isNonFastForward(err error) bool {
	return err != nil && strings.Contains(err.Error(), "non-fast-forward")
}
