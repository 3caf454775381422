package gitrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	gitclient "github.com/go-git/go-git/v5/plumbing/transport/client"
	gitserver "github.com/go-git/go-git/v5/plumbing/transport/server"
	"github.com/m-mizutani/gt"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

var localTransportOnce sync.Once

// useLocalTransport serves local paths in-process instead of execing the
// git-upload-pack binaries, so the tests run without git installed.
func useLocalTransport() {
	localTransportOnce.Do(func() {
		gitclient.InstallProtocol("file",
			gitserver.NewClient(gitserver.NewFilesystemLoader(osfs.New(""))))
	})
}

// syncFixture holds a local source repository with a worktree and a bare
// target repository seeded with the source's initial commit.
type syncFixture struct {
	engine    *Engine
	mirror    *model.Mirror
	seed      *git.Repository
	work      *git.Worktree
	seedDir   string
	targetURL string
	initial   plumbing.Hash
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	useLocalTransport()

	root := t.TempDir()
	seedDir := filepath.Join(root, "seed")
	targetDir := filepath.Join(root, "target.git")

	seed := gt.R1(git.PlainInitWithOptions(seedDir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
	})).NoError(t)
	gt.R1(git.PlainInitWithOptions(targetDir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
		Bare:        true,
	})).NoError(t)

	fx := &syncFixture{
		engine: New(filepath.Join(root, "cache"), WithRemoteURLs(
			func(*model.Mirror) string { return filepath.Join(seedDir, ".git") },
			func(*model.Mirror) string { return targetDir },
		)),
		mirror: &model.Mirror{
			Name:   "dashboard",
			Source: model.GitHubRepo{Slug: "acme/dashboard"},
			Target: model.HubRepo{Slug: "acme/dashboard", Kind: types.RepoKindSpace},
			Branch: "main",
		},
		seed:      seed,
		work:      gt.R1(seed.Worktree()).NoError(t),
		seedDir:   seedDir,
		targetURL: targetDir,
	}

	fx.initial = fx.commit(t, "app.py", "print('v1')\n", "initial")
	gt.R1(seed.CreateRemote(&gitconfig.RemoteConfig{
		Name: "target",
		URLs: []string{targetDir},
	})).NoError(t)
	fx.pushToTarget(t)
	return fx
}

func (fx *syncFixture) commit(t *testing.T, name, content, msg string) plumbing.Hash {
	t.Helper()
	gt.NoError(t, os.WriteFile(filepath.Join(fx.seedDir, name), []byte(content), 0o644))
	gt.R1(fx.work.Add(name)).NoError(t)
	return gt.R1(fx.work.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})).NoError(t)
}

func (fx *syncFixture) pushToTarget(t *testing.T) {
	t.Helper()
	gt.NoError(t, fx.seed.Push(&git.PushOptions{
		RemoteName: "target",
		RefSpecs:   []gitconfig.RefSpec{"+refs/heads/main:refs/heads/main"},
	}))
}

func (fx *syncFixture) reset(t *testing.T, to plumbing.Hash) {
	t.Helper()
	gt.NoError(t, fx.work.Reset(&git.ResetOptions{Commit: to, Mode: git.HardReset}))
}

func (fx *syncFixture) targetHead(t *testing.T) types.CommitSHA {
	t.Helper()
	return gt.R1(fx.engine.lsRemoteHead(context.Background(), fx.targetURL, nil, "main")).NoError(t)
}

func TestSync_PushesSourceHistory(t *testing.T) {
	fx := newSyncFixture(t)
	b := fx.commit(t, "app.py", "print('v2')\n", "second")

	report := gt.R1(fx.engine.Sync(context.Background(), fx.mirror, types.TriggerManual)).NoError(t)
	gt.True(t, report.Pushed)
	gt.Equal(t, report.BeforeHead, types.CommitSHA(fx.initial.String()))
	gt.Equal(t, report.AfterHead, types.CommitSHA(b.String()))
	gt.Equal(t, fx.targetHead(t), types.CommitSHA(b.String()))

	// A second run finds both sides equal
	report = gt.R1(fx.engine.Sync(context.Background(), fx.mirror, types.TriggerManual)).NoError(t)
	gt.True(t, report.UpToDate)
	gt.False(t, report.Pushed)
}

func TestSync_DivergedTargetRefused(t *testing.T) {
	fx := newSyncFixture(t)

	// Commit directly on the target, then rewind the source and commit
	// something else so the histories diverge after the initial commit.
	c := fx.commit(t, "app.py", "hub-side edit\n", "hub edit")
	fx.pushToTarget(t)
	fx.reset(t, fx.initial)
	b := fx.commit(t, "app.py", "github-side edit\n", "github edit")

	_, err := fx.engine.Sync(context.Background(), fx.mirror, types.TriggerManual)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrHistoryDiverged))

	// Refusal leaves the target untouched
	gt.Equal(t, fx.targetHead(t), types.CommitSHA(c.String()))

	// Force opts into overwriting the diverged history
	fx.mirror.Force = true
	report := gt.R1(fx.engine.Sync(context.Background(), fx.mirror, types.TriggerManual)).NoError(t)
	gt.True(t, report.Pushed)
	gt.Equal(t, fx.targetHead(t), types.CommitSHA(b.String()))
}

func TestHeads(t *testing.T) {
	fx := newSyncFixture(t)
	b := fx.commit(t, "app.py", "print('v2')\n", "second")

	source, target, err := fx.engine.Heads(context.Background(), fx.mirror)
	gt.NoError(t, err)
	gt.Equal(t, source, types.CommitSHA(b.String()))
	gt.Equal(t, target, types.CommitSHA(fx.initial.String()))
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	engine := New(dir)

	mirror := &model.Mirror{Name: "dashboard"}
	gt.Equal(t, engine.CachePath(mirror), filepath.Join(dir, "dashboard.git"))
}

func TestReconcileRemote(t *testing.T) {
	dir := t.TempDir()
	repo := gt.R1(git.PlainInit(dir, true)).NoError(t)
	engine := New(t.TempDir())

	// Creates the remote when missing
	gt.NoError(t, engine.reconcileRemote(repo, "hub", "https://huggingface.co/spaces/acme/dashboard"))
	remote := gt.R1(repo.Remote("hub")).NoError(t)
	gt.Equal(t, remote.Config().URLs, []string{"https://huggingface.co/spaces/acme/dashboard"})

	// Matching URL is left alone
	gt.NoError(t, engine.reconcileRemote(repo, "hub", "https://huggingface.co/spaces/acme/dashboard"))

	// Drifted URL is replaced
	gt.NoError(t, engine.reconcileRemote(repo, "hub", "https://huggingface.co/spaces/acme/other"))
	remote = gt.R1(repo.Remote("hub")).NoError(t)
	gt.Equal(t, remote.Config().URLs, []string{"https://huggingface.co/spaces/acme/other"})
}

func TestDeleteCache(t *testing.T) {
	dir := t.TempDir()
	engine := New(dir)

	t.Run("refuses path without git suffix", func(t *testing.T) {
		err := engine.deleteCache(filepath.Join(dir, "dashboard"))
		gt.Error(t, err)
	})

	t.Run("refuses path outside cache directory", func(t *testing.T) {
		err := engine.deleteCache("/tmp/elsewhere/dashboard.git")
		gt.Error(t, err)
	})

	t.Run("missing path is not an error", func(t *testing.T) {
		gt.NoError(t, engine.deleteCache(filepath.Join(dir, "gone.git")))
	})

	t.Run("removes cache directory", func(t *testing.T) {
		path := filepath.Join(dir, "dashboard.git")
		gt.NoError(t, os.MkdirAll(filepath.Join(path, "refs"), 0o755))

		gt.NoError(t, engine.deleteCache(path))

		_, err := os.Stat(path)
		gt.True(t, os.IsNotExist(err))
	})
}

func TestIsNonFastForward(t *testing.T) {
	gt.True(t, isNonFastForward(errors.New("command error on refs/heads/main: non-fast-forward update")))
	gt.False(t, isNonFastForward(errors.New("authentication required")))
	gt.False(t, isNonFastForward(nil))
}
