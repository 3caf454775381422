package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/domain/interfaces"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
	"github.com/spacesync-dev/spacesync/pkg/utils/metrics"
)

type syncUseCase struct {
	engine   interfaces.MirrorEngine
	mirrors  []*model.Mirror
	notifier interfaces.Notifier

	// The engine is not safe for concurrent runs on the same mirror;
	// webhook deliveries and the schedule ticker may overlap.
	locks map[string]*sync.Mutex
}

// SyncOption configures the sync use case
type SyncOption func(*syncUseCase)

// WithNotifier sets the notifier for sync outcomes
func WithNotifier(n interfaces.Notifier) SyncOption {
	return func(uc *syncUseCase) {
		uc.notifier = n
	}
}

// NewSync creates a new instance of SyncUseCase
func NewSync(engine interfaces.MirrorEngine, mirrors []*model.Mirror, options ...SyncOption) interfaces.SyncUseCase {
	uc := &syncUseCase{
		engine:  engine,
		mirrors: mirrors,
		locks:   make(map[string]*sync.Mutex, len(mirrors)),
	}
	for _, m := range mirrors {
		uc.locks[m.Name] = &sync.Mutex{}
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}

// SyncMirror runs a single mirror by name
func (uc *syncUseCase) SyncMirror(ctx context.Context, name string, trigger types.Trigger) (*model.SyncReport, error) {
	mirror := uc.findMirror(name)
	if mirror == nil {
		return nil, goerr.Wrap(model.ErrMirrorNotFound, "unknown mirror", goerr.V("mirror", name))
	}
	return uc.run(ctx, mirror, trigger)
}

// SyncAll runs every configured mirror, continuing past failures
func (uc *syncUseCase) SyncAll(ctx context.Context, trigger types.Trigger) ([]*model.SyncReport, error) {
	logger := ctxlog.From(ctx)

	var reports []*model.SyncReport
	var errs []error
	for _, mirror := range uc.mirrors {
		report, err := uc.run(ctx, mirror, trigger)
		if err != nil {
			logger.Error("mirror run failed",
				"mirror", mirror.Name,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}

func (uc *syncUseCase) run(ctx context.Context, mirror *model.Mirror, trigger types.Trigger) (*model.SyncReport, error) {
	logger := ctxlog.From(ctx)

	lock := uc.locks[mirror.Name]
	lock.Lock()
	defer lock.Unlock()

	logger.Info("starting mirror run",
		"mirror", mirror.Name,
		"branch", mirror.Branch,
		"trigger", trigger,
	)

	start := time.Now()
	report, err := uc.engine.Sync(ctx, mirror, trigger)
	if err != nil {
		metrics.ObserveSync(mirror.Name, string(trigger), time.Since(start), err)
		sentry.CaptureException(err)
		uc.notifyFailure(ctx, mirror.Name, err)
		return nil, err
	}

	metrics.ObserveSync(mirror.Name, string(trigger), report.Duration, nil)
	uc.notifyResult(ctx, report)
	return report, nil
}

func (uc *syncUseCase) findMirror(name string) *model.Mirror {
	for _, m := range uc.mirrors {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (uc *syncUseCase) notifyResult(ctx context.Context, report *model.SyncReport) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifySyncResult(ctx, report); err != nil {
		ctxlog.From(ctx).Warn("failed to send notification",
			"mirror", report.Mirror,
			"error", err,
		)
	}
}

func (uc *syncUseCase) notifyFailure(ctx context.Context, mirror string, syncErr error) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifySyncFailure(ctx, mirror, syncErr); err != nil {
		ctxlog.From(ctx).Warn("failed to send notification",
			"mirror", mirror,
			"error", err,
		)
	}
}
