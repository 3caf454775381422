package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/domain/interfaces"
	"github.com/spacesync-dev/spacesync/pkg/domain/model"
)

type verifyUseCase struct {
	engine  interfaces.MirrorEngine
	mirrors []*model.Mirror
}

// NewVerify creates a new instance of VerifyUseCase
func NewVerify(engine interfaces.MirrorEngine, mirrors []*model.Mirror) interfaces.VerifyUseCase {
	return &verifyUseCase{
		engine:  engine,
		mirrors: mirrors,
	}
}

// VerifyMirror compares the branch heads of a single mirror
func (uc *verifyUseCase) VerifyMirror(ctx context.Context, name string) (*model.VerifyReport, error) {
	for _, mirror := range uc.mirrors {
		if mirror.Name == name {
			return uc.verify(ctx, mirror)
		}
	}
	return nil, goerr.Wrap(model.ErrMirrorNotFound, "unknown mirror", goerr.V("mirror", name))
}

// VerifyAll compares the branch heads of every configured mirror
func (uc *verifyUseCase) VerifyAll(ctx context.Context) ([]*model.VerifyReport, error) {
	reports := make([]*model.VerifyReport, 0, len(uc.mirrors))
	for _, mirror := range uc.mirrors {
		report, err := uc.verify(ctx, mirror)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (uc *verifyUseCase) verify(ctx context.Context, mirror *model.Mirror) (*model.VerifyReport, error) {
	source, target, err := uc.engine.Heads(ctx, mirror)
	if err != nil {
		return nil, err
	}

	report := &model.VerifyReport{
		Mirror:     mirror.Name,
		Branch:     mirror.Branch,
		SourceHead: source,
		TargetHead: target,
	}
	report.Classify()
	return report, nil
}
