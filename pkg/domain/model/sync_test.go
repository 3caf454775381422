package model_test

import (
	"testing"

	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
)

func TestVerifyReport_Classify(t *testing.T) {
	tests := []struct {
		name   string
		source types.CommitSHA
		target types.CommitSHA
		want   model.SyncState
	}{
		{
			name:   "identical heads",
			source: "aaaa",
			target: "aaaa",
			want:   model.StateInSync,
		},
		{
			name:   "different heads",
			source: "aaaa",
			target: "bbbb",
			want:   model.StatePending,
		},
		{
			name:   "target branch missing",
			source: "aaaa",
			target: "",
			want:   model.StateMissingBranch,
		},
		{
			name:   "source branch missing",
			source: "",
			target: "bbbb",
			want:   model.StateMissingBranch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &model.VerifyReport{
				SourceHead: tt.source,
				TargetHead: tt.target,
			}
			report.Classify()
			if report.State != tt.want {
				t.Errorf("Classify() state = %v, want %v", report.State, tt.want)
			}
		})
	}
}

func TestNewSyncReport(t *testing.T) {
	report := model.NewSyncReport("dashboard", "main", types.TriggerWebhook)

	if report.ID == "" {
		t.Error("report ID should not be empty")
	}
	if report.Mirror != "dashboard" {
		t.Errorf("Mirror = %v, want dashboard", report.Mirror)
	}
	if report.Trigger != types.TriggerWebhook {
		t.Errorf("Trigger = %v, want webhook", report.Trigger)
	}
	if report.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
}
