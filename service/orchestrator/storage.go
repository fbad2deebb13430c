package orchestrator

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/storage"
)

func (s *service) persistRunIfEnabled(ctx context.Context, flags model.QueryFlags, run *Run) error {
	if s.storageService == nil || !flags.Store {
		return nil
	}

	flagsJSON, _ := json.Marshal(flags)
	runID, err := s.storageService.SaveRun(ctx, storage.SaveRunInput{
		RunUUID:     run.UUID,
		AccountID:   run.AccountID,
		Profile:     flags.Profile,
		DurationSec: int64(run.Duration.Seconds()),
		Version:     s.versionInfo.Version,
		FlagsJSON:   string(flagsJSON),
		Results:     run.Summary.Results(),
	})
	if err != nil {
		return err
	}
	slog.Info("stored run", "run_id", runID, "uuid", run.UUID)
	return nil
}
