package method

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/linecard/recorder/cmd/cli/param"
	"github.com/linecard/recorder/cmd/cli/view"
	"github.com/linecard/recorder/pkg/convention/config"
	"github.com/linecard/recorder/pkg/convention/recorder"
	"github.com/linecard/recorder/pkg/convention/workitem"
	"github.com/linecard/recorder/pkg/sdk"

	"github.com/rs/zerolog/log"
)

func ListTargets(ctx context.Context, api sdk.API, p *param.Targets) error {
	targets, err := api.Target.Collect(ctx, p.Account)
	if err != nil {
		return fmt.Errorf("failed to resolve targets: %w", err)
	}

	fmt.Println(view.Targets(targets, api.Config.Excluded))
	return nil
}

func DispatchEvent(ctx context.Context, api sdk.API, p *param.Dispatch) error {
	if err := api.Config.Require(config.HandlerProducer); err != nil {
		return err
	}

	raw, err := os.ReadFile(p.Event)
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	started := time.Now()
	report, err := api.Dispatch.Dispatch(ctx, raw)
	if err != nil {
		return err
	}

	fmt.Println(view.Report(report, started))

	if err := report.Err(); err != nil {
		log.Warn().Err(err).Msg("dispatch completed with failures")
	}

	return nil
}

func ApplyRecorder(ctx context.Context, api sdk.API, p *param.Apply) error {
	var result recorder.Result
	var err error

	item := workitem.WorkItem{
		Account: p.Account,
		Region:  p.Region,
		Event:   p.Event,
	}

	if p.DryRun {
		result, err = api.Recorder.Plan(ctx, item)
	} else {
		result, err = api.Recorder.Apply(ctx, item)
	}

	if err != nil {
		return err
	}

	fmt.Println(view.Result(result))
	return nil
}

func PrintConfig(ctx context.Context, api sdk.API, p *param.Config) error {
	cJson, err := api.Config.Json()
	if err != nil {
		return fmt.Errorf("failed to print configuration: %w", err)
	}

	fmt.Println(cJson)
	return nil
}
