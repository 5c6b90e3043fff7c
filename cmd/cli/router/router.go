package router

import (
	"context"
	"os"

	"github.com/linecard/recorder/cmd/cli/method"
	"github.com/linecard/recorder/cmd/cli/param"
	"github.com/linecard/recorder/pkg/sdk"

	"github.com/alexflint/go-arg"
)

type Root struct {
	param.GlobalOpts
	Targets  *param.Targets  `arg:"subcommand:targets" help:"List baseline targets"`
	Dispatch *param.Dispatch `arg:"subcommand:dispatch" help:"Fan an event out to the queue"`
	Apply    *param.Apply    `arg:"subcommand:apply" help:"Apply the recorder policy to one target"`
	Config   *param.Config   `arg:"subcommand:config" help:"Print configuration"`
}

func (Root) Description() string {
	return "Reapplies the AWS Config recorder policy across the organization.\n"
}

func (c Root) Route(ctx context.Context, api sdk.API) error {
	switch {
	case c.Targets != nil:
		return method.ListTargets(ctx, api, c.Targets)

	case c.Dispatch != nil:
		return method.DispatchEvent(ctx, api, c.Dispatch)

	case c.Apply != nil:
		return method.ApplyRecorder(ctx, api, c.Apply)

	case c.Config != nil:
		return method.PrintConfig(ctx, api, c.Config)

	default:
		arg.MustParse(&c).WriteHelp(os.Stdout)
	}

	return nil
}
