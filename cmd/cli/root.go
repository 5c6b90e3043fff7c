package cli

import (
	"context"
	"os"

	"github.com/linecard/recorder/cmd/cli/router"
	"github.com/linecard/recorder/internal/umwelt"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

func Invoke(ctx context.Context) {
	ctx, span := otel.Tracer("").Start(ctx, "operator")
	defer span.End()

	var root router.Root
	arg.MustParse(&root)

	configEnv(root)

	api := BeforeAll(ctx)

	if err := root.Route(ctx, api); err != nil {
		log.Fatal().Err(err).Strs("argv", os.Args).Msgf("failed command")
	}
}

// Take options given to the CLI and export them to their respective environment variables.
func configEnv(root router.Root) {
	if root.GlobalOpts.QueueUrl != "" {
		os.Setenv(umwelt.EnvQueueUrl, root.GlobalOpts.QueueUrl)
	}

	if root.GlobalOpts.StackSetName != "" {
		os.Setenv(umwelt.EnvStackSetName, root.GlobalOpts.StackSetName)
	}

	if root.GlobalOpts.ExecutionRole != "" {
		os.Setenv(umwelt.EnvExecutionRoleName, root.GlobalOpts.ExecutionRole)
	}

	if root.GlobalOpts.ExcludedAccounts != "" {
		os.Setenv(umwelt.EnvExcludedAccounts, root.GlobalOpts.ExcludedAccounts)
	}
}
