package cli

import (
	"context"
	"os"

	"github.com/linecard/recorder/internal/umwelt"
	"github.com/linecard/recorder/internal/util"
	"github.com/linecard/recorder/pkg/convention/config"
	"github.com/linecard/recorder/pkg/sdk"
	"github.com/linecard/recorder/pkg/service/identity"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func BeforeAll(ctx context.Context) sdk.API {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()
	util.SetLogLevel(zerolog.WarnLevel)

	retryLogger := util.RetryLogger{
		Log: &log.Logger,
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithLogger(&retryLogger),
		awsconfig.WithClientLogMode(aws.LogRetries))

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS configuration")
	}

	here, err := umwelt.FromEnv(ctx, awsConfig, identity.FromClients(sts.NewFromConfig(awsConfig)))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to discover environment")
	}

	cfg, err := config.FromHere(here)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration from environment")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)

	api, err := sdk.Init(ctx, awsConfig, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize SDK")
	}

	return api
}
