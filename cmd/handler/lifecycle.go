package handler

import (
	"context"

	"github.com/linecard/recorder/internal/umwelt"
	"github.com/linecard/recorder/internal/util"
	"github.com/linecard/recorder/pkg/convention/config"
	"github.com/linecard/recorder/pkg/sdk"
	"github.com/linecard/recorder/pkg/service/identity"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BeforeAll runs once per cold start. Configuration failures are fatal so a
// misconfigured function never processes an event.
func BeforeAll(ctx context.Context) {
	var err error

	util.SetLogLevel(zerolog.InfoLevel)

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

	if cfg, err = config.FromHere(here); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration from environment")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)

	if err := cfg.Require(cfg.Handler); err != nil {
		log.Fatal().Err(err).Msg("invalid handler configuration")
	}

	if api, err = sdk.Init(ctx, awsConfig, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize SDK")
	}

	log.Info().
		Str("handler", cfg.Handler).
		Str("account", cfg.Caller.Account).
		Strs("excluded", cfg.Excluded.List()).
		Msg("initialized")
}

// BeforeEach derives the invocation logger from the Lambda request.
func BeforeEach(ctx context.Context) context.Context {
	logger := log.With().Str("handler", cfg.Handler)

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.Str("request", lc.AwsRequestID)
	}

	return logger.Logger().WithContext(ctx)
}
