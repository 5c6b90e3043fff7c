package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/linecard/recorder/internal/umwelt"
	"github.com/linecard/recorder/internal/util"
	"github.com/linecard/recorder/pkg/convention/exclusion"
	"github.com/linecard/recorder/pkg/convention/policy"

	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FromHere validates the discovered environment once, at process start.
func FromHere(here umwelt.Here) (c Config, err error) {
	c.Caller.Arn = here.Caller.Arn
	c.Caller.Account = here.Caller.Account
	c.Caller.Partition = here.Caller.Partition
	c.Caller.Region = here.Caller.Region

	c.Queue.Url = here.Queue.Url

	c.Baseline.StackSetName = here.Baseline.StackSetName
	c.Baseline.ExecutionRole = here.Baseline.ExecutionRole

	c.Recorder.DefaultName = DefaultRecorderName

	c.Recorder.Strategy = strings.ToUpper(here.Recorder.Strategy)
	if c.Recorder.Strategy != StrategyExclusion {
		log.Warn().
			Str("strategy", c.Recorder.Strategy).
			Msg("unsupported recorder strategy, applying exclusion strategy")
	}

	frequency := types.RecordingFrequency(strings.ToUpper(here.Recorder.DefaultFrequency))
	if !slices.Contains(frequency.Values(), frequency) {
		return c, fmt.Errorf("invalid %s %q, expecting one of %v", umwelt.EnvRecorderFrequency, here.Recorder.DefaultFrequency, frequency.Values())
	}
	c.Recorder.DefaultFrequency = frequency

	if c.Recorder.Continuous, err = policy.ParseMapping(here.Recorder.ResourceTypesMapping); err != nil {
		return c, fmt.Errorf("%s: %w", umwelt.EnvResourceTypesMap, err)
	}

	if c.Recorder.Exclusions, err = policy.ParseMapping(here.Recorder.ExclusionsMapping); err != nil {
		return c, fmt.Errorf("%s: %w", umwelt.EnvExclusionsMap, err)
	}

	c.Excluded = exclusion.Parse(here.ExcludedAccounts)

	c.LogLevel = util.ParseLogLevel(here.LogLevel, zerolog.InfoLevel)
	c.Handler = here.Handler

	return c, nil
}

// Require reports configuration a given handler cannot run without.
func (c Config) Require(handler string) error {
	switch handler {
	case HandlerProducer:
		if c.Queue.Url == "" {
			return fmt.Errorf("%s must be set for the %s handler", umwelt.EnvQueueUrl, handler)
		}
	case HandlerConsumer:
	default:
		return fmt.Errorf("unknown handler %q, expecting %s or %s", handler, HandlerProducer, HandlerConsumer)
	}

	return nil
}
