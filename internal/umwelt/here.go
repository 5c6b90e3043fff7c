package umwelt

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/linecard/recorder/internal/util"
)

// https://en.wikipedia.org/wiki/Umwelt
//
// Umwelt (German for "environment" or "surroundings") is used to configure the SDK based on execution context.
// Then name was chosen out of a desire to unburden the term "Config" and more accurately describe the activity of the struct.

type IdentityService interface {
	WhoAmI(ctx context.Context) (*sts.GetCallerIdentityOutput, error)
}

type ThisCaller struct {
	Id        string
	Arn       string
	Account   string
	Partition string
	Region    string
}

type ThisQueue struct {
	Url string
}

type ThisBaseline struct {
	StackSetName  string
	ExecutionRole string
}

type ThisRecorder struct {
	Strategy             string
	DefaultFrequency     string
	ResourceTypesMapping string
	ExclusionsMapping    string
}

type Here struct {
	Caller           ThisCaller
	Queue            ThisQueue
	Baseline         ThisBaseline
	Recorder         ThisRecorder
	ExcludedAccounts string
	LogLevel         string
	Handler          string
}

func FromEnv(ctx context.Context, awsConfig aws.Config, identity IdentityService) (here Here, err error) {
	// Caller
	caller, err := identity.WhoAmI(ctx)
	if err != nil {
		return here, fmt.Errorf("failed to discover caller identity: %w", err)
	}

	here.Caller.Id = aws.ToString(caller.UserId)
	here.Caller.Arn = aws.ToString(caller.Arn)
	here.Caller.Account = aws.ToString(caller.Account)
	here.Caller.Region = awsConfig.Region

	if here.Caller.Partition, err = util.PartitionFromArn(here.Caller.Arn); err != nil {
		return here, err
	}

	// Queue
	here.Queue.Url = GetEnv(EnvQueueUrl, "")

	// Baseline
	here.Baseline.StackSetName = GetEnv(EnvStackSetName, DefaultStackSetName)
	here.Baseline.ExecutionRole = GetEnv(EnvExecutionRoleName, DefaultExecutionRole)

	// Recorder
	here.Recorder.Strategy = GetEnv(EnvRecorderStrategy, DefaultStrategy)
	here.Recorder.DefaultFrequency = GetEnv(EnvRecorderFrequency, DefaultFrequency)
	here.Recorder.ResourceTypesMapping = GetEnv(EnvResourceTypesMap, DefaultMapping)
	here.Recorder.ExclusionsMapping = GetEnv(EnvExclusionsMap, DefaultMapping)

	// Exclusions are kept raw; parsing belongs to the exclusion convention.
	if excluded, exists := os.LookupEnv(EnvExcludedAccounts); exists {
		here.ExcludedAccounts = excluded
	}

	// Process
	if util.InLambda() {
		here.LogLevel = GetEnv(EnvLogLevel, DefaultLogLevelInside)
	} else {
		here.LogLevel = GetEnv(EnvLogLevel, DefaultLogLevelOutside)
	}
	here.Handler = GetHandler()

	return here, nil
}
