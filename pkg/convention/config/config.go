package config

import (
	"encoding/json"

	"github.com/linecard/recorder/internal/util"
	"github.com/linecard/recorder/pkg/convention/exclusion"
	"github.com/linecard/recorder/pkg/convention/policy"

	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/rs/zerolog"
)

const (
	StrategyExclusion   = "EXCLUSION"
	DefaultRecorderName = "aws-controltower-BaselineConfigRecorder"
	ServiceRoleName     = "aws-service-role/config.amazonaws.com/AWSServiceRoleForConfig"
	HandlerProducer     = "producer"
	HandlerConsumer     = "consumer"
)

type Caller struct {
	Arn       string
	Account   string
	Partition string
	Region    string
}

type Queue struct {
	Url string
}

type Baseline struct {
	StackSetName  string
	ExecutionRole string
}

type Recorder struct {
	// Strategy is carried for forward compatibility; only the exclusion strategy is implemented.
	Strategy         string
	DefaultFrequency types.RecordingFrequency
	DefaultName      string
	Continuous       policy.Mapping
	Exclusions       policy.Mapping
}

type Config struct {
	Caller   Caller
	Queue    Queue
	Baseline Baseline
	Recorder Recorder
	Excluded exclusion.Set
	LogLevel zerolog.Level
	Handler  string
}

// derived information
func (c Config) ExecutionRoleArn(account string) string {
	return util.RoleArnFromName(c.Caller.Partition, account, c.Baseline.ExecutionRole)
}

func (c Config) ExecutionSessionName(account string) string {
	return account + "-" + c.Baseline.ExecutionRole
}

func (c Config) ServiceRoleArn(account string) string {
	return util.RoleArnFromName(c.Caller.Partition, account, ServiceRoleName)
}

// RecorderFor returns the per-target recorder values for a recorder named name in account.
func (c Config) RecorderFor(account, name string) policy.Recorder {
	return policy.Recorder{
		Name:             name,
		RoleArn:          c.ServiceRoleArn(account),
		DefaultFrequency: c.Recorder.DefaultFrequency,
	}
}

// helper methods
func (c Config) Json() (string, error) {
	view := struct {
		Config
		Excluded []string
		LogLevel string
	}{
		Config:   c,
		Excluded: c.Excluded.List(),
		LogLevel: c.LogLevel.String(),
	}

	cJson, err := json.Marshal(view)
	if err != nil {
		return "", err
	}

	return string(cJson), nil
}
