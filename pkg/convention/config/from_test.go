package config

import (
	"testing"

	"github.com/linecard/recorder/internal/umwelt"
	"github.com/linecard/recorder/pkg/convention/policy"
	umweltmock "github.com/linecard/recorder/pkg/mock/umwelt"

	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHere(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*umwelt.Here)
		test   func(*testing.T, Config, error)
	}{
		{
			name:   "produces correct config from given here",
			modify: func(here *umwelt.Here) {},
			test: func(t *testing.T, got Config, err error) {
				require.NoError(t, err)

				assert.Equal(t, Caller{
					Arn:       "arn:aws:sts::123456789012:assumed-role/config-recorder/config-recorder",
					Account:   "123456789012",
					Partition: "aws",
					Region:    "us-east-1",
				}, got.Caller)
				assert.Equal(t, umweltmock.QueueUrl, got.Queue.Url)
				assert.Equal(t, umwelt.DefaultStackSetName, got.Baseline.StackSetName)
				assert.Equal(t, umwelt.DefaultExecutionRole, got.Baseline.ExecutionRole)
				assert.Equal(t, StrategyExclusion, got.Recorder.Strategy)
				assert.Equal(t, types.RecordingFrequencyDaily, got.Recorder.DefaultFrequency)
				assert.Equal(t, DefaultRecorderName, got.Recorder.DefaultName)
				assert.Equal(t, policy.Mapping{"us-east-1": {ResourceTypes: []string{"AWS::EC2::Instance"}}}, got.Recorder.Continuous)
				assert.Len(t, got.Recorder.Exclusions, 2)
				assert.Equal(t, []string{"888888888888", "999999999999"}, got.Excluded.List())
				assert.Equal(t, zerolog.DebugLevel, got.LogLevel)
			},
		},
		{
			name: "computes role arns from the caller partition",
			modify: func(here *umwelt.Here) {
				here.Caller.Partition = "aws-us-gov"
			},
			test: func(t *testing.T, got Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, "arn:aws-us-gov:iam::210987654321:role/AWSControlTowerExecution", got.ExecutionRoleArn("210987654321"))
				assert.Equal(t, "210987654321-AWSControlTowerExecution", got.ExecutionSessionName("210987654321"))
				assert.Equal(t, "arn:aws-us-gov:iam::210987654321:role/aws-service-role/config.amazonaws.com/AWSServiceRoleForConfig", got.ServiceRoleArn("210987654321"))
			},
		},
		{
			name: "accepts lower case frequency",
			modify: func(here *umwelt.Here) {
				here.Recorder.DefaultFrequency = "continuous"
			},
			test: func(t *testing.T, got Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, types.RecordingFrequencyContinuous, got.Recorder.DefaultFrequency)
			},
		},
		{
			name: "rejects unknown frequency",
			modify: func(here *umwelt.Here) {
				here.Recorder.DefaultFrequency = "HOURLY"
			},
			test: func(t *testing.T, got Config, err error) {
				assert.ErrorContains(t, err, umwelt.EnvRecorderFrequency)
			},
		},
		{
			name: "rejects malformed continuous mapping",
			modify: func(here *umwelt.Here) {
				here.Recorder.ResourceTypesMapping = "{not json"
			},
			test: func(t *testing.T, got Config, err error) {
				assert.ErrorContains(t, err, umwelt.EnvResourceTypesMap)
			},
		},
		{
			name: "rejects malformed exclusion mapping",
			modify: func(here *umwelt.Here) {
				here.Recorder.ExclusionsMapping = `{"us-east-1": "AWS::S3::Bucket"}`
			},
			test: func(t *testing.T, got Config, err error) {
				assert.ErrorContains(t, err, umwelt.EnvExclusionsMap)
			},
		},
		{
			name: "keeps an unknown strategy as a placeholder",
			modify: func(here *umwelt.Here) {
				here.Recorder.Strategy = "inclusion"
			},
			test: func(t *testing.T, got Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, "INCLUSION", got.Recorder.Strategy)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			here := umweltmock.FromEnv()
			tc.modify(&here)
			got, err := FromHere(here)
			tc.test(t, got, err)
		})
	}
}

func TestRequire(t *testing.T) {
	cfg, err := FromHere(umweltmock.FromEnv())
	require.NoError(t, err)

	assert.NoError(t, cfg.Require(HandlerProducer))
	assert.NoError(t, cfg.Require(HandlerConsumer))
	assert.Error(t, cfg.Require("reconciler"))

	cfg.Queue.Url = ""
	assert.ErrorContains(t, cfg.Require(HandlerProducer), umwelt.EnvQueueUrl)
	assert.NoError(t, cfg.Require(HandlerConsumer))
}

func TestJson(t *testing.T) {
	cfg, err := FromHere(umweltmock.FromEnv())
	require.NoError(t, err)

	got, err := cfg.Json()
	require.NoError(t, err)
	assert.Contains(t, got, `"Excluded":["888888888888","999999999999"]`)
	assert.Contains(t, got, `"LogLevel":"debug"`)
}
