package mock

import (
	"github.com/linecard/recorder/internal/umwelt"
)

const (
	CallerAccount = "123456789012"
	QueueUrl      = "https://sqs.us-east-1.amazonaws.com/123456789012/config-recorder"
)

// FromEnv returns the umwelt of a producer/consumer deployed in the management account.
func FromEnv() umwelt.Here {
	return umwelt.Here{
		Caller: umwelt.ThisCaller{
			Id:        "AROAEXAMPLE:config-recorder",
			Arn:       "arn:aws:sts::123456789012:assumed-role/config-recorder/config-recorder",
			Account:   CallerAccount,
			Partition: "aws",
			Region:    "us-east-1",
		},
		Queue: umwelt.ThisQueue{
			Url: QueueUrl,
		},
		Baseline: umwelt.ThisBaseline{
			StackSetName:  umwelt.DefaultStackSetName,
			ExecutionRole: umwelt.DefaultExecutionRole,
		},
		Recorder: umwelt.ThisRecorder{
			Strategy:             umwelt.DefaultStrategy,
			DefaultFrequency:     umwelt.DefaultFrequency,
			ResourceTypesMapping: `{"us-east-1":{"ResourceTypes":["AWS::EC2::Instance"]}}`,
			ExclusionsMapping:    `{"us-east-1":{"ResourceTypes":["AWS::S3::Bucket"]},"eu-west-1":{"ResourceTypes":["AWS::IAM::Role","AWS::IAM::Policy"]}}`,
		},
		ExcludedAccounts: "999999999999, 888888888888",
		LogLevel:         "debug",
	}
}
