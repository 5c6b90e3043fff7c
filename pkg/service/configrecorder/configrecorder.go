package configrecorder

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
)

type ConfigServiceClient interface {
	DescribeConfigurationRecorders(ctx context.Context, params *configservice.DescribeConfigurationRecordersInput, optFns ...func(*configservice.Options)) (*configservice.DescribeConfigurationRecordersOutput, error)
	PutConfigurationRecorder(ctx context.Context, params *configservice.PutConfigurationRecorderInput, optFns ...func(*configservice.Options)) (*configservice.PutConfigurationRecorderOutput, error)
}

type Client struct {
	ConfigService ConfigServiceClient
}

type Service struct {
	Client Client
}

func FromClients(configServiceClient ConfigServiceClient) Service {
	return Service{
		Client: Client{
			ConfigService: configServiceClient,
		},
	}
}

// FromConfig builds a Service bound to region using the credentials carried by awsConfig.
func FromConfig(awsConfig aws.Config, region string) Service {
	return FromClients(configservice.NewFromConfig(awsConfig, func(o *configservice.Options) {
		o.Region = region
	}))
}

func (s Service) List(ctx context.Context) ([]types.ConfigurationRecorder, error) {
	describeOutput, err := s.Client.ConfigService.DescribeConfigurationRecorders(ctx, &configservice.DescribeConfigurationRecordersInput{})
	if err != nil {
		return nil, err
	}

	return describeOutput.ConfigurationRecorders, nil
}

// Put creates or replaces the recorder. The call is an upsert keyed on the recorder name.
func (s Service) Put(ctx context.Context, recorder types.ConfigurationRecorder) error {
	_, err := s.Client.ConfigService.PutConfigurationRecorder(ctx, &configservice.PutConfigurationRecorderInput{
		ConfigurationRecorder: &recorder,
	})

	return err
}
