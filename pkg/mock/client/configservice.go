package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/configservice"
	"github.com/stretchr/testify/mock"
)

type MockConfigServiceClient struct {
	mock.Mock
}

func (m *MockConfigServiceClient) DescribeConfigurationRecorders(ctx context.Context, params *configservice.DescribeConfigurationRecordersInput, optFns ...func(*configservice.Options)) (*configservice.DescribeConfigurationRecordersOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*configservice.DescribeConfigurationRecordersOutput), args.Error(1)
}

func (m *MockConfigServiceClient) PutConfigurationRecorder(ctx context.Context, params *configservice.PutConfigurationRecorderInput, optFns ...func(*configservice.Options)) (*configservice.PutConfigurationRecorderOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*configservice.PutConfigurationRecorderOutput), args.Error(1)
}
