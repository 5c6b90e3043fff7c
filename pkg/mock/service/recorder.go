package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/stretchr/testify/mock"
)

type MockSessionBroker struct {
	mock.Mock
}

func (m *MockSessionBroker) Session(ctx context.Context, account string) (aws.Config, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(aws.Config), args.Error(1)
}

type MockRecorderService struct {
	mock.Mock
}

func (m *MockRecorderService) List(ctx context.Context) ([]types.ConfigurationRecorder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.ConfigurationRecorder), args.Error(1)
}

func (m *MockRecorderService) Put(ctx context.Context, recorder types.ConfigurationRecorder) error {
	args := m.Called(ctx, recorder)
	return args.Error(0)
}

func MockRecorders(names ...string) []types.ConfigurationRecorder {
	recorders := []types.ConfigurationRecorder{}
	for _, name := range names {
		recorders = append(recorders, types.ConfigurationRecorder{Name: aws.String(name)})
	}

	return recorders
}
