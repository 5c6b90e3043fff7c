package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockQueueService struct {
	mock.Mock
}

func (m *MockQueueService) Send(ctx context.Context, queueUrl, body string, attributes map[string]string) (string, error) {
	args := m.Called(ctx, queueUrl, body, attributes)
	return args.String(0), args.Error(1)
}
