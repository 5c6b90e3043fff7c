package mock

import (
	"context"
	"iter"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/mock"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) StackInstances(ctx context.Context, stackSetName, account string) iter.Seq2[types.StackInstanceSummary, error] {
	args := m.Called(ctx, stackSetName, account)
	return args.Get(0).(iter.Seq2[types.StackInstanceSummary, error])
}

// MockStackInstances yields one summary per "account/region" pair, then err if it is non-nil.
func MockStackInstances(err error, pairs ...string) iter.Seq2[types.StackInstanceSummary, error] {
	return func(yield func(types.StackInstanceSummary, error) bool) {
		for _, pair := range pairs {
			account, region, _ := strings.Cut(pair, "/")

			if !yield(types.StackInstanceSummary{Account: aws.String(account), Region: aws.String(region)}, nil) {
				return
			}
		}

		if err != nil {
			yield(types.StackInstanceSummary{}, err)
		}
	}
}
