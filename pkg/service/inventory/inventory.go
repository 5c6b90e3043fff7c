package inventory

import (
	"context"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

type CloudFormationClient interface {
	ListStackInstances(ctx context.Context, params *cloudformation.ListStackInstancesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStackInstancesOutput, error)
}

type Client struct {
	CloudFormation CloudFormationClient
}

type Service struct {
	Client Client
}

func FromClients(cloudFormationClient CloudFormationClient) Service {
	return Service{
		Client: Client{
			CloudFormation: cloudFormationClient,
		},
	}
}

// StackInstances lazily walks every page of stack instances for stackSetName.
// A non-empty account scopes the listing server side. On a page error the
// sequence yields the error once and stops.
func (s Service) StackInstances(ctx context.Context, stackSetName, account string) iter.Seq2[types.StackInstanceSummary, error] {
	return func(yield func(types.StackInstanceSummary, error) bool) {
		listStackInstancesInput := &cloudformation.ListStackInstancesInput{
			StackSetName: aws.String(stackSetName),
		}

		if account != "" {
			listStackInstancesInput.StackInstanceAccount = aws.String(account)
		}

		paginator := cloudformation.NewListStackInstancesPaginator(s.Client.CloudFormation, listStackInstancesInput)

		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield(types.StackInstanceSummary{}, err)
				return
			}

			for _, summary := range page.Summaries {
				if !yield(summary, nil) {
					return
				}
			}
		}
	}
}
