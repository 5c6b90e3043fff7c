package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type Client struct {
	Sqs SQSClient
}

type Service struct {
	Client Client
}

func FromClients(sqsClient SQSClient) Service {
	return Service{
		Client: Client{
			Sqs: sqsClient,
		},
	}
}

// Send enqueues one message and returns its id. Attributes are sent as String typed message attributes.
func (s Service) Send(ctx context.Context, queueUrl, body string, attributes map[string]string) (string, error) {
	sendMessageInput := &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueUrl),
		MessageBody: aws.String(body),
	}

	if len(attributes) > 0 {
		sendMessageInput.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attributes))
		for key, value := range attributes {
			sendMessageInput.MessageAttributes[key] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(value),
			}
		}
	}

	sendMessageOutput, err := s.Client.Sqs.SendMessage(ctx, sendMessageInput)
	if err != nil {
		return "", err
	}

	return aws.ToString(sendMessageOutput.MessageId), nil
}
