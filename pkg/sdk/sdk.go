package sdk

import (
	"context"

	// config
	"github.com/linecard/recorder/pkg/convention/config"

	// services
	"github.com/linecard/recorder/pkg/service/configrecorder"
	"github.com/linecard/recorder/pkg/service/identity"
	"github.com/linecard/recorder/pkg/service/inventory"
	"github.com/linecard/recorder/pkg/service/queue"

	// conventions
	"github.com/linecard/recorder/pkg/convention/dispatch"
	"github.com/linecard/recorder/pkg/convention/recorder"
	"github.com/linecard/recorder/pkg/convention/session"
	"github.com/linecard/recorder/pkg/convention/target"

	// clients
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type Clients struct {
	StsClient            *sts.Client
	SqsClient            *sqs.Client
	CloudFormationClient *cloudformation.Client
}

type Services struct {
	Identity  identity.Service
	Inventory inventory.Service
	Queue     queue.Service
	Recorder  recorder.RecorderFactory
}

type Conventions struct {
	Target   target.Convention
	Dispatch dispatch.Convention
	Session  session.Convention
	Recorder recorder.Convention
}

type API struct {
	Conventions
	Config config.Config
}

func Init(ctx context.Context, awsConfig aws.Config, config config.Config) (API, error) {
	clients, err := InitClients(ctx, awsConfig)
	if err != nil {
		return API{}, err
	}

	services, err := InitServices(ctx, clients)
	if err != nil {
		return API{}, err
	}

	conventions, err := InitConventions(ctx, awsConfig, config, services)
	if err != nil {
		return API{}, err
	}

	return API{
		Conventions: conventions,
		Config:      config,
	}, nil
}

func InitConventions(ctx context.Context, awsConfig aws.Config, config config.Config, services Services) (Conventions, error) {
	targets := target.FromServices(config, services.Inventory)
	sessions := session.FromServices(config, awsConfig, services.Identity)

	return Conventions{
		Target:   targets,
		Dispatch: dispatch.FromServices(config, targets, services.Queue),
		Session:  sessions,
		Recorder: recorder.FromServices(config, sessions, services.Recorder),
	}, nil
}

func InitServices(ctx context.Context, clients Clients) (Services, error) {
	return Services{
		Identity:  identity.FromClients(clients.StsClient),
		Inventory: inventory.FromClients(clients.CloudFormationClient),
		Queue:     queue.FromClients(clients.SqsClient),
		Recorder: func(awsConfig aws.Config, region string) recorder.RecorderService {
			return configrecorder.FromConfig(awsConfig, region)
		},
	}, nil
}

func InitClients(ctx context.Context, awsConfig aws.Config) (Clients, error) {
	return Clients{
		StsClient:            sts.NewFromConfig(awsConfig),
		SqsClient:            sqs.NewFromConfig(awsConfig),
		CloudFormationClient: cloudformation.NewFromConfig(awsConfig),
	}, nil
}
