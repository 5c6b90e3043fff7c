package target

import (
	"context"
	"iter"

	"github.com/linecard/recorder/pkg/convention/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

type InventoryService interface {
	StackInstances(ctx context.Context, stackSetName, account string) iter.Seq2[types.StackInstanceSummary, error]
}

type Target struct {
	Account string
	Region  string
}

type Services struct {
	Inventory InventoryService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, i InventoryService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Inventory: i,
		},
	}
}

// Resolve enumerates the baseline stack set instances, optionally scoped to one
// account. Nothing is fetched until the sequence is ranged.
func (c Convention) Resolve(ctx context.Context, account string) iter.Seq2[Target, error] {
	return func(yield func(Target, error) bool) {
		ctx, span := otel.Tracer("").Start(ctx, "target.Resolve")
		defer span.End()

		span.SetAttributes(
			attribute.String("stackset", c.Config.Baseline.StackSetName),
			attribute.String("account", account),
		)

		for summary, err := range c.Service.Inventory.StackInstances(ctx, c.Config.Baseline.StackSetName, account) {
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				yield(Target{}, err)
				return
			}

			if !yield(Target{Account: aws.ToString(summary.Account), Region: aws.ToString(summary.Region)}, nil) {
				return
			}
		}
	}
}

// Collect drains Resolve, returning the targets seen before any error.
func (c Convention) Collect(ctx context.Context, account string) ([]Target, error) {
	targets := []Target{}

	for target, err := range c.Resolve(ctx, account) {
		if err != nil {
			return targets, err
		}
		targets = append(targets, target)
	}

	return targets, nil
}
