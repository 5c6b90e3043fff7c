package recorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/linecard/recorder/pkg/convention/config"
	"github.com/linecard/recorder/pkg/convention/policy"
	"github.com/linecard/recorder/pkg/convention/session"
	"github.com/linecard/recorder/pkg/convention/workitem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"
)

var ErrEmptyBatch = errors.New("empty SQS batch")

type SessionBroker interface {
	Session(ctx context.Context, account string) (aws.Config, error)
}

type RecorderService interface {
	List(ctx context.Context) ([]types.ConfigurationRecorder, error)
	Put(ctx context.Context, recorder types.ConfigurationRecorder) error
}

// RecorderFactory binds a RecorderService to a session and region.
type RecorderFactory func(awsConfig aws.Config, region string) RecorderService

type Status string

const (
	Applied Status = "Applied"
	Skipped Status = "Skipped"
	Planned Status = "Planned"
)

type Result struct {
	Status   Status
	Item     workitem.WorkItem
	Recorder string
	Document types.ConfigurationRecorder
	Reason   string
}

// UpdateError is a rejected PutConfigurationRecorder.
type UpdateError struct {
	Item     workitem.WorkItem
	Recorder string
	Code     string
	Err      error
}

func (e *UpdateError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("failed to update recorder %s in %s: %s: %v", e.Recorder, e.Item, e.Code, e.Err)
	}
	return fmt.Sprintf("failed to update recorder %s in %s: %v", e.Recorder, e.Item, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

type Services struct {
	Session  SessionBroker
	Recorder RecorderFactory
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, s SessionBroker, f RecorderFactory) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Session:  s,
			Recorder: f,
		},
	}
}

// FromBatch decodes the first record of an SQS batch. Any further records are ignored.
func FromBatch(event events.SQSEvent) (workitem.WorkItem, error) {
	if len(event.Records) == 0 {
		return workitem.WorkItem{}, ErrEmptyBatch
	}

	return workitem.Decode(event.Records[0].Body)
}

// Plan computes the recorder document for item without writing it.
func (c Convention) Plan(ctx context.Context, item workitem.WorkItem) (Result, error) {
	result, _, err := c.plan(ctx, item)
	return result, err
}

// Apply writes the computed recorder document into the target account and region.
// An unreachable account is skipped, not failed.
func (c Convention) Apply(ctx context.Context, item workitem.WorkItem) (Result, error) {
	ctx, span := otel.Tracer("").Start(ctx, "recorder.Apply")
	defer span.End()

	span.SetAttributes(
		attribute.String("account", item.Account),
		attribute.String("region", item.Region),
		attribute.String("event", item.Event),
	)

	result, recorders, err := c.plan(ctx, item)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	if result.Status == Skipped {
		return result, nil
	}

	logger := log.Ctx(ctx)

	if err := recorders.Put(ctx, result.Document); err != nil {
		updateErr := &UpdateError{
			Item:     item,
			Recorder: result.Recorder,
			Err:      err,
		}

		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			updateErr.Code = apiErr.ErrorCode()
		}

		logger.Error().
			Err(err).
			Str("account", item.Account).
			Str("region", item.Region).
			Str("code", updateErr.Code).
			Msg("failed to update configuration recorder")

		span.SetStatus(codes.Error, updateErr.Error())
		return result, updateErr
	}

	result.Status = Applied

	logger.Info().
		Str("recorder", result.Recorder).
		Int("continuous", len(result.Document.RecordingMode.RecordingModeOverrides)).
		Msg("configuration recorder updated")

	return result, nil
}

func (c Convention) plan(ctx context.Context, item workitem.WorkItem) (Result, RecorderService, error) {
	result := Result{Item: item}

	logger := log.Ctx(ctx).With().
		Str("account", item.Account).
		Str("region", item.Region).
		Logger()

	awsConfig, err := c.Service.Session.Session(ctx, item.Account)
	if err != nil {
		var assumeErr *session.RoleAssumptionError
		if errors.As(err, &assumeErr) {
			logger.Warn().Err(err).Msg("skipping unreachable account")
			result.Status = Skipped
			result.Reason = err.Error()
			return result, nil, nil
		}

		logger.Error().Err(err).Msg("failed to open session")
		return result, nil, err
	}

	recorders := c.Service.Recorder(awsConfig, item.Region)

	existing, err := recorders.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to describe configuration recorders")
		return result, nil, fmt.Errorf("failed to describe configuration recorders in %s: %w", item, err)
	}

	result.Recorder = c.Config.Recorder.DefaultName
	if len(existing) > 0 && aws.ToString(existing[0].Name) != "" {
		result.Recorder = aws.ToString(existing[0].Name)
	}

	regional := policy.Resolve(item.Region, c.Config.Recorder.Continuous, c.Config.Recorder.Exclusions)
	result.Document = policy.Document(c.Config.RecorderFor(item.Account, result.Recorder), regional)
	result.Status = Planned

	logger.Debug().
		Str("recorder", result.Recorder).
		Strs("continuous", regional.Continuous).
		Strs("excluded", regional.Excluded).
		Msg("recorder planned")

	return result, recorders, nil
}
