package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linecard/recorder/pkg/convention/config"
	"github.com/linecard/recorder/pkg/convention/dispatch"
	"github.com/linecard/recorder/pkg/convention/recorder"
	"github.com/linecard/recorder/pkg/convention/workitem"
	"github.com/linecard/recorder/pkg/sdk"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var cfg config.Config
var api sdk.API

type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, raw []byte) (dispatch.Report, error)
}

type Updater interface {
	Apply(ctx context.Context, item workitem.WorkItem) (recorder.Result, error)
}

// Listen for events from the AWS Lambda runtime.
func Listen(ctx context.Context, tp *sdktrace.TracerProvider) {
	BeforeAll(ctx)

	var handler any
	switch cfg.Handler {
	case config.HandlerProducer:
		handler = Producer
	case config.HandlerConsumer:
		handler = Consumer
	}

	instrumented := otellambda.InstrumentHandler(handler,
		otellambda.WithTracerProvider(tp),
		otellambda.WithFlusher(tp),
	)

	lambda.Start(instrumented)
}

// Producer receives EventBridge events.
func Producer(ctx context.Context, event json.RawMessage) (Response, error) {
	return produce(BeforeEach(ctx), api.Dispatch, event)
}

// Consumer receives batches of queued work items.
func Consumer(ctx context.Context, event events.SQSEvent) (Response, error) {
	return consume(BeforeEach(ctx), api.Recorder, event)
}

func produce(ctx context.Context, dispatcher Dispatcher, event json.RawMessage) (Response, error) {
	ctx, span := otel.Tracer("").Start(ctx, "producer")
	defer span.End()

	report, err := dispatcher.Dispatch(ctx, event)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Response{}, fmt.Errorf("failed to dispatch event: %w", err)
	}

	span.SetAttributes(
		attribute.String("dispatch.id", report.DispatchId),
		attribute.Int("dispatch.sent", len(report.Sent())),
		attribute.Int("dispatch.failed", len(report.Failed())),
	)

	// Partial failures do not fail the invocation.
	if err := report.Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("dispatch", report.DispatchId).Msg("dispatch incomplete")
		span.SetStatus(codes.Error, err.Error())
	}

	if report.Event == "" {
		return Response{StatusCode: 200, Message: "event ignored"}, nil
	}

	return Response{
		StatusCode: 200,
		Message: fmt.Sprintf("dispatch %s: sent %d, excluded %d, failed %d",
			report.DispatchId, len(report.Sent()), len(report.Excluded()), len(report.Failed())),
	}, nil
}

func consume(ctx context.Context, updater Updater, event events.SQSEvent) (Response, error) {
	ctx, span := otel.Tracer("").Start(ctx, "consumer")
	defer span.End()

	item, err := recorder.FromBatch(event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int("records", len(event.Records)).Msg("rejecting batch")
		span.SetStatus(codes.Error, err.Error())
		return Response{}, err
	}

	logger := log.Ctx(ctx).With().
		Str("account", item.Account).
		Str("region", item.Region).
		Str("event", item.Event).
		Logger()
	ctx = logger.WithContext(ctx)

	if len(event.Records) > 1 {
		logger.Warn().Int("records", len(event.Records)).Msg("only the first record of the batch is processed")
	}

	result, err := updater.Apply(ctx, item)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Response{}, err
	}

	return Response{StatusCode: 200, Message: fmt.Sprintf("%s %s", result.Item, result.Status)}, nil
}
