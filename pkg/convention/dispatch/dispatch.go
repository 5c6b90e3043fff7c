package dispatch

import (
	"context"
	"fmt"
	"iter"

	"github.com/linecard/recorder/pkg/convention/config"
	"github.com/linecard/recorder/pkg/convention/target"
	"github.com/linecard/recorder/pkg/convention/trigger"
	"github.com/linecard/recorder/pkg/convention/workitem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

const AttributeDispatchId = "DispatchId"

type TargetResolver interface {
	Resolve(ctx context.Context, account string) iter.Seq2[target.Target, error]
}

type QueueService interface {
	Send(ctx context.Context, queueUrl, body string, attributes map[string]string) (string, error)
}

type State string

const (
	Sent     State = "sent"
	Excluded State = "excluded"
	Failed   State = "failed"
)

type Outcome struct {
	Target    target.Target
	State     State
	MessageId string
	Err       error
}

// Report accounts for every target a dispatch saw. A dispatch that fails
// part way keeps the items already sent.
type Report struct {
	DispatchId  string
	Event       string
	Outcomes    []Outcome
	Enumeration error
}

func (r Report) filter(state State) []Outcome {
	outcomes := []Outcome{}
	for _, outcome := range r.Outcomes {
		if outcome.State == state {
			outcomes = append(outcomes, outcome)
		}
	}

	return outcomes
}

func (r Report) Sent() []Outcome     { return r.filter(Sent) }
func (r Report) Excluded() []Outcome { return r.filter(Excluded) }
func (r Report) Failed() []Outcome   { return r.filter(Failed) }

// Err aggregates send and enumeration failures, nil when there were none.
func (r Report) Err() error {
	var result *multierror.Error

	for _, outcome := range r.Failed() {
		result = multierror.Append(result, fmt.Errorf("%s/%s: %w", outcome.Target.Account, outcome.Target.Region, outcome.Err))
	}

	if r.Enumeration != nil {
		result = multierror.Append(result, fmt.Errorf("target enumeration: %w", r.Enumeration))
	}

	return result.ErrorOrNil()
}

type Services struct {
	Targets TargetResolver
	Queue   QueueService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, t TargetResolver, q QueueService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Targets: t,
			Queue:   q,
		},
	}
}

// Dispatch fans a trigger event out into one queued work item per
// non-excluded target. Only a malformed event is returned as an error;
// per-target failures are recorded in the Report.
func (c Convention) Dispatch(ctx context.Context, raw []byte) (Report, error) {
	report := Report{DispatchId: uuid.NewString()}

	logger := log.Ctx(ctx).With().Str("dispatch", report.DispatchId).Logger()
	ctx = logger.WithContext(ctx)

	event, err := trigger.Parse(raw)
	if err != nil {
		logger.Error().Err(err).Msg("rejecting trigger event")
		return report, err
	}

	actionable, ok := event.(trigger.Actionable)
	if !ok {
		unrecognized, _ := event.(trigger.Unrecognized)
		logger.Info().
			Str("source", event.Source()).
			Str("event", event.EventName()).
			Str("reason", unrecognized.Reason).
			Msg("ignoring event")
		return report, nil
	}

	report.Event = actionable.Label()

	ctx, span := otel.Tracer("").Start(ctx, "dispatch.Dispatch")
	defer span.End()

	span.SetAttributes(
		attribute.String("dispatch.id", report.DispatchId),
		attribute.String("dispatch.event", actionable.EventName()),
		attribute.String("dispatch.filter", actionable.Filter()),
	)

	logger.Info().
		Str("event", actionable.EventName()).
		Str("filter", actionable.Filter()).
		Msg("dispatching")

	for tgt, err := range c.Service.Targets.Resolve(ctx, actionable.Filter()) {
		if err != nil {
			logger.Error().Err(err).Msg("failed to enumerate targets")
			span.SetStatus(codes.Error, err.Error())
			report.Enumeration = err
			break
		}

		report.Outcomes = append(report.Outcomes, c.send(ctx, tgt, report))
	}

	logger.Info().
		Int("sent", len(report.Sent())).
		Int("excluded", len(report.Excluded())).
		Int("failed", len(report.Failed())).
		Msg("dispatched")

	return report, nil
}

func (c Convention) send(ctx context.Context, tgt target.Target, report Report) Outcome {
	logger := log.Ctx(ctx).With().
		Str("account", tgt.Account).
		Str("region", tgt.Region).
		Logger()

	if c.Config.Excluded.Contains(tgt.Account) {
		logger.Info().Msg("account excluded")
		return Outcome{Target: tgt, State: Excluded}
	}

	body, err := workitem.WorkItem{
		Account: tgt.Account,
		Region:  tgt.Region,
		Event:   report.Event,
	}.Encode()
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode work item")
		return Outcome{Target: tgt, State: Failed, Err: err}
	}

	messageId, err := c.Service.Queue.Send(ctx, c.Config.Queue.Url, body, map[string]string{
		AttributeDispatchId: report.DispatchId,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send work item")
		return Outcome{Target: tgt, State: Failed, Err: err}
	}

	logger.Debug().Str("message", messageId).Msg("work item sent")
	return Outcome{Target: tgt, State: Sent, MessageId: messageId}
}
