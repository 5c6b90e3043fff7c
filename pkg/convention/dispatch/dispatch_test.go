package dispatch

import (
	"context"
	"fmt"
	"testing"

	"github.com/linecard/recorder/internal/umwelt"
	"github.com/linecard/recorder/pkg/convention/config"
	"github.com/linecard/recorder/pkg/convention/target"
	"github.com/linecard/recorder/pkg/convention/trigger"
	fixturemock "github.com/linecard/recorder/pkg/mock/fixture"
	servicemock "github.com/linecard/recorder/pkg/mock/service"
	umweltmock "github.com/linecard/recorder/pkg/mock/umwelt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	config, err := config.FromHere(umweltmock.FromEnv())
	require.NoError(t, err)

	stackSet := umwelt.DefaultStackSetName

	body := func(account, region, event string) string {
		return fmt.Sprintf(`{"Account":%q,"Region":%q,"Event":%q}`, account, region, event)
	}

	tests := []struct {
		name  string
		event []byte
		setup func(*servicemock.MockInventoryService, *servicemock.MockQueueService)
		test  func(*testing.T, Report, error, *servicemock.MockInventoryService, *servicemock.MockQueueService)
	}{
		{
			name:  "account created is scoped to the new account.",
			event: fixturemock.Bytes("controltower-create-managed-account.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				mis.On("StackInstances", mock.Anything, stackSet, "210987654321").
					Return(servicemock.MockStackInstances(nil, "210987654321/us-east-1", "210987654321/eu-west-1"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, mock.Anything, mock.Anything).Return("message-id", nil)
			},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				require.NoError(t, err)
				mis.AssertExpectations(t)

				assert.Equal(t, trigger.LabelControlTower, report.Event)
				assert.Len(t, report.Sent(), 2)
				assert.NoError(t, report.Err())

				mqs.AssertCalled(t, "Send", mock.Anything, umweltmock.QueueUrl, body("210987654321", "us-east-1", "controltower"), mock.Anything)
				mqs.AssertCalled(t, "Send", mock.Anything, umweltmock.QueueUrl, body("210987654321", "eu-west-1", "controltower"), mock.Anything)
			},
		},
		{
			name:  "landing zone update covers every account and skips excluded ones.",
			event: fixturemock.Bytes("controltower-update-landing-zone.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				mis.On("StackInstances", mock.Anything, stackSet, "").
					Return(servicemock.MockStackInstances(nil, "111111111111/us-east-1", "999999999999/us-east-1", "888888888888/eu-west-1", "222222222222/eu-west-1"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, mock.Anything, mock.Anything).Return("message-id", nil)
			},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				require.NoError(t, err)

				assert.Len(t, report.Sent(), 2)
				assert.Equal(t, []Outcome{
					{Target: target.Target{Account: "999999999999", Region: "us-east-1"}, State: Excluded},
					{Target: target.Target{Account: "888888888888", Region: "eu-west-1"}, State: Excluded},
				}, report.Excluded())

				mqs.AssertNumberOfCalls(t, "Send", 2)
				for _, call := range mqs.Calls {
					assert.NotContains(t, call.Arguments.String(2), "999999999999")
					assert.NotContains(t, call.Arguments.String(2), "888888888888")
				}
			},
		},
		{
			name:  "function created fans out to every account with the lambda label.",
			event: fixturemock.Bytes("lambda-create-function.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				mis.On("StackInstances", mock.Anything, stackSet, "").
					Return(servicemock.MockStackInstances(nil, "111111111111/us-east-1"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, body("111111111111", "us-east-1", "lambda-create"), mock.Anything).Return("message-id", nil)
			},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				require.NoError(t, err)
				mqs.AssertExpectations(t)
				assert.Equal(t, "message-id", report.Sent()[0].MessageId)
			},
		},
		{
			name:  "function configuration change carries the config update label.",
			event: fixturemock.Bytes("lambda-update-function-configuration-v2.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				mis.On("StackInstances", mock.Anything, stackSet, "").
					Return(servicemock.MockStackInstances(nil, "111111111111/us-west-2"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, body("111111111111", "us-west-2", "lambda-config-update"), mock.Anything).Return("message-id", nil)
			},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				require.NoError(t, err)
				mqs.AssertExpectations(t)
			},
		},
		{
			name:  "every message carries the dispatch id.",
			event: fixturemock.Bytes("controltower-update-managed-account.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				mis.On("StackInstances", mock.Anything, stackSet, "123456789012").
					Return(servicemock.MockStackInstances(nil, "123456789012/us-east-1", "123456789012/us-west-2"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, mock.Anything, mock.Anything).Return("message-id", nil)
			},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				require.NoError(t, err)
				require.NotEmpty(t, report.DispatchId)

				for _, call := range mqs.Calls {
					attributes := call.Arguments.Get(3).(map[string]string)
					assert.Equal(t, report.DispatchId, attributes[AttributeDispatchId])
				}
			},
		},
		{
			name:  "unrecognized events send nothing.",
			event: fixturemock.Bytes("lambda-update-function-configuration.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				assert.NoError(t, err)
				assert.Empty(t, report.Outcomes)
				mis.AssertNotCalled(t, "StackInstances", mock.Anything, mock.Anything, mock.Anything)
				mqs.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:  "payloads without a source send nothing.",
			event: fixturemock.Bytes("scheduled-invocation.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				assert.NoError(t, err)
				assert.Empty(t, report.Outcomes)
				assert.NoError(t, report.Err())
			},
		},
		{
			name:  "malformed events are returned as errors.",
			event: fixturemock.Bytes("controltower-create-managed-account-malformed.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				assert.ErrorIs(t, err, trigger.ErrMalformedTrigger)
				mqs.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:  "a failed send does not stop the remaining targets.",
			event: fixturemock.Bytes("controltower-update-landing-zone.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				mis.On("StackInstances", mock.Anything, stackSet, "").
					Return(servicemock.MockStackInstances(nil, "111111111111/us-east-1", "222222222222/us-east-1", "333333333333/us-east-1"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, body("222222222222", "us-east-1", "controltower"), mock.Anything).Return("", fmt.Errorf("queue unavailable"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, mock.Anything, mock.Anything).Return("message-id", nil)
			},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				require.NoError(t, err)
				mqs.AssertNumberOfCalls(t, "Send", 3)

				assert.Len(t, report.Sent(), 2)
				require.Len(t, report.Failed(), 1)
				assert.Equal(t, "222222222222", report.Failed()[0].Target.Account)
				assert.ErrorContains(t, report.Err(), "queue unavailable")
			},
		},
		{
			name:  "an enumeration failure keeps the items already sent.",
			event: fixturemock.Bytes("controltower-update-landing-zone.json"),
			setup: func(mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				mis.On("StackInstances", mock.Anything, stackSet, "").
					Return(servicemock.MockStackInstances(fmt.Errorf("stack set not found"), "111111111111/us-east-1"))
				mqs.On("Send", mock.Anything, umweltmock.QueueUrl, mock.Anything, mock.Anything).Return("message-id", nil)
			},
			test: func(t *testing.T, report Report, err error, mis *servicemock.MockInventoryService, mqs *servicemock.MockQueueService) {
				require.NoError(t, err)
				assert.Len(t, report.Sent(), 1)
				assert.ErrorContains(t, report.Enumeration, "stack set not found")
				assert.ErrorContains(t, report.Err(), "target enumeration")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mis := &servicemock.MockInventoryService{}
			mqs := &servicemock.MockQueueService{}

			if tc.setup != nil {
				tc.setup(mis, mqs)
			}

			dispatcher := FromServices(config, target.FromServices(config, mis), mqs)
			report, err := dispatcher.Dispatch(ctx, tc.event)

			tc.test(t, report, err, mis, mqs)
		})
	}
}
