package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/linecard/recorder/pkg/convention/dispatch"
	"github.com/linecard/recorder/pkg/convention/exclusion"
	"github.com/linecard/recorder/pkg/convention/policy"
	"github.com/linecard/recorder/pkg/convention/recorder"
	"github.com/linecard/recorder/pkg/convention/target"
	"github.com/linecard/recorder/pkg/convention/workitem"

	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTargets(t *testing.T) {
	got := Targets([]target.Target{
		{Account: "111111111111", Region: "us-east-1"},
		{Account: "999999999999", Region: "eu-west-1"},
	}, exclusion.Parse("999999999999"))

	assert.Contains(t, got, "111111111111")
	assert.Contains(t, got, "eu-west-1")
	assert.Contains(t, got, "true")
	assert.Contains(t, got, "false")
}

func TestReport(t *testing.T) {
	got := Report(dispatch.Report{
		DispatchId: "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f",
		Event:      "controltower",
		Outcomes: []dispatch.Outcome{
			{Target: target.Target{Account: "111111111111", Region: "us-east-1"}, State: dispatch.Sent, MessageId: "message-id"},
			{Target: target.Target{Account: "222222222222", Region: "us-east-1"}, State: dispatch.Failed, Err: fmt.Errorf("queue unavailable")},
		},
		Enumeration: fmt.Errorf("throttled"),
	}, time.Now())

	assert.Contains(t, got, "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f")
	assert.Contains(t, got, "message-id")
	assert.Contains(t, got, "queue unavailable")
	assert.Contains(t, got, "sent 1, excluded 0, failed 1")
	assert.Contains(t, got, "enumeration stopped: throttled")
}

func TestResult(t *testing.T) {
	document := policy.Document(
		policy.Recorder{Name: "default", RoleArn: "arn:aws:iam::111111111111:role/config", DefaultFrequency: types.RecordingFrequencyDaily},
		policy.Policy{Region: "us-east-1", Continuous: []string{"AWS::EC2::Instance"}, Excluded: []string{"AWS::S3::Bucket"}},
	)

	item := workitem.WorkItem{Account: "111111111111", Region: "us-east-1", Event: "controltower"}

	planned := Result(recorder.Result{Status: recorder.Planned, Item: item, Recorder: "default", Document: document})
	assert.Contains(t, planned, "DAILY")
	assert.Contains(t, planned, "AWS::EC2::Instance")
	assert.Contains(t, planned, "AWS::S3::Bucket")

	skipped := Result(recorder.Result{Status: recorder.Skipped, Item: item, Reason: "access denied"})
	assert.Contains(t, skipped, "access denied")
	assert.NotContains(t, skipped, "Recorder")
}

func TestStyleRows(t *testing.T) {
	rows := [][]string{
		{"111111111111", "us-east-1", "false"},
		{"999999999999", "us-east-1", "true"},
	}

	style := styleRows(rows, 2, map[string]lipgloss.Style{"true": excludedStyle})

	assert.Equal(t, headerStyle, style(0, 0))
	assert.Equal(t, cellStyle, style(1, 2))
	assert.Equal(t, excludedStyle, style(2, 0))
	assert.Equal(t, cellStyle, style(3, 0))
	assert.Equal(t, cellStyle, styleRows(nil, 0, nil)(1, 0))
}
