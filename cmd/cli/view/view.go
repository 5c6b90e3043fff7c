package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/linecard/recorder/pkg/convention/dispatch"
	"github.com/linecard/recorder/pkg/convention/exclusion"
	"github.com/linecard/recorder/pkg/convention/recorder"
	"github.com/linecard/recorder/pkg/convention/target"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/golang-module/carbon/v2"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	excludedStyle = cellStyle.Foreground(lipgloss.Color("8"))
	failedStyle   = cellStyle.Foreground(lipgloss.Color("1"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(styleRows(nil, 0, nil))
}

// styleRows picks a style for each data row from the value in its index column.
// Row 0 is the header; data row r is rows[r-1].
func styleRows(rows [][]string, index int, styles map[string]lipgloss.Style) table.StyleFunc {
	return func(row, col int) lipgloss.Style {
		if row == 0 {
			return headerStyle
		}

		i := row - 1
		if i < 0 || i >= len(rows) {
			return cellStyle
		}

		if style, ok := styles[rows[i][index]]; ok {
			return style
		}
		return cellStyle
	}
}

func Targets(targets []target.Target, excluded exclusion.Set) string {
	t := newTable("Account", "Region", "Excluded")

	rows := make([][]string, 0, len(targets))
	for _, tgt := range targets {
		rows = append(rows, []string{tgt.Account, tgt.Region, fmt.Sprint(excluded.Contains(tgt.Account))})
	}

	t.Rows(rows...)
	t.StyleFunc(styleRows(rows, 2, map[string]lipgloss.Style{"true": excludedStyle}))

	return t.String()
}

func Report(report dispatch.Report, started time.Time) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("dispatch %s", report.DispatchId)))
	fmt.Fprintf(&b, " %s, started %s\n",
		report.Event,
		carbon.CreateFromStdTime(started).DiffForHumans(),
	)

	t := newTable("Account", "Region", "State", "Message")

	rows := make([][]string, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		message := outcome.MessageId
		if outcome.Err != nil {
			message = outcome.Err.Error()
		}
		rows = append(rows, []string{outcome.Target.Account, outcome.Target.Region, string(outcome.State), message})
	}

	t.Rows(rows...)
	t.StyleFunc(styleRows(rows, 2, map[string]lipgloss.Style{
		string(dispatch.Failed):   failedStyle,
		string(dispatch.Excluded): excludedStyle,
	}))

	b.WriteString(t.String())
	fmt.Fprintf(&b, "\nsent %d, excluded %d, failed %d\n",
		len(report.Sent()), len(report.Excluded()), len(report.Failed()))

	if report.Enumeration != nil {
		b.WriteString(failedStyle.Render("enumeration stopped: " + report.Enumeration.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func Result(result recorder.Result) string {
	t := newTable("Field", "Value")

	t.Row("Status", string(result.Status))
	t.Row("Target", result.Item.String())

	if result.Status == recorder.Skipped {
		t.Row("Reason", result.Reason)
		return t.String()
	}

	document := result.Document
	t.Row("Recorder", result.Recorder)
	t.Row("Role", aws.ToString(document.RoleARN))

	if document.RecordingMode != nil {
		t.Row("Frequency", string(document.RecordingMode.RecordingFrequency))
		for _, override := range document.RecordingMode.RecordingModeOverrides {
			t.Row("Continuous", joinTypes(override.ResourceTypes))
		}
	}

	if document.RecordingGroup != nil && document.RecordingGroup.ExclusionByResourceTypes != nil {
		t.Row("Excluded", joinTypes(document.RecordingGroup.ExclusionByResourceTypes.ResourceTypes))
	}

	return t.String()
}

func joinTypes[T ~string](types []T) string {
	if len(types) == 0 {
		return "-"
	}

	names := make([]string, 0, len(types))
	for _, name := range types {
		names = append(names, string(name))
	}

	return strings.Join(names, "\n")
}
