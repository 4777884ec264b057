package tui

import (
	"fmt"
	"strings"
	"time"

	"sld/analysis"
)

// reportEvent carries an async analysis report back onto the event
// loop, so the delivery callback never touches the screen directly.
type reportEvent struct {
	when   time.Time
	report *analysis.Report
}

func newReportEvent(report *analysis.Report) *reportEvent {
	return &reportEvent{when: time.Now(), report: report}
}

// When implements tcell.Event.
func (e *reportEvent) When() time.Time {
	return e.when
}

func (a *App) showReport(report *analysis.Report) {
	parts := []string{fmt.Sprintf("analysis %s: %s", report.Status, report.Summary)}
	if len(report.Issues) > 0 {
		parts = append(parts, fmt.Sprintf("%d issue(s)", len(report.Issues)))
		a.logger.Info("analysis issues", "issues", report.Issues)
	}
	if len(report.Recommendations) > 0 {
		a.logger.Info("analysis recommendations", "recommendations", report.Recommendations)
	}
	a.setStatus("%s", strings.Join(parts, " | "))
}
