package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/bspc/report"
)

func TestReportAccumulates(t *testing.T) {
	var r report.Report

	r.Warn(0, "window-effect", "linedef %d faces open sector", 42)
	r.SoftOverflow(0, "segs", "seg count %d exceeds 32767", 40000)
	r.HardOverflow(1, "blockmap-offset", "offset %d exceeds 65535", 70000)
	r.BadArgs(0, "factor", "factor %d out of range, reset to %d", 99, 11)

	assert.Len(t, r.Entries, 4)
	assert.True(t, r.HasSoftOverflow())
	assert.True(t, r.HasHardOverflow())
	assert.Equal(t, 1, r.Count(report.SeverityWarning))
	assert.Equal(t, 1, r.Count(report.SeveritySoftOverflow))
	assert.Equal(t, 1, r.Count(report.SeverityHardOverflow))
	assert.Equal(t, 1, r.Count(report.SeverityBadArgs))
	assert.Equal(t, 1, r.Entries[2].Level)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", report.SeverityWarning.String())
	assert.Equal(t, "soft-overflow", report.SeveritySoftOverflow.String())
	assert.Equal(t, "hard-overflow", report.SeverityHardOverflow.String())
	assert.Equal(t, "bad-args", report.SeverityBadArgs.String())
}
