package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunInfoTable stores one property per row about the recorded run.
const RunInfoTable = "run_info"

const timeLayout = "2006-01-02 15:04:05.000000000"

// Property is a named value describing a run.
type Property struct {
	Property string
	Value    string
}

// RunRecorder records when and how the simulation was started.
type RunRecorder struct {
	recorder DataRecorder
	entries  []Property
}

// NewRunRecorder creates the run_info table on the recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(RunInfoTable, Property{})

	return &RunRecorder{recorder: recorder}
}

// Start captures the start time, the command line, the working directory and
// any extra properties, such as the DRAM standard.
func (e *RunRecorder) Start(extra ...Property) {
	e.entries = append(e.entries,
		Property{"Start Time", time.Now().Format(timeLayout)},
		Property{"Command", strings.Join(os.Args, " ")},
	)

	if wd, err := os.Getwd(); err == nil {
		e.entries = append(e.entries, Property{"Working Directory", wd})
	}

	e.entries = append(e.entries, extra...)
}

// End writes the captured properties along with the end time.
func (e *RunRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(RunInfoTable, entry)
	}

	e.recorder.InsertData(RunInfoTable,
		Property{"End Time", time.Now().Format(timeLayout)})

	e.entries = nil

	e.recorder.Flush()
}
