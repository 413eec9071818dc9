package importers

import (
	"fmt"
	"io"
	"log"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ConsoleReporter prints one line per batch and a summary table, for
// interactive CLI runs.
type ConsoleReporter struct {
	out     io.Writer
	verbose bool
}

func NewConsoleReporter(out io.Writer, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, verbose: verbose}
}

func (r *ConsoleReporter) Start(total, batches int) {
	fmt.Fprintf(r.out, "\nImporting %d records in %d batches...\n\n", total, batches)
}

func (r *ConsoleReporter) BatchDone(result BatchResult) {
	b := result.Batch
	if result.OK() {
		fmt.Fprintf(r.out, "  [OK] records %d-%d imported\n", b.FirstIndex(), b.LastIndex())
		if r.verbose && result.Inserted != b.Size() {
			fmt.Fprintf(r.out, "       store returned %d of %d rows\n", result.Inserted, b.Size())
		}
		return
	}
	fmt.Fprintf(r.out, "  [ERROR] records %d-%d failed: %v\n", b.FirstIndex(), b.LastIndex(), result.Err)
}

func (r *ConsoleReporter) Finish(summary Summary) {
	fmt.Fprintln(r.out)
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Import Summary")
	t.AppendRows([]table.Row{
		{"Succeeded", summary.Succeeded},
		{"Failed", summary.Failed},
		{"Total", summary.Total},
	})
	t.Render()
}

// LogReporter writes progress through the standard logger, for background runs.
type LogReporter struct {
	prefix string
}

func NewLogReporter(prefix string) *LogReporter {
	return &LogReporter{prefix: prefix}
}

func (r *LogReporter) Start(total, batches int) {
	log.Printf("%s starting import of %d records (%d batches)", r.prefix, total, batches)
}

func (r *LogReporter) BatchDone(result BatchResult) {
	b := result.Batch
	if result.OK() {
		log.Printf("%s records %d-%d imported", r.prefix, b.FirstIndex(), b.LastIndex())
		return
	}
	log.Printf("%s records %d-%d failed: %v", r.prefix, b.FirstIndex(), b.LastIndex(), result.Err)
}

func (r *LogReporter) Finish(summary Summary) {
	log.Printf("%s import finished: %d succeeded, %d failed, %d total",
		r.prefix, summary.Succeeded, summary.Failed, summary.Total)
}

// MultiReporter fans notifications out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Start(total, batches int) {
	for _, r := range m {
		r.Start(total, batches)
	}
}

func (m MultiReporter) BatchDone(result BatchResult) {
	for _, r := range m {
		r.BatchDone(result)
	}
}

func (m MultiReporter) Finish(summary Summary) {
	for _, r := range m {
		r.Finish(summary)
	}
}
