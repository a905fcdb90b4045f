package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/viper"

	"github.com/muellerzr/huggingface-hub/hub"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// resultsWriter renders SDK records either as a go-pretty table or as
// indented JSON, switched by the global --format flag. JSON output is
// the raw record marshal, suitable for piping into jq.
type resultsWriter struct {
	out    io.Writer
	format string
}

func newResultsWriter(out io.Writer) *resultsWriter {
	return &resultsWriter{out: out, format: viper.GetString("format")}
}

func (w *resultsWriter) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

func (w *resultsWriter) newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func (w *resultsWriter) printModels(models []*hub.ModelInfo) error {
	if w.format == formatJSON {
		return w.printJSON(models)
	}
	if len(models) == 0 {
		_, err := fmt.Fprintln(w.out, "No models found")
		return err
	}

	t := w.newTable(table.Row{"Model", "Task", "Library", "Downloads", "Likes", "Updated"})
	for _, m := range models {
		t.AppendRow(table.Row{
			text.FgHiBlue.Sprint(m.RepoID()),
			m.PipelineTag,
			m.LibraryName,
			m.Downloads,
			m.Likes,
			formatTime(m.LastModified),
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d models", len(models))})
	t.Render()
	return nil
}

func (w *resultsWriter) printModelDetails(m *hub.ModelInfo) error {
	if w.format == formatJSON {
		return w.printJSON(m)
	}

	t := w.newTable(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Model", text.FgHiBlue.Sprint(m.RepoID())},
		{"Author", m.Author},
		{"Revision", m.SHA},
		{"Task", m.PipelineTag},
		{"Library", m.LibraryName},
		{"Downloads", m.Downloads},
		{"Likes", m.Likes},
		{"Private", m.Private},
		{"Updated", formatTime(m.LastModified)},
		{"Tags", truncate(strings.Join(m.Tags, ", "), 100)},
		{"Files", len(m.Files())},
	})
	t.Render()
	return nil
}

func (w *resultsWriter) printDatasets(datasets []*hub.DatasetInfo) error {
	if w.format == formatJSON {
		return w.printJSON(datasets)
	}
	if len(datasets) == 0 {
		_, err := fmt.Fprintln(w.out, "No datasets found")
		return err
	}

	t := w.newTable(table.Row{"Dataset", "Downloads", "Likes", "Updated"})
	for _, d := range datasets {
		t.AppendRow(table.Row{
			text.FgHiBlue.Sprint(d.ID),
			d.Downloads,
			d.Likes,
			formatTime(d.LastModified),
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d datasets", len(datasets))})
	t.Render()
	return nil
}

func (w *resultsWriter) printDatasetDetails(d *hub.DatasetInfo) error {
	if w.format == formatJSON {
		return w.printJSON(d)
	}

	t := w.newTable(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Dataset", text.FgHiBlue.Sprint(d.ID)},
		{"Author", d.Author},
		{"Revision", d.SHA},
		{"Downloads", d.Downloads},
		{"Likes", d.Likes},
		{"Private", d.Private},
		{"Updated", formatTime(d.LastModified)},
		{"Tags", truncate(strings.Join(d.Tags, ", "), 100)},
		{"Description", truncate(d.Description, 100)},
		{"Files", len(d.Files())},
	})
	t.Render()
	return nil
}

func (w *resultsWriter) printFiles(files []string) error {
	if w.format == formatJSON {
		return w.printJSON(files)
	}
	for _, f := range files {
		if _, err := fmt.Fprintln(w.out, f); err != nil {
			return err
		}
	}
	return nil
}

func (w *resultsWriter) printMetrics(metrics []*hub.MetricInfo) error {
	if w.format == formatJSON {
		return w.printJSON(metrics)
	}
	if len(metrics) == 0 {
		_, err := fmt.Fprintln(w.out, "No metrics found")
		return err
	}

	t := w.newTable(table.Row{"Metric", "Description"})
	for _, m := range metrics {
		t.AppendRow(table.Row{text.FgHiBlue.Sprint(m.ID), truncate(m.Description, 80)})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d metrics", len(metrics))})
	t.Render()
	return nil
}

func (w *resultsWriter) printUser(u *hub.User) error {
	if w.format == formatJSON {
		return w.printJSON(u)
	}

	orgs := make([]string, 0, len(u.Orgs))
	for _, o := range u.Orgs {
		orgs = append(orgs, o.Name)
	}

	t := w.newTable(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Name", text.FgHiBlue.Sprint(u.Name)},
		{"Full name", u.Fullname},
		{"Email", u.Email},
		{"Orgs", strings.Join(orgs, ", ")},
	})
	t.Render()
	return nil
}

// printVocabulary prints the facet names of a vocabulary; in table mode
// it uses the same bullet list the SDK renders for interactive discovery.
func (w *resultsWriter) printVocabulary(v hub.TagVocabulary) error {
	if w.format == formatJSON {
		return w.printJSON(v)
	}
	_, err := fmt.Fprint(w.out, v.String())
	return err
}

func (w *resultsWriter) printTagSet(s hub.TagSet) error {
	if w.format == formatJSON {
		return w.printJSON(s)
	}

	t := w.newTable(table.Row{"Attribute", "Value"})
	for _, label := range s.Labels() {
		t.AppendRow(table.Row{text.FgHiBlue.Sprint(label), s[label]})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d values", len(s))})
	t.Render()
	return nil
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02")
}

// truncate shortens s to at most max bytes plus an ellipsis, cutting on
// a rune boundary so multi-byte labels stay valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
