package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

// UseCaseTable writes title, subtitle and tags, one row per use case.
func UseCaseTable(w io.Writer, cases []model.UseCase) error {
	if len(cases) == 0 {
		_, err := fmt.Fprintln(w, NoMatches)
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Subtitle", "Tags"})
	for i, uc := range cases {
		t.AppendRow(table.Row{i + 1, uc.Title, uc.Subtitle, strings.Join(uc.Tags, ", ")})
	}
	t.Render()
	_, err := fmt.Fprintf(w, "(%d use cases)\n", len(cases))
	return err
}

// JSON writes v indented.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
