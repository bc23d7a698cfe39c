package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-modelgen/pkg/layers"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// bytesPerParameter assumes float32 weights.
const bytesPerParameter = 4

func runInspect(ctx context.Context, args []string, stdout io.Writer) error {
	flags := newCommonFlags("inspect")
	if err := flags.parse(args); err != nil {
		return err
	}

	src, err := flags.document()
	if err != nil {
		return err
	}
	models, err := flags.orchestrator().Build(ctx, flags.request(src))
	if err != nil {
		return err
	}

	for _, m := range models {
		if _, err := fmt.Fprintln(stdout, inspectModel(m)); err != nil {
			return err
		}
	}
	return nil
}

func inspectModel(m *model.Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.ModuleName()))
	b.WriteByte('\n')
	for _, line := range render.DescriptionLines(m.Description()) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	summary := newReportTable(lipgloss.Right, lipgloss.Left)
	summary.Row(false, "layers", humanize.Comma(int64(m.Len())))
	summary.Row(false, "input", flowLabel(m.InputRank(), m.InputShape()))
	summary.Row(false, "output", flowLabel(m.OutputRank(), m.OutputShape()))
	summary.Row(false, "# parameters", humanize.Comma(int64(m.ParameterCount())))
	summary.Row(false, "# bytes (f32)", humanize.Bytes(uint64(m.ParameterCount()*bytesPerParameter)))
	b.WriteString(summary.Render())
	b.WriteByte('\n')

	layerTable := newReportTable(lipgloss.Left, lipgloss.Left, lipgloss.Left, lipgloss.Left, lipgloss.Left, lipgloss.Right)
	layerTable.table.Headers("Layer", "Type", "Input", "Output", "Weights", "Params")
	for idx, layer := range m.Layers() {
		boundary := m.Boundary(idx)
		var weights []string
		params := 0
		for _, weight := range layer.Weights() {
			label := weight.Name() + " " + weight.ShapeLiteral()
			if weight.Optional() {
				label += "?"
			}
			weights = append(weights, label)
			params += weight.Size()
		}
		layerTable.Row(false,
			layer.Name(),
			layer.Kind().String(),
			flowLabel(boundary.InputRank, boundary.InputShape),
			flowLabel(boundary.OutputRank, boundary.OutputShape),
			strings.Join(weights, ", "),
			humanize.Comma(int64(params)),
		)
	}
	b.WriteString(layerTable.Render())
	return b.String()
}

func flowLabel(rank layers.Rank, shape []int) string {
	if len(shape) > 0 {
		return layers.TupleLiteral(shape...)
	}
	return fmt.Sprintf("rank %d", rank)
}
