package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-modelgen/pkg/exportkeys"
	"github.com/goliatone/go-modelgen/pkg/npz"
)

func runVerify(ctx context.Context, args []string, stdout io.Writer) error {
	flags := newCommonFlags("verify")
	strict := flags.fs.Bool("strict", false, "also fail on arrays no export key refers to")
	if err := flags.parse(args); err != nil {
		return err
	}

	src, err := flags.document()
	if err != nil {
		return err
	}
	if flags.fs.NArg() != 2 {
		return fmt.Errorf("%w: verify needs DOCUMENT and ARCHIVE arguments", errUsage)
	}
	archivePath := flags.fs.Arg(1)

	models, err := flags.orchestrator().Build(ctx, flags.request(src))
	if err != nil {
		return err
	}
	archive, err := npz.Open(archivePath)
	if err != nil {
		return err
	}
	entries := exportkeys.Entries(models...)
	report := npz.Verify(archive, entries)

	if _, err := fmt.Fprintln(stdout, verifyTable(archive, entries, report)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(stdout, "%s of %s keys present, %s arrays in %s\n",
		humanize.Comma(int64(len(report.Present))), humanize.Comma(int64(len(entries))),
		humanize.Comma(int64(archive.Len())), archivePath); err != nil {
		return err
	}

	if err := report.Err(); err != nil {
		return err
	}
	if *strict && len(report.Extra) > 0 {
		return fmt.Errorf("npz: archive has arrays no export key refers to: %s", strings.Join(report.Extra, ", "))
	}
	return nil
}

func verifyTable(archive *npz.Archive, entries []exportkeys.Entry, report npz.Report) string {
	status := make(map[string]string, len(entries))
	for _, key := range report.Present {
		status[key] = "ok"
	}
	for _, key := range report.Reshaped {
		status[key] = "ok (flat)"
	}
	for _, key := range report.MissingOptional {
		status[key] = "absent (optional)"
	}
	for _, key := range report.MissingRequired {
		status[key] = "MISSING"
	}
	for _, mismatch := range report.ShapeMismatches {
		status[mismatch.Key] = "SHAPE MISMATCH"
	}

	table := newReportTable(lipgloss.Left, lipgloss.Left, lipgloss.Left, lipgloss.Left)
	table.table.Headers("Key", "Expected", "Archive", "Status")
	for _, entry := range entries {
		actual := "-"
		if array, ok := archive.Get(entry.Key); ok {
			actual = fmt.Sprintf("%v %s", array.Shape, array.DType)
		}
		state := status[entry.Key]
		table.Row(state == "MISSING" || state == "SHAPE MISMATCH",
			entry.Key, fmt.Sprintf("%v", entry.Shape), actual, state)
	}
	for _, name := range report.Extra {
		array, _ := archive.Get(name)
		table.Row(false, name, "-", fmt.Sprintf("%v %s", array.Shape, array.DType), "extra")
	}
	return table.Render()
}
