// Command simjoin-demo loads a job config, runs the join, and prints a
// sample of the output rows, exercising the ambient and domain stack
// end to end: internal/joincfg's layered YAML loading, doublestar
// glob-resolved CSV inputs, and runewidth-aligned table output.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-runewidth"

	"github.com/fulmenhq/simjoin"
	"github.com/fulmenhq/simjoin/internal/joincfg"
	"github.com/fulmenhq/simjoin/internal/obslog"
	"github.com/fulmenhq/simjoin/internal/qgram"
	"github.com/fulmenhq/simjoin/table"
)

func main() {
	configPath := flag.String("config", "", "path to a simjoin job YAML file")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "simjoin-demo: -config is required")
		os.Exit(2)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "simjoin-demo:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	job, err := joincfg.Load(configPath)
	if err != nil {
		return err
	}

	leftPath, err := resolveGlob(job.Left.Path)
	if err != nil {
		return fmt.Errorf("left input: %w", err)
	}
	rightPath, err := resolveGlob(job.Right.Path)
	if err != nil {
		return fmt.Errorf("right input: %w", err)
	}

	left, err := table.LoadCSV(leftPath, job.Left.KeyCol, job.Left.JoinCol, job.Left.OutCols)
	if err != nil {
		return err
	}
	right, err := table.LoadCSV(rightPath, job.Right.KeyCol, job.Right.JoinCol, job.Right.OutCols)
	if err != nil {
		return err
	}

	logger, err := obslog.New(&obslog.Config{
		Level:      obslog.Severity(job.Log.Level),
		FilePath:   job.Log.FilePath,
		MaxSizeMB:  job.Log.MaxSizeMB,
		MaxBackups: job.Log.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	opts := simjoin.Options{
		LKeyAttr: job.Left.KeyCol, RKeyAttr: job.Right.KeyCol,
		LJoinAttr: job.Left.JoinCol, RJoinAttr: job.Right.JoinCol,
		Threshold: job.Threshold, CompOp: job.CompOp,
		AllowMissing: job.AllowMissing,
		LOutAttrs:    job.Left.OutCols, ROutAttrs: job.Right.OutCols,
		OutSimScore: job.OutSimScore,
		NJobs:       job.NJobs,
		Tokenizer:   qgram.New(job.QVal, job.NormalizeUnicode),
		Logger:      logger,
	}

	res, err := simjoin.Join(context.Background(), left, right, opts)
	if err != nil {
		return err
	}

	printSample(res, job.SampleRows)
	return nil
}

// resolveGlob expands pattern as a doublestar glob and returns the
// single matching path. A plain path with no glob metacharacters
// matches itself.
func resolveGlob(pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no file matches %q", pattern)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d files, expected exactly one", pattern, len(matches))
	}
}

// printSample right-pads each column to its widest cell's display
// width (not byte length), so the sample table lines up even when
// output values contain multi-byte runes.
func printSample(res simjoin.Result, n int) {
	rows := res.Rows
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	fmt.Printf("%d row(s) total, showing %d\n", len(res.Rows), len(rows))
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(res.Columns))
	for i, col := range res.Columns {
		widths[i] = runewidth.StringWidth(col)
	}
	cellStrings := make([][]string, len(rows))
	for r, row := range rows {
		cellStrings[r] = make([]string, len(res.Columns))
		for i, col := range res.Columns {
			s := fmt.Sprintf("%v", row[col])
			cellStrings[r][i] = s
			if w := runewidth.StringWidth(s); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow(res.Columns, widths)
	for _, cells := range cellStrings {
		printRow(cells, widths)
	}
}

func printRow(cells []string, widths []int) {
	var b strings.Builder
	for i, c := range cells {
		pad := widths[i] - runewidth.StringWidth(c)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(c)
		b.WriteString(strings.Repeat(" ", pad+2))
	}
	fmt.Println(strings.TrimRight(b.String(), " "))
}
