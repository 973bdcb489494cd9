package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/flow/pkg/document"
	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/pipeline"
)

// stdinArg selects standard input (or output, for -o) instead of a file.
const stdinArg = "-"

// extensions maps output formats to the suffix appended to the input's base
// name when no output path is given.
var extensions = map[string]string{
	pipeline.FormatJSON: ".layout.json",
	pipeline.FormatDOT:  ".dot",
	pipeline.FormatSVG:  ".svg",
}

// solveOpts holds the flags of the solve command.
type solveOpts struct {
	solveFlags
	output   string
	formats  string
	place    bool
	detailed bool
	noCache  bool
	refresh  bool
	jobs     int
}

// solvedFile is the outcome of solving one input.
type solvedFile struct {
	input   string
	outputs []string
	result  *pipeline.Result
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [document...]",
		Short: "Solve tree documents for a viewport",
		Long: `Solve one or more tree documents (TOML or JSON) for a viewport and write
the result as a JSON snapshot, Graphviz DOT, or SVG.

Several documents are solved concurrently. Without -o, outputs are written
next to each input (app.toml → app.layout.json). With a single input -o
names the output file, or the base path when several formats are requested;
with several inputs it names a directory. Use "-" to read a document from
stdin or to write a single output to stdout.

Results are cached, so solving an unchanged document for the same viewport
again is instant.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path or directory (\"-\" for stdout)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.place, "place", true, "compute positions as well as sizes")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include sizing policies in DOT/SVG labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "documents solved in parallel")

	return cmd
}

// runSolve solves every input, then reports in input order.
func (c *CLI) runSolve(cmd *cobra.Command, inputs []string, opts solveOpts) error {
	ctx := cmd.Context()
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if opts.output != "" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
	}
	if opts.output == stdinArg && (len(inputs) > 1 || len(formats) > 1) {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one document and one format")
	}
	for _, in := range inputs {
		if in == stdinArg && opts.output == "" && len(formats) > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "stdin input with several formats needs -o")
		}
	}
	paths, err := planOutputs(inputs, opts.output, formats)
	if err != nil {
		return err
	}
	if opts.output != "" && opts.output != stdinArg && len(inputs) > 1 {
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	base := pipeline.Options{
		Place:    opts.place,
		Formats:  formats,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
	}
	c.apply(cmd, opts.solveFlags, &base)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, c.Err, solvingMessage(0, len(inputs)))
	spinner.Start()

	var finished atomic.Int32
	results := make([]solvedFile, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, input := range inputs {
		g.Go(func() error {
			res, err := c.solveFile(gctx, runner, input, paths[i], base)
			if err != nil {
				return err
			}
			results[i] = res
			spinner.SetMessage(solvingMessage(int(finished.Add(1)), len(inputs)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		spinner.StopWithError(c.Out, "Solve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if opts.output == stdinArg {
		return nil
	}

	for _, r := range results {
		printSuccess(c.Out, "Solved %s", r.input)
		for _, out := range r.outputs {
			printFile(c.Out, out)
		}
		printStats(c.Out, r.result.Stats.NodeCount, r.result.Snapshot.Viewport.Width, r.result.Snapshot.Viewport.Height, r.result.CacheInfo.SolveHit)
	}
	if len(results) == 1 && len(results[0].outputs) > 0 {
		printNewline(c.Out)
		printNextStep(c.Out, "Watch", appName+" watch "+results[0].input)
	}
	return nil
}

func solvingMessage(done, total int) string {
	if total == 1 {
		return "Solving..."
	}
	return fmt.Sprintf("Solving %d/%d documents...", done, total)
}

// planOutputs resolves the output path of every input and format, in
// format order per input. Two writes to the same file are rejected.
func planOutputs(inputs []string, output string, formats []string) ([][]string, error) {
	many, multiFormat := len(inputs) > 1, len(formats) > 1
	seen := make(map[string]string)
	plan := make([][]string, len(inputs))
	for i, input := range inputs {
		for _, format := range formats {
			path := outputPath(input, output, format, many, multiFormat)
			plan[i] = append(plan[i], path)
			if path == stdinArg {
				continue
			}
			key := filepath.Clean(path)
			if prev, ok := seen[key]; ok {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"%s and %s would both write %s", prev, input, path)
			}
			seen[key] = input
		}
	}
	return plan, nil
}

// solveFile reads, solves and writes one document to paths, one per format.
func (c *CLI) solveFile(ctx context.Context, runner *pipeline.Runner, input string, paths []string, base pipeline.Options) (solvedFile, error) {
	prog := newProgress(c.Logger)

	data, err := readInput(input)
	if err != nil {
		return solvedFile{}, err
	}
	opts := base
	opts.Document = data
	if input != stdinArg {
		opts.Filename = input
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return solvedFile{}, fmt.Errorf("%s: %w", input, err)
	}

	sf := solvedFile{input: input, result: result}
	for j, format := range opts.Formats {
		path := paths[j]
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return solvedFile{}, err
		}
		if path != stdinArg {
			sf.outputs = append(sf.outputs, path)
		}
	}
	prog.done("Solved "+input, "nodes", result.Stats.NodeCount, "cached", result.CacheInfo.SolveHit)
	return sf, nil
}

func readInput(input string) ([]byte, error) {
	if input == stdinArg {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	if _, err := document.FormatFromFilename(input); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", input)
		}
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == stdinArg {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// outputPath derives where one format of one input is written.
//
//   - many inputs: output is a directory (or empty for "next to the input")
//   - one input, one format: output is the file itself
//   - one input, several formats: output is a base path
func outputPath(input, output, format string, many, multiFormat bool) string {
	ext := extensions[format]
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if input == stdinArg {
		name = "stdin"
	}

	switch {
	case output == stdinArg:
		return stdinArg
	case output == "" && input == stdinArg:
		return stdinArg
	case output == "":
		return strings.TrimSuffix(input, filepath.Ext(input)) + ext
	case many:
		return filepath.Join(output, name+ext)
	case !multiFormat:
		return output
	}
	return basePath(output) + ext
}

// basePath strips a known output extension from path.
func basePath(path string) string {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}
