package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/graph"
	"github.com/matzehuels/flow/pkg/pipeline"
)

const (
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0

	// watchChrome is the number of terminal rows taken by the header and
	// footer around the node table.
	watchChrome = 8

	pollInterval = time.Second
)

var (
	watchHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	watchBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
	watchErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags      solveFlags
		cellWidth  float64
		cellHeight float64
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "watch [document]",
		Short: "Re-solve a document as the terminal is resized",
		Long: `Watch solves a document for a viewport derived from the terminal size and
solves it again whenever the terminal is resized or the file changes.

Each terminal cell counts as --cell-width × --cell-height viewport units.
Passing --width or --height pins that axis instead.

Keys: r reload, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cellWidth <= 0 || cellHeight <= 0 {
				return errors.New(errors.ErrCodeInvalidViewport, "cell size must be positive")
			}
			var base pipeline.Options
			c.apply(cmd, flags, &base)
			base.Place = true
			base.Filename = args[0]

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			m, err := newWatchModel(cmd.Context(), runner, base, args[0])
			if err != nil {
				return err
			}
			m.cellWidth, m.cellHeight = cellWidth, cellHeight
			m.pinWidth = cmd.Flags().Changed("width")
			m.pinHeight = cmd.Flags().Changed("height")

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()), tea.WithOutput(c.Out))
			if _, err := p.Run(); err != nil {
				if stderrors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
					return cmd.Context().Err()
				}
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&cellWidth, "cell-width", defaultCellWidth, "viewport units per terminal column")
	cmd.Flags().Float64Var(&cellHeight, "cell-height", defaultCellHeight, "viewport units per terminal row")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// watchModel - Live re-solve on resize
// =============================================================================

// solvedMsg carries the result of one solve. seq identifies the request so
// results that arrive after a newer resize are dropped.
type solvedMsg struct {
	seq      int
	snapshot graph.Snapshot
	cached   bool
	took     time.Duration
	err      error
}

// reloadMsg carries freshly read document bytes.
type reloadMsg struct {
	data    []byte
	modTime time.Time
	err     error
}

type tickMsg time.Time

// watchModel is the bubbletea model behind flow watch. The terminal drives
// the viewport: every tea.WindowSizeMsg triggers a new solve.
type watchModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	base   pipeline.Options
	path   string

	cellWidth, cellHeight float64
	pinWidth, pinHeight   bool

	data    []byte
	modTime time.Time

	cols, rows int
	seq        int
	solving    bool

	snapshot *graph.Snapshot
	cached   bool
	took     time.Duration
	err      error
}

// newWatchModel reads the document at path and prepares the model. Nothing
// is solved until the first window size arrives.
func newWatchModel(ctx context.Context, runner *pipeline.Runner, base pipeline.Options, path string) (watchModel, error) {
	data, err := readInput(path)
	if err != nil {
		return watchModel{}, err
	}
	var modTime time.Time
	if fi, err := os.Stat(path); err == nil {
		modTime = fi.ModTime()
	}
	return watchModel{
		ctx:        ctx,
		runner:     runner,
		base:       base,
		path:       path,
		cellWidth:  defaultCellWidth,
		cellHeight: defaultCellHeight,
		data:       data,
		modTime:    modTime,
	}, nil
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.reload(true)
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		return m.resolve()
	case tickMsg:
		return m, tea.Batch(m.reload(false), tick())
	case reloadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.data == nil {
			return m, nil
		}
		m.data, m.modTime = msg.data, msg.modTime
		return m.resolve()
	case solvedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.solving = false
		m.err = msg.err
		if msg.err == nil {
			snap := msg.snapshot
			m.snapshot, m.cached, m.took = &snap, msg.cached, msg.took
		}
	}
	return m, nil
}

// viewport converts the terminal size to layout units. Each axis keeps at
// least one cell.
func (m watchModel) viewport() (float64, float64) {
	w := float64(max(m.cols, 1)) * m.cellWidth
	h := float64(max(m.rows-watchChrome, 1)) * m.cellHeight
	if m.pinWidth {
		w = m.base.Width
	}
	if m.pinHeight {
		h = m.base.Height
	}
	return w, h
}

// resolve starts a solve for the current viewport and document.
func (m watchModel) resolve() (watchModel, tea.Cmd) {
	m.seq++
	m.solving = true

	opts := m.base
	opts.Document = m.data
	opts.Width, opts.Height = m.viewport()
	seq, ctx, runner := m.seq, m.ctx, m.runner

	return m, func() tea.Msg {
		start := time.Now()
		res, err := runner.SolveWithCacheInfo(ctx, opts)
		if err != nil {
			return solvedMsg{seq: seq, err: err}
		}
		return solvedMsg{seq: seq, snapshot: res.Snapshot, cached: res.CacheInfo.SolveHit, took: time.Since(start)}
	}
}

// reload re-reads the document. Unless forced, it only reads when the
// modification time changed.
func (m watchModel) reload(force bool) tea.Cmd {
	path, last := m.path, m.modTime
	return func() tea.Msg {
		fi, err := os.Stat(path)
		if err != nil {
			return reloadMsg{err: err}
		}
		if !force && !fi.ModTime().After(last) {
			return reloadMsg{}
		}
		data, err := readInput(path)
		if err != nil {
			return reloadMsg{err: err}
		}
		return reloadMsg{data: data, modTime: fi.ModTime()}
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName+" watch") + " " + StyleValue.Render(m.path))
	b.WriteString("\n")

	w, h := m.viewport()
	status := StyleDim.Render(fmt.Sprintf("viewport %g×%g · terminal %d×%d", w, h, m.cols, m.rows))
	switch {
	case m.solving:
		status += StyleDim.Render(" · solving")
	case m.snapshot != nil && m.cached:
		status += StyleDim.Render(" · ") + styleCached.Render(iconCached)
	case m.snapshot != nil:
		status += StyleDim.Render(" · ") + styleComputed.Render(m.took.Round(time.Microsecond).String())
	}
	b.WriteString(status)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(watchErrorStyle.Render(iconError + " " + errors.UserMessage(m.err)))
		b.WriteString("\n\n")
	}

	if m.snapshot != nil {
		b.WriteString(m.table().Render())
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render("r reload  q quit"))
	return b.String()
}

// table renders the solved nodes, truncated to the rows that fit.
func (m watchModel) table() *table.Table {
	nodes := m.snapshot.Nodes
	if limit := m.rows - watchChrome; limit > 0 && len(nodes) > limit {
		nodes = nodes[:limit]
	}

	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			strings.Repeat("  ", n.Depth) + n.DisplayLabel(),
			n.Kind,
			fmt.Sprintf("%g×%g", n.Width, n.Height),
			fmt.Sprintf("%g,%g", n.X, n.Y),
			n.WidthPolicy + " / " + n.HeightPolicy,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(watchBorderStyle).
		Headers("Node", "Kind", "Size", "Position", "Sizing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return watchHeaderStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
}
