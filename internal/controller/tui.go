package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

var (
	accentColor  = lipgloss.Color("214")
	successColor = lipgloss.Color("42")
	errorColor   = lipgloss.Color("203")
	dimColor     = lipgloss.Color("244")

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(dimColor)

	activeButtonStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(accentColor)

	foundStyle   = lipgloss.NewStyle().Foreground(successColor)
	missingStyle = lipgloss.NewStyle().Foreground(errorColor)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
)

// TUI implements UI using Bubble Tea for the confirmation dialog and
// lipgloss for colored output.
type TUI struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewTUI creates a new TUI bound to the command's streams.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
}

// Confirm runs a small modal dialog on stderr.
func (t *TUI) Confirm(ctx context.Context, message, affirmative string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	program := tea.NewProgram(
		newConfirmModel(message, affirmative),
		tea.WithInput(t.in),
		tea.WithOutput(t.errOut),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation dialog: %w", err)
	}

	model, ok := final.(confirmModel)

	return ok && model.accepted, nil
}

// DisplayError prints err in the error color.
func (t *TUI) DisplayError(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	_, _ = fmt.Fprintln(t.errOut, errorStyle.Render("✗ "+err.Error()))
}

// DisplayPreview prints a colored unified diff.
func (t *TUI) DisplayPreview(ctx context.Context, path m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(dialogStyle.Render("would create " + string(path)))
	b.WriteString("\n")

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(line)
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(foundStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		default:
			b.WriteString(line)
		}
	}

	_, err := fmt.Fprint(t.out, b.String())

	return err
}

// DisplayResolution prints a resolve result; YAML output stays uncolored.
func (t *TUI) DisplayResolution(ctx context.Context, resolution Resolution, format OutputFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if format == FormatYAML {
		out, err := renderResolutionYAML(resolution)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(t.out, out)

		return err
	}

	text := renderResolutionText(resolution)
	text = strings.Replace(text, "("+statusFound+")", foundStyle.Render("("+statusFound+")"), 1)
	text = strings.Replace(text, "("+statusMissing+")", missingStyle.Render("("+statusMissing+")"), 1)

	_, err := fmt.Fprint(t.out, text)

	return err
}

// DisplayPairs prints the list audit followed by a colored summary.
func (t *TUI) DisplayPairs(ctx context.Context, pairs []m.Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(pairs) == 0 {
		_, err := fmt.Fprintln(t.out, missingStyle.Render("No project files found"))
		return err
	}

	missing := 0

	for _, pair := range pairs {
		if !pair.Exists {
			missing++
		}
	}

	summary := foundStyle.Render("every file has a counterpart")
	if missing > 0 {
		summary = missingStyle.Render(fmt.Sprintf("%d of %d files have no counterpart", missing, len(pairs)))
	}

	_, err := fmt.Fprintf(t.out, "%s\n%s\n", renderPairsTable(pairs), summary)

	return err
}

type confirmKeyMap struct {
	Accept  key.Binding
	Decline key.Binding
	Toggle  key.Binding
	Select  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Decline, k.Toggle, k.Select}
}

// FullHelp implements help.KeyMap.
func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newConfirmKeyMap(affirmative string) confirmKeyMap {
	acceptKeys := []string{"y", "Y"}
	helpKey := "y"

	if affirmative != "" {
		first := strings.ToLower(affirmative[:1])
		if first != "y" && first != "n" {
			acceptKeys = append(acceptKeys, first, strings.ToUpper(first))
			helpKey = first + "/y"
		}
	}

	return confirmKeyMap{
		Accept: key.NewBinding(
			key.WithKeys(acceptKeys...),
			key.WithHelp(helpKey, strings.ToLower(affirmative)),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "N", "esc", "q", "ctrl+c"),
			key.WithHelp("n/esc", "cancel"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
			key.WithHelp("←/→", "switch"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
	}
}

// confirmModel is the Bubble Tea model behind Confirm.
type confirmModel struct {
	message     string
	affirmative string
	keys        confirmKeyMap
	help        help.Model
	onAccept    bool
	done        bool
	accepted    bool
}

func newConfirmModel(message, affirmative string) confirmModel {
	return confirmModel{
		message:     message,
		affirmative: affirmative,
		keys:        newConfirmKeyMap(affirmative),
		help:        help.New(),
		onAccept:    true,
	}
}

func (cm confirmModel) Init() tea.Cmd {
	return nil
}

func (cm confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return cm, nil
	}

	switch {
	case key.Matches(keyMsg, cm.keys.Accept):
		return cm.finish(true)
	case key.Matches(keyMsg, cm.keys.Decline):
		return cm.finish(false)
	case key.Matches(keyMsg, cm.keys.Toggle):
		cm.onAccept = !cm.onAccept
		return cm, nil
	case key.Matches(keyMsg, cm.keys.Select):
		return cm.finish(cm.onAccept)
	}

	return cm, nil
}

func (cm confirmModel) finish(accepted bool) (tea.Model, tea.Cmd) {
	cm.accepted = accepted
	cm.done = true

	return cm, tea.Quit
}

func (cm confirmModel) View() string {
	if cm.done {
		return ""
	}

	accept, cancel := buttonStyle, activeButtonStyle
	if cm.onAccept {
		accept, cancel = activeButtonStyle, buttonStyle
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		accept.Render(cm.affirmative),
		" ",
		cancel.Render("Cancel"),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, cm.message, "", buttons)

	return dialogStyle.Render(body) + "\n" + cm.help.ShortHelpView(cm.keys.ShortHelp()) + "\n"
}
