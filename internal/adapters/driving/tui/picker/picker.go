// Package picker provides the interactive resource picker for the connect
// flow: a filterable list of discovered resources with a manual entry
// fallback when discovery found nothing.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pulseboard/pulseboard-cli/internal/adapters/driving/tui/styles"
	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

// mode tracks which input the picker is showing.
type mode int

const (
	modeList mode = iota
	modeManual
)

// maxVisible caps the number of list rows rendered at once.
const maxVisible = 10

// Options configures a picker run.
type Options struct {
	// Provider describes what is being picked; its noun and name shape the
	// prompts.
	Provider domain.ProviderDescriptor

	// Resources are the discovered candidates, in backend order.
	Resources []domain.CandidateResource

	// ManualOnly starts the picker in manual entry with no list to show.
	ManualOnly bool

	// Notice is an explanatory line (discovery failed, nothing found).
	Notice string

	// ValidateManual gates manual entries before they can be confirmed.
	ValidateManual func(id string) error
}

// Model is the bubbletea model for the resource picker.
type Model struct {
	styles *styles.Styles
	opts   Options

	mode        mode
	filterInput textinput.Model
	manualInput textinput.Model
	filtered    []domain.CandidateResource
	cursor      int

	inputErr string
	choice   *domain.CandidateResource
	aborted  bool
}

// New creates a picker model.
func New(s *styles.Styles, opts Options) *Model {
	if s == nil {
		s = styles.NewStyles(nil)
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "type to filter"
	filterInput.CharLimit = 128

	manualInput := textinput.New()
	manualInput.Placeholder = fmt.Sprintf("enter %s id", noun(opts.Provider))
	manualInput.CharLimit = 128

	m := &Model{
		styles:      s,
		opts:        opts,
		filterInput: filterInput,
		manualInput: manualInput,
		filtered:    opts.Resources,
	}
	if opts.ManualOnly || len(opts.Resources) == 0 {
		m.mode = modeManual
		m.manualInput.Focus()
	} else {
		m.filterInput.Focus()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "tab":
		m.toggleMode()
		return m, nil
	}

	if m.mode == modeManual {
		return m.updateManual(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m *Model) toggleMode() {
	m.inputErr = ""
	if m.mode == modeManual {
		// No list to go back to.
		if m.opts.ManualOnly || len(m.opts.Resources) == 0 {
			return
		}
		m.mode = modeList
		m.manualInput.Blur()
		m.filterInput.Focus()
		return
	}
	m.mode = modeManual
	m.filterInput.Blur()
	m.manualInput.Focus()
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor < len(m.filtered) {
			chosen := m.filtered[m.cursor]
			m.choice = &chosen
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) applyFilter() {
	query := m.filterInput.Value()
	filtered := make([]domain.CandidateResource, 0, len(m.opts.Resources))
	for _, r := range m.opts.Resources {
		if r.Matches(query) {
			filtered = append(filtered, r)
		}
	}
	m.filtered = filtered
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m *Model) updateManual(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		id := strings.TrimSpace(m.manualInput.Value())
		if m.opts.ValidateManual != nil {
			if err := m.opts.ValidateManual(id); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
		}
		resource := domain.ManualResource(id)
		m.choice = &resource
		return m, tea.Quit
	}

	m.inputErr = ""
	var cmd tea.Cmd
	m.manualInput, cmd = m.manualInput.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf(
		"Select a %s for %s", noun(m.opts.Provider), m.opts.Provider.DisplayName())))
	b.WriteString("\n\n")

	if m.opts.Notice != "" {
		b.WriteString(m.styles.Warning.Render(m.opts.Notice))
		b.WriteString("\n\n")
	}

	if m.mode == modeManual {
		b.WriteString(m.styles.Normal.Render(fmt.Sprintf("Enter the %s id manually:", noun(m.opts.Provider))))
		b.WriteString("\n")
		b.WriteString(m.manualInput.View())
		b.WriteString("\n")
		if m.inputErr != "" {
			b.WriteString(m.styles.Error.Render(m.inputErr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if !m.opts.ManualOnly && len(m.opts.Resources) > 0 {
			b.WriteString(m.styles.Help.Render("enter confirm • tab back to list • esc cancel"))
		} else {
			b.WriteString(m.styles.Help.Render("enter confirm • esc cancel"))
		}
		return b.String()
	}

	b.WriteString(m.filterInput.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(m.styles.Muted.Render("no matches"))
		b.WriteString("\n")
	}
	for i, r := range m.filtered {
		if i >= maxVisible {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("… %d more, narrow the filter", len(m.filtered)-maxVisible)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("%s (%s)", r.DisplayLabel, r.ID)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ navigate • enter select • tab manual entry • esc cancel"))
	return b.String()
}

// Choice returns the picked resource, or false when the picker was
// cancelled.
func (m *Model) Choice() (domain.CandidateResource, bool) {
	if m.aborted || m.choice == nil {
		return domain.CandidateResource{}, false
	}
	return *m.choice, true
}

// Run runs the picker to completion and returns the choice.
func Run(s *styles.Styles, opts Options) (domain.CandidateResource, bool, error) {
	model := New(s, opts)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return domain.CandidateResource{}, false, fmt.Errorf("picker error: %w", err)
	}
	result, ok := final.(*Model)
	if !ok {
		return domain.CandidateResource{}, false, nil
	}
	choice, picked := result.Choice()
	return choice, picked, nil
}

func noun(desc domain.ProviderDescriptor) string {
	if desc.ResourceNoun != "" {
		return desc.ResourceNoun
	}
	return "resource"
}
