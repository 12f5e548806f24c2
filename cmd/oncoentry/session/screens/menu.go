package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"oncoentry/cmd/oncoentry/session/components"
)

// MenuAction is the operator's choice on the cycle menu.
type MenuAction int

const (
	// MenuAddCycle opens the next treatment cycle form.
	MenuAddCycle MenuAction = iota
	// MenuFinalFollowup opens the final follow-up form.
	MenuFinalFollowup
	// MenuNewPatient abandons the open patient and starts a fresh baseline.
	MenuNewPatient
	// MenuQuit exits the session.
	MenuQuit
)

const (
	menuChoiceCycle      = "cycle"
	menuChoiceFollowup   = "followup"
	menuChoiceNewPatient = "new-patient"
	menuChoiceQuit       = "quit"
)

// MenuScreen is the decision point between cycles: add the next cycle, record
// the final follow-up, or move on to a new patient. The next cycle number is
// supplied by the lifecycle machine, which recomputes it from storage.
type MenuScreen struct {
	form      *huh.Form
	patientID string
	nextCycle int
	notice    string
	isError   bool
	choice    string
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewMenuScreen builds the cycle menu. The final follow-up option is offered
// only once at least one cycle has been recorded.
func NewMenuScreen(patientID string, nextCycle int, notice string, isError bool) *MenuScreen {
	s := &MenuScreen{
		patientID: patientID,
		nextCycle: nextCycle,
		notice:    notice,
		isError:   isError,
		choice:    menuChoiceCycle,
	}

	opts := []huh.Option[string]{
		huh.NewOption(fmt.Sprintf("Add Treatment Cycle %d", nextCycle), menuChoiceCycle),
	}
	if nextCycle > 1 {
		opts = append(opts, huh.NewOption("Final Follow-Up Visit", menuChoiceFollowup))
	}
	opts = append(opts,
		huh.NewOption("New Patient", menuChoiceNewPatient),
		huh.NewOption("Quit", menuChoiceQuit),
	)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("menu_action").
				Title("What would you like to do next?").
				Options(opts...).
				Value(&s.choice),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *MenuScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *MenuScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *MenuScreen) View() string {
	title := components.TitleStyle.Render("TREATMENT CYCLES")
	subtitle := components.SubtitleStyle.Render(fmt.Sprintf(
		"Patient %s | Completed cycles: %d", s.patientID, s.nextCycle-1))

	parts := []string{title, subtitle}
	if s.notice != "" {
		style := components.SuccessStyle
		if s.isError {
			style = components.ErrorStyle
		}
		parts = append(parts, style.Render(s.notice), "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		"Enter: Select | Ctrl+C: Quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if a choice was made
func (s *MenuScreen) Done() bool { return s.done }

// Cancelled returns true if the operator quit
func (s *MenuScreen) Cancelled() bool { return s.cancelled }

// Action returns the selected menu action
func (s *MenuScreen) Action() MenuAction {
	switch s.choice {
	case menuChoiceFollowup:
		return MenuFinalFollowup
	case menuChoiceNewPatient:
		return MenuNewPatient
	case menuChoiceQuit:
		return MenuQuit
	}
	return MenuAddCycle
}
