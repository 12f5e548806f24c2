// Package session runs the interactive data-entry loop: baseline form, cycle
// menu, cycle forms and the final follow-up, driven by the lifecycle machine.
// The session never advances past a rejected save; the screen is rebuilt
// around the same draft with the first violated rule shown to the operator.
package session

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"oncoentry/cmd/oncoentry/session/screens"
	"oncoentry/internal/lifecycle"
	"oncoentry/internal/record"
	"oncoentry/internal/store"
	"oncoentry/internal/validate"
)

// Session is the main orchestrator for the data-entry interface.
type Session struct {
	store     *store.Store
	machine   *lifecycle.Machine
	districts []string
	log       zerolog.Logger

	// Screen instances, one per lifecycle state
	baselineScreen *screens.BaselineScreen
	menuScreen     *screens.MenuScreen
	cycleScreen    *screens.CycleScreen
	followupScreen *screens.FollowupScreen

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
	err       error
}

// NewSession creates a session in the baseline stage.
func NewSession(st *store.Store, districts []string, log zerolog.Logger) *Session {
	s := &Session{
		store:     st,
		machine:   lifecycle.New(st),
		districts: districts,
		log:       log,
	}
	s.baselineScreen = screens.NewBaselineScreen(screens.NewBaselineDraft(), districts, "", false)
	return s
}

// Init implements tea.Model.
func (s *Session) Init() tea.Cmd {
	return s.baselineScreen.Init()
}

// Update implements tea.Model.
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = wsm.Width
		s.height = wsm.Height
	}

	switch s.machine.State() {
	case lifecycle.Idle:
		return s.updateBaseline(msg)
	case lifecycle.CycleIdle:
		return s.updateMenu(msg)
	case lifecycle.CycleActive:
		return s.updateCycle(msg)
	case lifecycle.FinalFollowup:
		return s.updateFollowup(msg)
	}

	return s, nil
}

// View implements tea.Model.
func (s *Session) View() string {
	switch s.machine.State() {
	case lifecycle.Idle:
		return s.baselineScreen.View()
	case lifecycle.CycleIdle:
		return s.menuScreen.View()
	case lifecycle.CycleActive:
		return s.cycleScreen.View()
	case lifecycle.FinalFollowup:
		return s.followupScreen.View()
	}

	return ""
}

// transitionToBaseline opens a fresh baseline form for a new patient.
func (s *Session) transitionToBaseline(notice string, isError bool) (tea.Model, tea.Cmd) {
	s.baselineScreen = screens.NewBaselineScreen(screens.NewBaselineDraft(), s.districts, notice, isError)
	return s, s.baselineScreen.Init()
}

// rebuildBaseline reopens the baseline form around the existing draft after a
// rejected save, so nothing the operator typed is lost.
func (s *Session) rebuildBaseline(notice string) (tea.Model, tea.Cmd) {
	s.baselineScreen = screens.NewBaselineScreen(s.baselineScreen.Draft(), s.districts, notice, true)
	return s, s.baselineScreen.Init()
}

func (s *Session) updateBaseline(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := s.baselineScreen.Update(msg)
	if bs, ok := model.(*screens.BaselineScreen); ok {
		s.baselineScreen = bs
	}

	if s.baselineScreen.Cancelled() {
		s.cancelled = true
		return s, tea.Quit
	}

	if s.baselineScreen.Done() {
		b := s.baselineScreen.Draft().Record()

		if verr := validate.Baseline(b); verr != nil {
			s.log.Debug().Str("field", verr.Field).Str("message", verr.Message).
				Msg("baseline rejected")
			return s.rebuildBaseline(verr.Message)
		}

		path, err := s.store.SaveBaseline(b)
		if err != nil {
			s.log.Error().Err(err).Str("patient_id", b.PatientID).Msg("baseline save failed")
			return s.rebuildBaseline(fmt.Sprintf("Could not save the record: %v", err))
		}

		started := b.TreatmentStarted == record.Yes
		if err := s.machine.BaselineSaved(b.PatientID, started); err != nil {
			s.machine.NewPatient()
			return s.rebuildBaseline(fmt.Sprintf("Could not open the cycle menu: %v", err))
		}

		if !started {
			return s.transitionToBaseline(fmt.Sprintf(
				"Record for %s saved and closed: treatment was not started.", b.PatientID), false)
		}

		return s.transitionToMenu(fmt.Sprintf("Baseline data for %s saved to %s", b.PatientID, path), false)
	}

	return s, cmd
}

// transitionToMenu opens the cycle menu. The machine has already recomputed
// the next cycle number from storage.
func (s *Session) transitionToMenu(notice string, isError bool) (tea.Model, tea.Cmd) {
	s.menuScreen = screens.NewMenuScreen(s.machine.PatientID(), s.machine.NextCycle(), notice, isError)
	return s, s.menuScreen.Init()
}

func (s *Session) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := s.menuScreen.Update(msg)
	if ms, ok := model.(*screens.MenuScreen); ok {
		s.menuScreen = ms
	}

	if s.menuScreen.Cancelled() {
		s.cancelled = true
		return s, tea.Quit
	}

	if s.menuScreen.Done() {
		switch s.menuScreen.Action() {
		case screens.MenuAddCycle:
			return s.transitionToCycle()

		case screens.MenuFinalFollowup:
			if err := s.machine.OpenFinalFollowup(); err != nil {
				return s.transitionToMenu(fmt.Sprintf("%v", err), true)
			}
			s.followupScreen = screens.NewFollowupScreen(
				s.machine.PatientID(), screens.NewFollowupDraft(), "", false)
			return s, s.followupScreen.Init()

		case screens.MenuNewPatient:
			s.machine.NewPatient()
			return s.transitionToBaseline("", false)

		case screens.MenuQuit:
			s.cancelled = true
			return s, tea.Quit
		}
	}

	return s, cmd
}

// transitionToCycle opens the next cycle form, defaulting the regimen to the
// baseline prescription when one is on record.
func (s *Session) transitionToCycle() (tea.Model, tea.Cmd) {
	n, err := s.machine.OpenCycle()
	if err != nil {
		return s.transitionToMenu(fmt.Sprintf("%v", err), true)
	}

	var baselineRegimen string
	if rec, err := s.store.Load(s.machine.PatientID()); err == nil && rec.Baseline != nil {
		baselineRegimen = rec.Baseline.RegimenPrescribed
	}

	s.cycleScreen = screens.NewCycleScreen(
		s.machine.PatientID(), n, screens.NewCycleDraft(baselineRegimen), "", false)
	return s, s.cycleScreen.Init()
}

// rebuildCycle reopens the cycle form around the existing draft after a
// rejected save. Medications already entered stay on the draft.
func (s *Session) rebuildCycle(notice string) (tea.Model, tea.Cmd) {
	s.cycleScreen = screens.NewCycleScreen(
		s.machine.PatientID(), s.machine.ActiveCycle(), s.cycleScreen.Draft(), notice, true)
	return s, s.cycleScreen.Init()
}

func (s *Session) updateCycle(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := s.cycleScreen.Update(msg)
	if cs, ok := model.(*screens.CycleScreen); ok {
		s.cycleScreen = cs
	}

	if s.cycleScreen.Cancelled() {
		s.cancelled = true
		return s, tea.Quit
	}

	if s.cycleScreen.Aborted() {
		n := s.machine.ActiveCycle()
		if err := s.machine.CancelCycle(); err != nil {
			s.err = err
			return s, tea.Quit
		}
		return s.transitionToMenu(fmt.Sprintf("Cycle %d discarded, nothing was saved.", n), false)
	}

	if s.cycleScreen.Done() {
		c := s.cycleScreen.Draft().Record(s.machine.PatientID(), s.machine.ActiveCycle())

		if verr := validate.Cycle(c); verr != nil {
			s.log.Debug().Str("field", verr.Field).Str("message", verr.Message).
				Int("cycle", c.CycleNumber).Msg("cycle rejected")
			return s.rebuildCycle(verr.Message)
		}

		if _, err := s.store.SaveCycle(c); err != nil {
			s.log.Error().Err(err).Str("patient_id", c.PatientID).
				Int("cycle", c.CycleNumber).Msg("cycle save failed")
			return s.rebuildCycle(fmt.Sprintf("Could not save the record: %v", err))
		}

		if err := s.machine.CycleSaved(); err != nil {
			s.err = err
			return s, tea.Quit
		}

		return s.transitionToMenu(fmt.Sprintf("Treatment cycle %d saved.", c.CycleNumber), false)
	}

	return s, cmd
}

// rebuildFollowup reopens the final follow-up form around the existing draft
// after a rejected save.
func (s *Session) rebuildFollowup(notice string) (tea.Model, tea.Cmd) {
	draft := s.followupScreen.Draft()
	draft.Confirmed = false
	s.followupScreen = screens.NewFollowupScreen(s.machine.PatientID(), draft, notice, true)
	return s, s.followupScreen.Init()
}

func (s *Session) updateFollowup(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := s.followupScreen.Update(msg)
	if fs, ok := model.(*screens.FollowupScreen); ok {
		s.followupScreen = fs
	}

	if s.followupScreen.Cancelled() {
		s.cancelled = true
		return s, tea.Quit
	}

	if s.followupScreen.Aborted() {
		if err := s.machine.BackToCycles(); err != nil {
			s.err = err
			return s, tea.Quit
		}
		return s.transitionToMenu("", false)
	}

	if s.followupScreen.Done() {
		f := s.followupScreen.Draft().Record(s.machine.PatientID())

		if verr := validate.FinalFollowup(f); verr != nil {
			s.log.Debug().Str("field", verr.Field).Str("message", verr.Message).
				Msg("final follow-up rejected")
			return s.rebuildFollowup(verr.Message)
		}

		if _, err := s.store.SaveFinalFollowup(f); err != nil {
			s.log.Error().Err(err).Str("patient_id", f.PatientID).Msg("final follow-up save failed")
			return s.rebuildFollowup(fmt.Sprintf("Could not save the record: %v", err))
		}

		patientID := s.machine.PatientID()
		if err := s.machine.FollowupSaved(); err != nil {
			s.err = err
			return s, tea.Quit
		}

		return s.transitionToBaseline(fmt.Sprintf(
			"Record for %s completed and closed. Ready for the next patient.", patientID), false)
	}

	return s, cmd
}

// Run starts the interactive data-entry session and blocks until the operator
// quits or an unrecoverable error occurs.
func Run(st *store.Store, districts []string, log zerolog.Logger) error {
	session := NewSession(st, districts, log)
	p := tea.NewProgram(session, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running session: %w", err)
	}

	if s, ok := finalModel.(*Session); ok {
		if s.cancelled {
			return nil
		}
		if s.err != nil {
			return s.err
		}
	}

	return nil
}
