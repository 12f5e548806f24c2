package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"oncoentry/cmd/oncoentry/session/components"
	"oncoentry/internal/catalog"
	"oncoentry/internal/record"
)

// FollowupDraft holds the raw field values of the final follow-up form.
type FollowupDraft struct {
	LastReviewDate   string
	GeneralCondition string
	Attendance       string
	NoFollowupReason string
	Comorbidities    []string
	ComorbidityOther string
	Recurrence       string
	RecurrenceDate   string
	PatientStatus    string
	DeathDate        string
	DeathCause       string
	Confirmed        bool
}

// NewFollowupDraft returns a follow-up draft with every select on its
// placeholder and the review date defaulting to today, clamped to the study
// window.
func NewFollowupDraft() *FollowupDraft {
	return &FollowupDraft{
		LastReviewDate: defaultReviewDate(),
		Attendance:     catalog.PlaceholderSelect,
		Recurrence:     catalog.PlaceholderSelect,
		PatientStatus:  catalog.PlaceholderSelect,
	}
}

// Record assembles the typed final follow-up section from the draft.
func (d *FollowupDraft) Record(patientID string) *record.FinalFollowup {
	f := &record.FinalFollowup{
		PatientID:              patientID,
		LastReviewDate:         strings.TrimSpace(d.LastReviewDate),
		GeneralCondition:       strings.TrimSpace(d.GeneralCondition),
		FollowupAttendance:     yesNo(d.Attendance),
		ComorbiditiesDeveloped: append([]string{}, d.Comorbidities...),
		Recurrence:             yesNo(d.Recurrence),
		PatientStatus:          normalize(d.PatientStatus),
	}

	if f.FollowupAttendance == record.No {
		f.NoFollowupReason = optStr(d.NoFollowupReason)
	}

	if containsValue(d.Comorbidities, catalog.Other) {
		f.OtherComorbidity = optStr(d.ComorbidityOther)
	}

	if f.Recurrence == record.Yes {
		f.RecurrenceDate = optStr(d.RecurrenceDate)
	}

	if f.PatientStatus == record.StatusDeceased {
		f.DeathDate = optStr(d.DeathDate)
		f.DeathCause = optStr(d.DeathCause)
	}

	return f
}

// FollowupScreen collects the terminal outcome section. Saving it closes the
// record, so the form ends with an explicit confirmation; declining it or
// pressing Esc returns to the cycle menu with nothing saved.
type FollowupScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	draft     *FollowupDraft
	patientID string
	notice    string
	isError   bool
	done      bool
	aborted   bool
	cancelled bool
	width     int
	height    int
}

// NewFollowupScreen builds the final follow-up form around the draft.
func NewFollowupScreen(patientID string, draft *FollowupDraft, notice string, isError bool) *FollowupScreen {
	s := &FollowupScreen{
		helpPanel: components.NewHelpPanel(),
		draft:     draft,
		patientID: patientID,
		notice:    notice,
		isError:   isError,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("last_review_date").
				Title("1. Date of last recorded review").
				Description("YYYY-MM-DD").
				Value(&draft.LastReviewDate).
				Validate(validateStudyDate),

			huh.NewInput().
				Key("general_condition").
				Title("2. General condition at last review").
				Placeholder("e.g., Stable, improving appetite").
				Value(&draft.GeneralCondition),

			huh.NewSelect[string]().
				Key("followup_attendance").
				Title("3. Did the patient come back for follow-up?").
				Options(yesNoOptions()...).
				Value(&draft.Attendance),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("no_followup_reason").
				Title("If No, why not?").
				Value(&draft.NoFollowupReason),
		).WithHideFunc(func() bool {
			return draft.Attendance != string(record.No)
		}),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("comorbidities_developed").
				Title("4. Comorbidities developed during treatment").
				Options(huh.NewOptions(catalog.ComorbidityOptions()...)...).
				Value(&draft.Comorbidities),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("other_comorbidity").
				Title("Specify other comorbidity").
				Value(&draft.ComorbidityOther),
		).WithHideFunc(func() bool {
			return !containsValue(draft.Comorbidities, catalog.Other)
		}),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("recurrence").
				Title("5. Any confirmed recurrence?").
				Options(yesNoOptions()...).
				Value(&draft.Recurrence),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("recurrence_date").
				Title("Date recurrence was confirmed").
				Description("YYYY-MM-DD").
				Value(&draft.RecurrenceDate).
				Validate(validateOptionalStudyDate),
		).WithHideFunc(func() bool {
			return draft.Recurrence != string(record.Yes)
		}),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("patient_status").
				Title("6. Patient status at last follow-up").
				Options(selectOptions(catalog.PlaceholderSelect,
					[]string{record.StatusAlive, record.StatusDeceased})...).
				Value(&draft.PatientStatus),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("death_date").
				Title("Date of death").
				Description("YYYY-MM-DD").
				Value(&draft.DeathDate).
				Validate(validateOptionalStudyDate),

			huh.NewInput().
				Key("death_cause").
				Title("Primary cause of death").
				Value(&draft.DeathCause),
		).WithHideFunc(func() bool {
			return draft.PatientStatus != record.StatusDeceased
		}),

		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm_close").
				Title("Save the final follow-up and close this record?").
				Affirmative("Save and close").
				Negative("Back to cycles").
				Value(&draft.Confirmed),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// Init implements tea.Model
func (s *FollowupScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *FollowupScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.aborted = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		if s.draft.Confirmed {
			s.done = true
		} else {
			s.aborted = true
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *FollowupScreen) View() string {
	title := components.TitleStyle.Render("SECTION 3: FINAL FOLLOW-UP VISIT")
	subtitle := components.SubtitleStyle.Render(fmt.Sprintf("Patient %s", s.patientID))

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
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit | Esc: Back to cycles | Ctrl+C: Quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed and confirmed
func (s *FollowupScreen) Done() bool { return s.done }

// Aborted returns true if the operator backed out to the cycle menu
func (s *FollowupScreen) Aborted() bool { return s.aborted }

// Cancelled returns true if the operator quit
func (s *FollowupScreen) Cancelled() bool { return s.cancelled }

// Draft returns the bound field values
func (s *FollowupScreen) Draft() *FollowupDraft { return s.draft }
