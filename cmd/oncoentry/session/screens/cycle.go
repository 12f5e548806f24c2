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

// CycleDraft holds the raw field values of one treatment-cycle form, plus the
// medications accumulated through the entry loop.
type CycleDraft struct {
	Regimen               string
	PrescriptionDate      string
	ChemoReceivedDate     string
	WBC                   string
	Hemoglobin            string
	Platelets             string
	ChemoOnDay            string
	DelayReason           string
	SideEffectsPresent    string
	SideEffects           []string
	SideEffectsOther      string
	Condition             string
	ConditionOther        string
	Hospitalization       string
	HospitalizationReason string
	Medications           []record.Medication
}

// NewCycleDraft returns a cycle draft with every select on its placeholder.
// The regimen defaults to the baseline prescription when one is known.
func NewCycleDraft(baselineRegimen string) *CycleDraft {
	d := &CycleDraft{
		Regimen:            catalog.PlaceholderRegimen,
		ChemoOnDay:         catalog.PlaceholderSelect,
		SideEffectsPresent: catalog.PlaceholderSelect,
		Condition:          catalog.PlaceholderSelect,
		Hospitalization:    catalog.PlaceholderSelect,
		Medications:        []record.Medication{},
	}
	if catalog.IsRegimen(baselineRegimen) {
		d.Regimen = baselineRegimen
	}
	return d
}

// Record assembles the typed cycle from the draft.
func (d *CycleDraft) Record(patientID string, cycleNumber int) *record.Cycle {
	c := &record.Cycle{
		CycleNumber:       cycleNumber,
		PatientID:         patientID,
		RegimenPrescribed: normalize(d.Regimen),
		PrescriptionDate:  strings.TrimSpace(d.PrescriptionDate),
		Medications:       append([]record.Medication{}, d.Medications...),
		ChemoReceivedDate: strings.TrimSpace(d.ChemoReceivedDate),
		Laboratory: record.Laboratory{
			WBC:        atofOrZero(d.WBC),
			Hemoglobin: atofOrZero(d.Hemoglobin),
			Platelets:  atoiOrZero(d.Platelets),
		},
		ChemoOnPrescriptionDay: yesNo(d.ChemoOnDay),
		SideEffectsPresent:     yesNo(d.SideEffectsPresent),
		SideEffects:            []string{},
		PatientCondition:       normalize(d.Condition),
		Hospitalization:        yesNo(d.Hospitalization),
	}

	if c.ChemoOnPrescriptionDay == record.No {
		c.ChemoDelayReason = optStr(d.DelayReason)
	}

	if c.SideEffectsPresent == record.Yes {
		c.SideEffects = append(c.SideEffects, d.SideEffects...)
		if containsValue(d.SideEffects, catalog.Other) {
			c.SideEffectsOther = optStr(d.SideEffectsOther)
		}
	}

	if c.PatientCondition == catalog.Other {
		c.ConditionOther = optStr(d.ConditionOther)
	}

	if c.Hospitalization == record.Yes {
		c.HospitalizationReason = optStr(d.HospitalizationReason)
	}

	return c
}

// Medication entry loop actions.
const (
	medSaveAndAdd  = "add"
	medSaveAndDone = "done"
	medDiscard     = "discard"
)

// medEntry backs one pass of the medication sub-form.
type medEntry struct {
	Pick       string
	CustomName string
	Dose       string
	Unit       string
	Action     string
}

func newMedEntry() *medEntry {
	return &medEntry{
		Pick:   catalog.PlaceholderMedication,
		Unit:   "mg",
		Action: medSaveAndAdd,
	}
}

// medication resolves the entry into a record entry. An "Other (specify)" pick
// with no typed name resolves to a blank name, which the section validator
// rejects at save time.
func (m *medEntry) medication() record.Medication {
	name := normalize(m.Pick)
	if m.Pick == catalog.OtherMedication {
		name = strings.TrimSpace(m.CustomName)
	}
	return record.Medication{
		Name: name,
		Dose: strings.TrimSpace(m.Dose),
		Unit: m.Unit,
	}
}

// Phases of the cycle screen: the main visit form, then the medication loop.
type cyclePhase int

const (
	cyclePhaseMain cyclePhase = iota
	cyclePhaseMeds
)

// CycleScreen collects one treatment cycle: the visit details followed by a
// repeating medication entry loop. Esc cancels the whole cycle and returns to
// the menu with nothing saved.
type CycleScreen struct {
	form        *huh.Form
	helpPanel   *components.HelpPanel
	draft       *CycleDraft
	entry       *medEntry
	phase       cyclePhase
	patientID   string
	cycleNumber int
	notice      string
	isError     bool
	done        bool
	aborted     bool
	cancelled   bool
	width       int
	height      int
}

// NewCycleScreen builds the cycle screen around the draft.
func NewCycleScreen(patientID string, cycleNumber int, draft *CycleDraft, notice string, isError bool) *CycleScreen {
	s := &CycleScreen{
		helpPanel:   components.NewHelpPanel(),
		draft:       draft,
		patientID:   patientID,
		cycleNumber: cycleNumber,
		notice:      notice,
		isError:     isError,
	}
	s.form = s.mainForm()
	return s
}

func (s *CycleScreen) mainForm() *huh.Form {
	d := s.draft
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("regimen_prescribed").
				Title("1. Chemotherapy regimen prescribed").
				Options(selectOptions(catalog.PlaceholderRegimen, catalog.RegimenOptions())...).
				Value(&d.Regimen),

			huh.NewInput().
				Key("prescription_date").
				Title("2. Date chemotherapy was prescribed").
				Description("YYYY-MM-DD").
				Value(&d.PrescriptionDate).
				Validate(validateOptionalStudyDate),

			huh.NewInput().
				Key("chemo_received_date").
				Title("4. Date chemotherapy was received").
				Description("YYYY-MM-DD").
				Value(&d.ChemoReceivedDate).
				Validate(validateOptionalStudyDate),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("wbc").
				Title("5. Total WBC").
				Value(&d.WBC).
				Validate(validateBoundedFloat(0, 50000)),

			huh.NewInput().
				Key("hemoglobin").
				Title("Hemoglobin (g/dL)").
				Value(&d.Hemoglobin).
				Validate(validateBoundedFloat(0, 25)),

			huh.NewInput().
				Key("platelets").
				Title("Platelets").
				Value(&d.Platelets).
				Validate(validateBoundedFloat(0, 1000000)),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("chemo_on_prescription_day").
				Title("6. Was chemotherapy given on the prescription day?").
				Options(yesNoOptions()...).
				Value(&d.ChemoOnDay),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("chemo_delay_reason").
				Title("If No, reason for the delay").
				Value(&d.DelayReason),
		).WithHideFunc(func() bool {
			return d.ChemoOnDay != string(record.No)
		}),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("side_effects_present").
				Title("7. Any side effects after treatment?").
				Options(yesNoOptions()...).
				Value(&d.SideEffectsPresent),
		),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("side_effects").
				Title("Select side effects").
				Options(huh.NewOptions(catalog.SideEffectOptions()...)...).
				Value(&d.SideEffects),
		).WithHideFunc(func() bool {
			return d.SideEffectsPresent != string(record.Yes)
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("side_effects_other").
				Title("Specify other side effects").
				Value(&d.SideEffectsOther),
		).WithHideFunc(func() bool {
			return d.SideEffectsPresent != string(record.Yes) ||
				!containsValue(d.SideEffects, catalog.Other)
		}),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("patient_condition").
				Title("8. Patient's condition at this visit").
				Options(selectOptions(catalog.PlaceholderSelect, catalog.ConditionOptions())...).
				Value(&d.Condition),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("condition_other").
				Title("Specify other condition").
				Value(&d.ConditionOther),
		).WithHideFunc(func() bool {
			return d.Condition != catalog.Other
		}),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("hospitalization").
				Title("9. Was the patient hospitalized?").
				Options(yesNoOptions()...).
				Value(&d.Hospitalization),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("hospitalization_reason").
				Title("If Yes, reason for hospitalization").
				Value(&d.HospitalizationReason),
		).WithHideFunc(func() bool {
			return d.Hospitalization != string(record.Yes)
		}),
	).WithShowHelp(false).WithShowErrors(true)
}

func (s *CycleScreen) medForm() *huh.Form {
	e := s.entry
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("medication_pick").
				Title(fmt.Sprintf("3. Medication %d", len(s.draft.Medications)+1)).
				Options(selectOptions(catalog.PlaceholderMedication,
					append(catalog.MedicationOptions(), catalog.OtherMedication))...).
				Value(&e.Pick),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("medication_custom_name").
				Title("Medication name").
				Value(&e.CustomName),
		).WithHideFunc(func() bool {
			return e.Pick != catalog.OtherMedication
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("medication_dose").
				Title("Dose").
				Value(&e.Dose),

			huh.NewSelect[string]().
				Key("medication_unit").
				Title("Unit").
				Options(huh.NewOptions(catalog.UnitOptions()...)...).
				Value(&e.Unit),

			huh.NewSelect[string]().
				Key("medication_action").
				Title("Then").
				Options(
					huh.NewOption("Save and add another medication", medSaveAndAdd),
					huh.NewOption("Save and finish medications", medSaveAndDone),
					huh.NewOption("Discard this entry and finish", medDiscard),
				).
				Value(&e.Action),
		),
	).WithShowHelp(false).WithShowErrors(true)
}

// Init implements tea.Model
func (s *CycleScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *CycleScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		switch s.phase {
		case cyclePhaseMain:
			s.phase = cyclePhaseMeds
			s.entry = newMedEntry()
			s.form = s.medForm()
			return s, s.form.Init()
		case cyclePhaseMeds:
			switch s.entry.Action {
			case medSaveAndAdd:
				s.draft.Medications = append(s.draft.Medications, s.entry.medication())
				s.entry = newMedEntry()
				s.form = s.medForm()
				return s, s.form.Init()
			case medSaveAndDone:
				s.draft.Medications = append(s.draft.Medications, s.entry.medication())
				s.done = true
			case medDiscard:
				s.done = true
			}
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *CycleScreen) View() string {
	title := components.TitleStyle.Render(fmt.Sprintf(
		"SECTION 2: TREATMENT CYCLE %d", s.cycleNumber))
	subtitle := components.SubtitleStyle.Render(fmt.Sprintf(
		"Patient %s | Medications recorded: %d", s.patientID, len(s.draft.Medications)))

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
		"Tab: Next field | Enter: Submit | Esc: Cancel cycle | Ctrl+C: Quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the cycle form and its medication loop were completed
func (s *CycleScreen) Done() bool { return s.done }

// Aborted returns true if the operator backed out of this cycle
func (s *CycleScreen) Aborted() bool { return s.aborted }

// Cancelled returns true if the operator quit
func (s *CycleScreen) Cancelled() bool { return s.cancelled }

// Draft returns the bound field values
func (s *CycleScreen) Draft() *CycleDraft { return s.draft }
