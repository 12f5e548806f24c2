package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"oncoentry/cmd/oncoentry/session/components"
	"oncoentry/internal/catalog"
	"oncoentry/internal/record"
)

// BaselineDraft holds the raw field values of the baseline form. It survives
// screen rebuilds so a rejected save never loses operator input.
type BaselineDraft struct {
	PatientID         string
	Age               string
	DateAdmitted      string
	Education         string
	Marital           string
	Income            string
	IncomeOther       string
	District          string
	Diagnosis         string
	ImmunoPresent     string
	ImmunoResults     []string
	ImmunoOther       string
	Stage             string
	Comorbidities     []string
	ComorbidityOther  string
	CyclesPrescribed  string
	Regimen           string
	TreatmentStarted  string
	NoTreatmentReason string
	NoTreatmentOther  string
}

// NewBaselineDraft returns a draft with every select on its placeholder and
// the admission date on the study-period default.
func NewBaselineDraft() *BaselineDraft {
	return &BaselineDraft{
		DateAdmitted:      "2017-01-01",
		Education:         catalog.PlaceholderSelect,
		Marital:           catalog.PlaceholderSelect,
		Income:            catalog.PlaceholderSelect,
		District:          catalog.PlaceholderDistrict,
		Diagnosis:         catalog.PlaceholderDiagnosis,
		ImmunoPresent:     catalog.PlaceholderSelect,
		Stage:             catalog.PlaceholderSelect,
		Regimen:           catalog.PlaceholderRegimen,
		TreatmentStarted:  catalog.PlaceholderSelect,
		NoTreatmentReason: catalog.PlaceholderReason,
	}
}

// Record assembles the typed baseline section from the draft. Placeholders
// become unanswered values; inactive conditional branches become nils.
func (d *BaselineDraft) Record() *record.Baseline {
	b := &record.Baseline{
		PatientID:             strings.TrimSpace(d.PatientID),
		Age:                   atoiOrZero(d.Age),
		DateAdmitted:          strings.TrimSpace(d.DateAdmitted),
		EducationLevel:        normalize(d.Education),
		MaritalStatus:         normalize(d.Marital),
		IncomeSource:          normalize(d.Income),
		District:              normalize(d.District),
		InitialDiagnosis:      normalize(d.Diagnosis),
		ImmunohistoPresent:    yesNo(d.ImmunoPresent),
		ImmunohistoResults:    []string{},
		DiseaseStage:          normalize(d.Stage),
		ChemoCyclesPrescribed: atoiOrZero(d.CyclesPrescribed),
		RegimenPrescribed:     normalize(d.Regimen),
		TreatmentStarted:      yesNo(d.TreatmentStarted),
	}

	if b.IncomeSource == catalog.Other {
		b.IncomeOther = optStr(d.IncomeOther)
	}

	if b.ImmunohistoPresent == record.Yes {
		b.ImmunohistoResults = append(b.ImmunohistoResults, d.ImmunoResults...)
		if containsValue(d.ImmunoResults, catalog.Other) {
			b.ImmunohistoOther = optStr(d.ImmunoOther)
		}
	}

	b.Comorbidities = record.Comorbidities{
		Diabetes:     containsValue(d.Comorbidities, "Diabetes"),
		Hypertension: containsValue(d.Comorbidities, "Hypertension"),
		HIV:          containsValue(d.Comorbidities, "HIV"),
		NoneCaptured: containsValue(d.Comorbidities, "None captured"),
		Other:        containsValue(d.Comorbidities, catalog.Other),
	}
	if b.Comorbidities.Other {
		b.Comorbidities.OtherSpecify = optStr(d.ComorbidityOther)
	}

	if b.TreatmentStarted == record.No {
		reason := normalize(d.NoTreatmentReason)
		b.TreatmentNotStartedReason = optStr(reason)
		if reason == catalog.Other {
			b.TreatmentNotStartedOther = optStr(d.NoTreatmentOther)
		}
	}

	return b
}

// BaselineScreen collects the first-visit section.
type BaselineScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	draft     *BaselineDraft
	notice    string
	isError   bool
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewBaselineScreen builds the baseline form around the draft. notice is an
// optional message from the previous pass (validation failure, storage error
// or a success note after a completed record).
func NewBaselineScreen(draft *BaselineDraft, districts []string, notice string, isError bool) *BaselineScreen {
	s := &BaselineScreen{
		helpPanel: components.NewHelpPanel(),
		draft:     draft,
		notice:    notice,
		isError:   isError,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("patient_id").
				Title("1. Patient ID").
				Placeholder("e.g., WMJ11").
				Value(&draft.PatientID),

			huh.NewInput().
				Key("age").
				Title("2. Age (years)").
				Value(&draft.Age).
				Validate(validatePositiveInt),

			huh.NewInput().
				Key("date_admitted").
				Title("Date Admitted").
				Description("YYYY-MM-DD").
				Value(&draft.DateAdmitted).
				Validate(validateStudyDate),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("education_level").
				Title("3. Highest level of education").
				Options(selectOptions(catalog.PlaceholderSelect, catalog.EducationOptions())...).
				Value(&draft.Education),

			huh.NewSelect[string]().
				Key("marital_status").
				Title("4. Current marital status").
				Options(selectOptions(catalog.PlaceholderSelect, catalog.MaritalOptions())...).
				Value(&draft.Marital),

			huh.NewSelect[string]().
				Key("income_source").
				Title("5. Main source of income").
				Options(selectOptions(catalog.PlaceholderSelect, catalog.IncomeOptions())...).
				Value(&draft.Income),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("income_other").
				Title("Specify other source of income").
				Value(&draft.IncomeOther),
		).WithHideFunc(func() bool {
			return draft.Income != catalog.Other
		}),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("district").
				Title("6. District of residence").
				Options(selectOptions(catalog.PlaceholderDistrict, districts)...).
				Value(&draft.District),

			huh.NewSelect[string]().
				Key("initial_diagnosis").
				Title("7. Initial diagnosis").
				Options(selectOptions(catalog.PlaceholderDiagnosis, catalog.DiagnosisOptions())...).
				Value(&draft.Diagnosis),

			huh.NewSelect[string]().
				Key("immunohisto_present").
				Title("8. Immunohistochemistry results present").
				Options(yesNoOptions()...).
				Value(&draft.ImmunoPresent),
		),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("immunohisto_results").
				Title("Select immunohistochemistry results").
				Options(huh.NewOptions(catalog.ImmunohistoOptions()...)...).
				Value(&draft.ImmunoResults),
		).WithHideFunc(func() bool {
			return draft.ImmunoPresent != string(record.Yes)
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("immunohisto_other").
				Title("Specify other results").
				Value(&draft.ImmunoOther),
		).WithHideFunc(func() bool {
			return draft.ImmunoPresent != string(record.Yes) ||
				!containsValue(draft.ImmunoResults, catalog.Other)
		}),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("disease_stage").
				Title("9. Disease stage at first diagnosis").
				Options(selectOptions(catalog.PlaceholderSelect, catalog.StageOptions())...).
				Value(&draft.Stage),

			huh.NewMultiSelect[string]().
				Key("comorbidities").
				Title("10. List of other comorbidities").
				Options(huh.NewOptions(catalog.ComorbidityOptions()...)...).
				Value(&draft.Comorbidities),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("comorbidities_other").
				Title("Specify other comorbidities").
				Value(&draft.ComorbidityOther),
		).WithHideFunc(func() bool {
			return !containsValue(draft.Comorbidities, catalog.Other)
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("chemo_cycles_prescribed").
				Title("11. Chemotherapy cycles prescribed").
				Value(&draft.CyclesPrescribed).
				Validate(validatePositiveInt),

			huh.NewSelect[string]().
				Key("regimen_prescribed").
				Title("12. Which regimen was prescribed").
				Options(selectOptions(catalog.PlaceholderRegimen, catalog.RegimenOptions())...).
				Value(&draft.Regimen),

			huh.NewSelect[string]().
				Key("treatment_started").
				Title("13. Did the patient start treatment").
				Options(yesNoOptions()...).
				Value(&draft.TreatmentStarted),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("treatment_not_started_reason").
				Title("If No, why?").
				Options(selectOptions(catalog.PlaceholderReason, catalog.NoTreatmentReasons())...).
				Value(&draft.NoTreatmentReason),
		).WithHideFunc(func() bool {
			return draft.TreatmentStarted != string(record.No)
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("treatment_not_started_other").
				Title("Please specify other reason").
				Value(&draft.NoTreatmentOther),
		).WithHideFunc(func() bool {
			return draft.TreatmentStarted != string(record.No) ||
				normalize(draft.NoTreatmentReason) != catalog.Other
		}),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// Init implements tea.Model
func (s *BaselineScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *BaselineScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *BaselineScreen) View() string {
	title := components.TitleStyle.Render("SECTION 1: BASELINE DATA (FIRST VISIT ONLY)")

	parts := []string{title}
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
		"Tab: Next field | Enter: Submit | Ctrl+C: Quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *BaselineScreen) Done() bool { return s.done }

// Cancelled returns true if the operator quit
func (s *BaselineScreen) Cancelled() bool { return s.cancelled }

// Draft returns the bound field values
func (s *BaselineScreen) Draft() *BaselineDraft { return s.draft }
