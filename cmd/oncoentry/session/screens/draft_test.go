package screens

import (
	"testing"

	"oncoentry/internal/catalog"
	"oncoentry/internal/record"
	"oncoentry/internal/validate"
)

func TestBaselineDraftStartsUnanswered(t *testing.T) {
	b := NewBaselineDraft().Record()

	if b.EducationLevel != "" || b.District != "" || b.RegimenPrescribed != "" {
		t.Errorf("Expected placeholders to normalize to unanswered, got %+v", b)
	}
	if b.ImmunohistoPresent.Answered() || b.TreatmentStarted.Answered() {
		t.Error("Expected radio questions to start unanswered")
	}
	if err := validate.Baseline(b); err == nil {
		t.Error("Expected a fresh draft to fail validation")
	}
}

func TestBaselineDraftRecord(t *testing.T) {
	d := NewBaselineDraft()
	d.PatientID = " WMJ11 "
	d.Age = "52"
	d.DateAdmitted = "2017-03-14"
	d.Education = "Primary"
	d.Marital = "Married"
	d.Income = catalog.Other
	d.IncomeOther = "Fishing"
	d.District = "Mbarara"
	d.Diagnosis = "Invasive ductal carcinoma"
	d.ImmunoPresent = "Yes"
	d.ImmunoResults = []string{"ER-positive (ER+)", catalog.Other}
	d.ImmunoOther = "Ki-67 high"
	d.Stage = "Stage II"
	d.Comorbidities = []string{"Diabetes", catalog.Other}
	d.ComorbidityOther = "Asthma"
	d.CyclesPrescribed = "6"
	d.Regimen = "AC (Doxorubicin + Cyclophosphamide)"
	d.TreatmentStarted = "Yes"

	b := d.Record()

	if b.PatientID != "WMJ11" {
		t.Errorf("Expected trimmed patient id, got %q", b.PatientID)
	}
	if b.Age != 52 || b.ChemoCyclesPrescribed != 6 {
		t.Errorf("Expected numeric conversion, got age %d cycles %d", b.Age, b.ChemoCyclesPrescribed)
	}
	if b.IncomeOther == nil || *b.IncomeOther != "Fishing" {
		t.Errorf("Expected income elaboration, got %v", b.IncomeOther)
	}
	if len(b.ImmunohistoResults) != 2 {
		t.Errorf("Expected 2 immunohistochemistry results, got %v", b.ImmunohistoResults)
	}
	if b.ImmunohistoOther == nil || *b.ImmunohistoOther != "Ki-67 high" {
		t.Errorf("Expected immunohistochemistry elaboration, got %v", b.ImmunohistoOther)
	}
	if !b.Comorbidities.Diabetes || !b.Comorbidities.Other || b.Comorbidities.HIV {
		t.Errorf("Expected comorbidity flags from the multiselect, got %+v", b.Comorbidities)
	}
	if b.Comorbidities.OtherSpecify == nil || *b.Comorbidities.OtherSpecify != "Asthma" {
		t.Errorf("Expected comorbidity elaboration, got %v", b.Comorbidities.OtherSpecify)
	}
	if b.TreatmentNotStartedReason != nil {
		t.Error("Expected no not-started reason when treatment started")
	}
	if err := validate.Baseline(b); err != nil {
		t.Errorf("Expected the completed draft to pass validation, got %v", err)
	}
}

func TestBaselineDraftInactiveBranchesAreNil(t *testing.T) {
	d := NewBaselineDraft()
	d.Income = "Farmer"
	d.IncomeOther = "stale text from an earlier pick"
	d.ImmunoPresent = "No"
	d.ImmunoResults = []string{"ER-positive (ER+)"}
	d.TreatmentStarted = "No"
	d.NoTreatmentReason = "Late diagnosis"

	b := d.Record()

	if b.IncomeOther != nil {
		t.Error("Expected income elaboration to be dropped for a catalog pick")
	}
	if len(b.ImmunohistoResults) != 0 {
		t.Errorf("Expected no results when immunohistochemistry is absent, got %v", b.ImmunohistoResults)
	}
	if b.TreatmentNotStartedReason == nil || *b.TreatmentNotStartedReason != "Late diagnosis" {
		t.Errorf("Expected the not-started reason, got %v", b.TreatmentNotStartedReason)
	}
	if b.TreatmentNotStartedOther != nil {
		t.Error("Expected no free-text reason for a catalog pick")
	}
}

func TestCycleDraftDefaultsToBaselineRegimen(t *testing.T) {
	regimen := "TC (Docetaxel + Cyclophosphamide)"
	d := NewCycleDraft(regimen)
	if d.Regimen != regimen {
		t.Errorf("Expected the baseline regimen as default, got %q", d.Regimen)
	}

	d = NewCycleDraft("")
	if d.Regimen != catalog.PlaceholderRegimen {
		t.Errorf("Expected the placeholder without a baseline regimen, got %q", d.Regimen)
	}
}

func TestCycleDraftRecord(t *testing.T) {
	d := NewCycleDraft("AC (Doxorubicin + Cyclophosphamide)")
	d.PrescriptionDate = "2017-04-01"
	d.ChemoReceivedDate = "2017-04-01"
	d.WBC = "5600"
	d.Hemoglobin = "11.2"
	d.Platelets = "250000"
	d.ChemoOnDay = "No"
	d.DelayReason = "Pharmacy stock-out"
	d.SideEffectsPresent = "Yes"
	d.SideEffects = []string{"Nausea", catalog.Other}
	d.SideEffectsOther = "Mouth sores"
	d.Condition = "Better"
	d.Hospitalization = "No"
	d.Medications = []record.Medication{{Name: "Doxorubicin", Dose: "60", Unit: "mg"}}

	c := d.Record("WMJ11", 3)

	if c.CycleNumber != 3 || c.PatientID != "WMJ11" {
		t.Errorf("Expected cycle identity from the caller, got %d/%s", c.CycleNumber, c.PatientID)
	}
	if c.Laboratory.WBC != 5600 || c.Laboratory.Hemoglobin != 11.2 || c.Laboratory.Platelets != 250000 {
		t.Errorf("Expected parsed lab values, got %+v", c.Laboratory)
	}
	if c.ChemoDelayReason == nil || *c.ChemoDelayReason != "Pharmacy stock-out" {
		t.Errorf("Expected the delay reason, got %v", c.ChemoDelayReason)
	}
	if c.SideEffectsOther == nil || *c.SideEffectsOther != "Mouth sores" {
		t.Errorf("Expected the side-effect elaboration, got %v", c.SideEffectsOther)
	}
	if c.HospitalizationReason != nil {
		t.Error("Expected no hospitalization reason when not hospitalized")
	}
	if err := validate.Cycle(c); err != nil {
		t.Errorf("Expected the completed draft to pass validation, got %v", err)
	}
}

func TestMedEntryResolvesOtherPick(t *testing.T) {
	e := newMedEntry()
	e.Pick = catalog.OtherMedication
	e.CustomName = " Filgrastim "
	e.Dose = "300"
	e.Unit = "IU"

	m := e.medication()
	if m.Name != "Filgrastim" {
		t.Errorf("Expected the typed name, got %q", m.Name)
	}
	if m.Dose != "300" || m.Unit != "IU" {
		t.Errorf("Expected dose and unit preserved, got %+v", m)
	}

	// A blank free-text name resolves blank and is caught at save time.
	e.CustomName = "  "
	if got := e.medication().Name; got != "" {
		t.Errorf("Expected a blank name for a blank elaboration, got %q", got)
	}
}

func TestFollowupDraftRecord(t *testing.T) {
	d := NewFollowupDraft()
	d.LastReviewDate = "2018-02-01"
	d.GeneralCondition = "Stable"
	d.Attendance = "No"
	d.NoFollowupReason = "Moved away"
	d.Recurrence = "Yes"
	d.RecurrenceDate = "2018-01-10"
	d.PatientStatus = record.StatusDeceased
	d.DeathDate = "2018-02-20"
	d.DeathCause = "Disease progression"

	f := d.Record("WMJ11")

	if f.NoFollowupReason == nil || *f.NoFollowupReason != "Moved away" {
		t.Errorf("Expected the missed-follow-up reason, got %v", f.NoFollowupReason)
	}
	if f.RecurrenceDate == nil || *f.RecurrenceDate != "2018-01-10" {
		t.Errorf("Expected the recurrence date, got %v", f.RecurrenceDate)
	}
	if f.DeathDate == nil || f.DeathCause == nil {
		t.Error("Expected the deceased branch to be populated")
	}
	if err := validate.FinalFollowup(f); err != nil {
		t.Errorf("Expected the completed draft to pass validation, got %v", err)
	}
}

func TestFollowupDraftAliveBranch(t *testing.T) {
	d := NewFollowupDraft()
	d.LastReviewDate = "2018-02-01"
	d.GeneralCondition = "Good"
	d.Attendance = "Yes"
	d.Recurrence = "No"
	d.PatientStatus = record.StatusAlive
	d.DeathDate = "2018-02-20" // stale input from an earlier pick

	f := d.Record("WMJ11")

	if f.DeathDate != nil || f.DeathCause != nil {
		t.Error("Expected the deceased branch to stay nil for an alive patient")
	}
	if f.NoFollowupReason != nil {
		t.Error("Expected no missed-follow-up reason when the patient attended")
	}
	if err := validate.FinalFollowup(f); err != nil {
		t.Errorf("Expected the completed draft to pass validation, got %v", err)
	}
}

func TestNormalizeAndHelpers(t *testing.T) {
	if normalize(catalog.PlaceholderDistrict) != "" {
		t.Error("Expected a placeholder to normalize to unanswered")
	}
	if normalize("Mbarara") != "Mbarara" {
		t.Error("Expected a real value to pass through")
	}
	if yesNo("Maybe") != "" {
		t.Error("Expected an unknown radio value to map to unanswered")
	}
	if optStr("   ") != nil {
		t.Error("Expected blank input to map to nil")
	}
	if err := validateStudyDate("2015-12-31"); err == nil {
		t.Error("Expected a date before the study window to be rejected")
	}
	if err := validateStudyDate("2017-05-01"); err != nil {
		t.Errorf("Expected an in-window date to pass, got %v", err)
	}
	if err := validateOptionalStudyDate(""); err != nil {
		t.Errorf("Expected blank to pass the optional date check, got %v", err)
	}
}
