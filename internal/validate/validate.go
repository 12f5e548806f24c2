// Package validate checks completed section records against the required-field
// and conditional-field rules of the case-report form. Validators are pure:
// they look only at the record passed in and return the first violated rule,
// attributed to its field, or nil on acceptance. All three sections report the
// same structured error shape.
package validate

import (
	"strings"

	"oncoentry/internal/catalog"
	"oncoentry/internal/record"
)

// Error describes the first violated rule of a section. Message is shown to
// the operator as typed; Field names the offending form field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// unanswered covers both an empty select and a placeholder sentinel left in
// place.
func unanswered(s string) bool { return blank(s) || catalog.IsPlaceholder(s) }

// Baseline validates the first-visit section. Check order is significant: the
// operator sees the first failing message, so the order follows the form's
// numbering (identifier, age, identifier length, then the selections top to
// bottom).
func Baseline(b *record.Baseline) *Error {
	if blank(b.PatientID) {
		return fail("patient_id", "Patient ID is required!")
	}
	if b.Age <= 0 {
		return fail("age", "Please enter a valid age!")
	}
	if len(strings.TrimSpace(b.PatientID)) < 3 {
		return fail("patient_id", "Patient ID must be at least 3 characters long!")
	}
	if blank(b.EducationLevel) {
		return fail("education_level", "Please select an education level!")
	}
	if blank(b.MaritalStatus) {
		return fail("marital_status", "Please select a marital status!")
	}
	if blank(b.IncomeSource) {
		return fail("income_source", "Please select an income source!")
	}
	if unanswered(b.District) {
		return fail("district", "Please select a district!")
	}
	if unanswered(b.InitialDiagnosis) {
		return fail("initial_diagnosis", "Please select an initial diagnosis!")
	}
	if !b.ImmunohistoPresent.Answered() {
		return fail("immunohisto_present", "Please select if immunohistochemistry results are present!")
	}
	if blank(b.DiseaseStage) {
		return fail("disease_stage", "Please select a disease stage!")
	}
	if b.ChemoCyclesPrescribed <= 0 {
		return fail("chemo_cycles_prescribed", "Please enter the number of chemotherapy cycles prescribed!")
	}
	if unanswered(b.RegimenPrescribed) {
		return fail("regimen_prescribed", "Please select a prescribed regimen!")
	}
	if !b.TreatmentStarted.Answered() {
		return fail("treatment_started", "Please select if the patient started treatment!")
	}
	return nil
}

// Cycle validates one treatment cycle. A medication entry resolved from the
// catalog's "Other (specify)" pick with a blank free-text name has an empty
// Name here and counts as absent.
func Cycle(c *record.Cycle) *Error {
	if unanswered(c.RegimenPrescribed) {
		return fail("regimen_prescribed", "Please select the regimen prescribed for this cycle!")
	}
	if blank(c.PrescriptionDate) {
		return fail("prescription_date", "Please enter the chemotherapy prescription date!")
	}
	if len(c.Medications) == 0 {
		return fail("medications", "Please add at least one medication!")
	}
	for _, m := range c.Medications {
		if blank(m.Name) || catalog.IsPlaceholder(m.Name) {
			return fail("medications", "Every medication entry needs a name!")
		}
		if blank(m.Dose) {
			return fail("medications", "Every medication entry needs a dose!")
		}
	}
	return nil
}

// FinalFollowup validates the terminal outcome section, including its
// conditional branches: a missed follow-up needs a reason, a recurrence needs
// a confirmation date, and a deceased status needs both death date and cause.
func FinalFollowup(f *record.FinalFollowup) *Error {
	if blank(f.LastReviewDate) {
		return fail("last_review_date", "Please enter the last recorded review date!")
	}
	if blank(f.GeneralCondition) {
		return fail("general_condition", "Please describe the patient's general condition!")
	}
	if !f.FollowupAttendance.Answered() {
		return fail("followup_attendance", "Please select whether the patient came back for follow up!")
	}
	if blank(f.PatientStatus) {
		return fail("patient_status", "Please select the patient's status at last follow-up!")
	}
	if f.FollowupAttendance == record.No && (f.NoFollowupReason == nil || blank(*f.NoFollowupReason)) {
		return fail("no_followup_reason", "Please explain why the patient did not come for follow-up!")
	}
	if f.Recurrence == record.Yes && (f.RecurrenceDate == nil || blank(*f.RecurrenceDate)) {
		return fail("recurrence_date", "Please enter the date the recurrence was confirmed!")
	}
	if f.PatientStatus == record.StatusDeceased {
		if f.DeathDate == nil || blank(*f.DeathDate) {
			return fail("death_date", "Please enter the date of death!")
		}
		if f.DeathCause == nil || blank(*f.DeathCause) {
			return fail("death_cause", "Please enter the primary cause of death!")
		}
	}
	return nil
}
