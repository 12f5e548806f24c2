// Package record defines the typed patient record and its three sections:
// baseline data, treatment cycles and final follow-up. Field names mirror the
// persisted JSON layout so downstream analysis tooling keeps working.
package record

import "time"

// DateFormat is the serialization format for all date fields.
const DateFormat = "2006-01-02"

// Study window. Admission, prescription, receipt, review, recurrence and death
// dates must all fall inside it.
var (
	StudyStart = time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	StudyEnd   = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// YesNo is a radio answer persisted verbatim. The zero value means unanswered.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// Answered reports whether the operator picked either option.
func (y YesNo) Answered() bool { return y == Yes || y == No }

// PatientRecord is the whole per-patient document. It is created as an empty
// shell on the first save for an unknown identifier and mutated in place by
// every later section save. There is no delete operation.
type PatientRecord struct {
	PatientID     string         `json:"patient_id"`
	Baseline      *Baseline      `json:"baseline_data"`
	Cycles        []Cycle        `json:"treatment_cycles"`
	FinalFollowup *FinalFollowup `json:"final_followup"`
}

// NewShell returns an empty record for a never-seen patient: no baseline, no
// cycles, no follow-up.
func NewShell(patientID string) *PatientRecord {
	return &PatientRecord{
		PatientID: patientID,
		Cycles:    []Cycle{},
	}
}

// CycleByNumber returns the cycle with the given number, or nil.
func (r *PatientRecord) CycleByNumber(n int) *Cycle {
	for i := range r.Cycles {
		if r.Cycles[i].CycleNumber == n {
			return &r.Cycles[i]
		}
	}
	return nil
}

// Comorbidities is the fixed comorbidity flag set captured at baseline.
type Comorbidities struct {
	Diabetes     bool    `json:"diabetes"`
	Hypertension bool    `json:"hypertension"`
	HIV          bool    `json:"hiv"`
	NoneCaptured bool    `json:"none_captured"`
	Other        bool    `json:"other"`
	OtherSpecify *string `json:"other_specify"`
}

// Baseline holds the first-visit section. A baseline save always replaces the
// whole section; conditional fields left unanswered persist as explicit nulls.
type Baseline struct {
	PatientID                 string        `json:"patient_id"`
	Age                       int           `json:"age"`
	DateAdmitted              string        `json:"date_admitted"`
	EducationLevel            string        `json:"education_level"`
	MaritalStatus             string        `json:"marital_status"`
	IncomeSource              string        `json:"income_source"`
	IncomeOther               *string       `json:"income_other"`
	District                  string        `json:"district"`
	InitialDiagnosis          string        `json:"initial_diagnosis"`
	ImmunohistoPresent        YesNo         `json:"immunohisto_present"`
	ImmunohistoResults        []string      `json:"immunohisto_results"`
	ImmunohistoOther          *string       `json:"immunohisto_other"`
	DiseaseStage              string        `json:"disease_stage"`
	Comorbidities             Comorbidities `json:"comorbidities"`
	ChemoCyclesPrescribed     int           `json:"chemo_cycles_prescribed"`
	RegimenPrescribed         string        `json:"regimen_prescribed"`
	TreatmentStarted          YesNo         `json:"treatment_started"`
	TreatmentNotStartedReason *string       `json:"treatment_not_started_reason"`
	TreatmentNotStartedOther  *string       `json:"treatment_not_started_other"`
}

// Medication is one entry in a cycle's medication list. Name is the resolved
// name: either a catalog pick or the free text behind "Other (specify)".
type Medication struct {
	Name string `json:"name"`
	Dose string `json:"dose"`
	Unit string `json:"unit"`
}

// Laboratory holds the lab values recorded for one cycle.
type Laboratory struct {
	WBC        float64 `json:"wbc"`
	Hemoglobin float64 `json:"hemoglobin"`
	Platelets  int     `json:"platelets"`
}

// Cycle holds one chemotherapy treatment cycle. Cycles are unique per
// cycle_number within a record; saving an existing number replaces that entry.
type Cycle struct {
	CycleNumber            int          `json:"cycle_number"`
	PatientID              string       `json:"patient_id"`
	RegimenPrescribed      string       `json:"regimen_prescribed"`
	PrescriptionDate       string       `json:"prescription_date"`
	Medications            []Medication `json:"medications"`
	ChemoReceivedDate      string       `json:"chemo_received_date"`
	Laboratory             Laboratory   `json:"laboratory"`
	ChemoOnPrescriptionDay YesNo        `json:"chemo_on_prescription_day"`
	ChemoDelayReason       *string      `json:"chemo_delay_reason"`
	SideEffectsPresent     YesNo        `json:"side_effects_present"`
	SideEffects            []string     `json:"side_effects"`
	SideEffectsOther       *string      `json:"side_effects_other"`
	PatientCondition       string       `json:"patient_condition"`
	ConditionOther         *string      `json:"condition_other"`
	Hospitalization        YesNo        `json:"hospitalization"`
	HospitalizationReason  *string      `json:"hospitalization_reason"`
}

// Vital status options for the final follow-up.
const (
	StatusAlive    = "Alive"
	StatusDeceased = "Deceased"
)

// FinalFollowup holds the terminal outcome section.
type FinalFollowup struct {
	PatientID              string   `json:"patient_id"`
	LastReviewDate         string   `json:"last_review_date"`
	GeneralCondition       string   `json:"general_condition"`
	FollowupAttendance     YesNo    `json:"followup_attendance"`
	NoFollowupReason       *string  `json:"no_followup_reason"`
	ComorbiditiesDeveloped []string `json:"comorbidities_developed"`
	OtherComorbidity       *string  `json:"other_comorbidity"`
	Recurrence             YesNo    `json:"recurrence"`
	RecurrenceDate         *string  `json:"recurrence_date"`
	PatientStatus          string   `json:"patient_status"`
	DeathDate              *string  `json:"death_date"`
	DeathCause             *string  `json:"death_cause"`
}
