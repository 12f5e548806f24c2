// Package catalog holds the fixed option lists of the case-report form:
// demographics, diagnoses, regimens, medications, side effects and the
// placeholder sentinels used by select fields before a choice is made.
package catalog

import "strings"

// Placeholder sentinels. Select fields start on these; the validator rejects
// them as "not answered".
const (
	PlaceholderSelect     = "-- Select --"
	PlaceholderDistrict   = "-- Select District --"
	PlaceholderDiagnosis  = "-- Select Initial Diagnosis --"
	PlaceholderRegimen    = "-- Select Regimen --"
	PlaceholderMedication = "-- Select Medication --"
	PlaceholderReason     = "-- Select Reason --"
)

// Other is the catalog entry that routes to a free-text elaboration.
const Other = "Other"

// OtherMedication is the medication catalog entry that requires a free-text
// name before the entry counts as named.
const OtherMedication = "Other (specify)"

// IsPlaceholder reports whether a select value is still a placeholder
// sentinel rather than an operator choice.
func IsPlaceholder(v string) bool {
	return strings.HasPrefix(v, "-- Select")
}

// EducationOptions are the highest-education radio choices.
func EducationOptions() []string {
	return []string{"None", "Primary", "Secondary", "Tertiary", "Not captured"}
}

// MaritalOptions are the marital-status radio choices.
func MaritalOptions() []string {
	return []string{"Single", "Married", "Divorced", "Widowed", "Not captured"}
}

// IncomeOptions are the main-income-source radio choices. "Other" requires a
// free-text elaboration.
func IncomeOptions() []string {
	return []string{"Farmer", "Business", "Professional", "Unemployed", Other}
}

// DiagnosisOptions are the initial-diagnosis choices.
func DiagnosisOptions() []string {
	return []string{
		"Invasive ductal carcinoma",
		"Moderately differentiated invasive ductal carcinoma",
		"Moderately differentiated ductal carcinoma",
		"Ductal carcinoma in situ",
		"Infiltrating carcinoma",
		"Poorly differentiated adenocarcinoma",
		"Invasive adenocarcinoma",
		"Invasive lobular carcinoma",
		Other,
	}
}

// StageOptions are the disease-stage radio choices.
func StageOptions() []string {
	return []string{"Stage 0", "Stage I", "Stage II", "Stage III", "Stage IV"}
}

// ImmunohistoOptions are the immunohistochemistry result tags. "Other" routes
// to a free-text elaboration.
func ImmunohistoOptions() []string {
	return []string{
		"ER-positive (ER+)",
		"ER-negative (ER-)",
		"PR-positive (PR+)",
		"PR-negative (PR-)",
		"HR-positive (HR+)",
		"HR-negative (HR-)",
		"HER2-positive (HER2+)",
		"HER2-negative (HER2-)",
		Other,
	}
}

// RegimenOptions are the chemotherapy regimen choices, shared by the baseline
// prescription and the per-cycle prescription.
func RegimenOptions() []string {
	return []string{
		"AC (Doxorubicin + Cyclophosphamide)",
		"AC-T (Doxorubicin + Cyclophosphamide + Paclitaxel)",
		"CMF (Cyclophosphamide + Methotrexate + 5-Fluorouracil)",
		"FAC (5-Fluorouracil + Doxorubicin + Cyclophosphamide)",
		"FEC (5-Fluorouracil + Epirubicin + Cyclophosphamide)",
		"TC (Docetaxel + Cyclophosphamide)",
		"TCH (Docetaxel + Carboplatin + Trastuzumab)",
		"TAC (Docetaxel + Doxorubicin + Cyclophosphamide)",
		"EC-T (Epirubicin + Cyclophosphamide + Paclitaxel)",
		"Capecitabine (Xeloda) monotherapy",
		"Tamoxifen monotherapy",
		Other,
	}
}

// MedicationOptions is the fixed medication catalog offered per cycle entry.
func MedicationOptions() []string {
	return []string{
		"Adriamycin",
		"Cyclophosphamide",
		"Doxorubicin",
		"Dexamethasone",
		"5-fluorouracil",
		"Ondansetron",
		"Ranitidine",
		"Metoclopramide",
		"Plasil",
		"Ifosfamide",
		"Mesna",
		"Paclitaxel",
		"Epirubicin",
		"Carboplatin",
		"Capecitabine (Xeloda)",
		"Docetaxel",
		"Promethazine",
		"Tamoxifen",
		"Anastrazole",
	}
}

// UnitOptions are the dose units for a medication entry.
func UnitOptions() []string {
	return []string{"mg", "mg/m2", "g", "mL", "tabs", "IU"}
}

// SideEffectOptions are the post-treatment side effect tags.
func SideEffectOptions() []string {
	return []string{"Nausea", "Fatigue", "Vomiting", "Neuropathy", "None", Other}
}

// ConditionOptions are the patient-condition radio choices at a cycle visit.
func ConditionOptions() []string {
	return []string{"Better", "Weaker", Other}
}

// ComorbidityOptions are the comorbidity tags shared by baseline entry and the
// developed-comorbidity set at final follow-up.
func ComorbidityOptions() []string {
	return []string{"Diabetes", "Hypertension", "HIV", "None captured", Other}
}

// NoTreatmentReasons are the reasons offered when treatment was not started.
func NoTreatmentReasons() []string {
	return []string{
		"Physical toll (fear of side effects)",
		"Fear of Long-term damage",
		"Financial / cost barriers",
		"Distance and access",
		"Late diagnosis",
		"Social / family factors",
		"Older age, existing illnesses, or weak health",
		Other,
	}
}

// IsRegimen checks whether a value is a catalog regimen.
func IsRegimen(v string) bool { return contains(RegimenOptions(), v) }

// IsMedication checks whether a value is a catalog medication.
func IsMedication(v string) bool { return contains(MedicationOptions(), v) }

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
