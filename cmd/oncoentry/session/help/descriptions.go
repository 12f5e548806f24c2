// Package help holds the contextual guidance shown next to form fields.
package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for the data-entry form fields
var Texts = map[string]HelpText{
	"patient_id": {
		Title:       "PATIENT ID",
		Description: "Unique patient identifier from the case-report form.",
		Details: `Example: WMJ11
Minimum 3 characters. Used as the storage key for the whole record;
characters unsafe in file names are replaced with underscores.`,
	},
	"age": {
		Title:       "AGE",
		Description: "Patient age in years at first visit.",
		Details:     "Whole number greater than zero.",
	},
	"date_admitted": {
		Title:       "DATE ADMITTED",
		Description: "Date the patient was first admitted.",
		Details:     "Format: YYYY-MM-DD, within the study window 2016-01-01 to 2025-12-31.",
	},
	"district": {
		Title:       "DISTRICT OF RESIDENCE",
		Description: "Patient's home district.",
		Details:     "Loaded from the district list file. Pick the closest match on the paper form.",
	},
	"initial_diagnosis": {
		Title:       "INITIAL DIAGNOSIS",
		Description: "Histological diagnosis at presentation.",
		Details:     `Pick "Other" if the recorded diagnosis is not in the list.`,
	},
	"immunohisto_present": {
		Title:       "IMMUNOHISTOCHEMISTRY",
		Description: "Whether immunohistochemistry results are present in the file.",
		Details:     "If Yes, select every result tag recorded (ER/PR/HR/HER2 status).",
	},
	"disease_stage": {
		Title:       "DISEASE STAGE",
		Description: "Stage at first diagnosis.",
		Details:     "Stage 0 through Stage IV.",
	},
	"chemo_cycles_prescribed": {
		Title:       "CYCLES PRESCRIBED",
		Description: "Number of chemotherapy cycles prescribed at baseline.",
		Details:     "Whole number greater than zero.",
	},
	"regimen_prescribed": {
		Title:       "REGIMEN",
		Description: "Chemotherapy regimen prescribed.",
		Details:     "Combination regimens are listed with their component drugs.",
	},
	"treatment_started": {
		Title:       "TREATMENT STARTED",
		Description: "Did the patient start treatment?",
		Details: `If No, a reason is captured and the record is closed
without any treatment cycles.`,
	},
	"prescription_date": {
		Title:       "PRESCRIPTION DATE",
		Description: "Date chemotherapy was prescribed for this cycle.",
		Details:     "Format: YYYY-MM-DD, within the study window.",
	},
	"chemo_received_date": {
		Title:       "DATE RECEIVED",
		Description: "Date chemotherapy was actually received.",
		Details:     "Format: YYYY-MM-DD, within the study window.",
	},
	"wbc": {
		Title:       "TOTAL WBC",
		Description: "White blood cell count before this cycle.",
		Details:     "Range 0 to 50000.",
	},
	"hemoglobin": {
		Title:       "HEMOGLOBIN",
		Description: "Hemoglobin level in g/dL.",
		Details:     "Range 0 to 25.",
	},
	"platelets": {
		Title:       "PLATELETS",
		Description: "Platelet count.",
		Details:     "Range 0 to 1000000.",
	},
	"medication_pick": {
		Title:       "MEDICATION",
		Description: "Medication given during this cycle.",
		Details: `Pick from the catalog, or "Other (specify)" and type the name.
Every entry needs both a name and a dose.`,
	},
	"medication_dose": {
		Title:       "DOSE",
		Description: "Dose as written on the chart.",
		Details:     "Examples: 60, 1.5",
	},
	"last_review_date": {
		Title:       "LAST REVIEW DATE",
		Description: "Date of the last recorded follow-up visit.",
		Details:     "Format: YYYY-MM-DD, within the study window.",
	},
	"patient_status": {
		Title:       "PATIENT STATUS",
		Description: "Vital status at last follow-up.",
		Details:     "If Deceased, the death date and primary cause are required.",
	},
}
