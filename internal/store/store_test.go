package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"oncoentry/internal/record"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), zerolog.Nop())
}

func testBaseline(patientID string) *record.Baseline {
	return &record.Baseline{
		PatientID:             patientID,
		Age:                   52,
		DateAdmitted:          "2017-03-14",
		EducationLevel:        "Primary",
		MaritalStatus:         "Married",
		IncomeSource:          "Farmer",
		District:              "Mbarara",
		InitialDiagnosis:      "Invasive ductal carcinoma",
		ImmunohistoPresent:    record.No,
		ImmunohistoResults:    []string{},
		DiseaseStage:          "Stage II",
		ChemoCyclesPrescribed: 6,
		RegimenPrescribed:     "AC (Doxorubicin + Cyclophosphamide)",
		TreatmentStarted:      record.Yes,
	}
}

func TestLoadUnknownPatientReturnsShell(t *testing.T) {
	s := testStore(t)

	rec, err := s.Load("WMJ11")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec.PatientID != "WMJ11" {
		t.Errorf("Expected patient id WMJ11, got %s", rec.PatientID)
	}
	if rec.Baseline != nil || rec.FinalFollowup != nil {
		t.Error("Expected an empty shell for an unknown patient")
	}
	if len(rec.Cycles) != 0 {
		t.Errorf("Expected no cycles, got %d", len(rec.Cycles))
	}
}

func TestSaveBaselineRoundTrip(t *testing.T) {
	s := testStore(t)
	b := testBaseline("WMJ11")

	path, err := s.SaveBaseline(b)
	if err != nil {
		t.Fatalf("SaveBaseline failed: %v", err)
	}

	wantPath := filepath.Join(s.Root(), "patient_WMJ11", "patient_WMJ11.json")
	if path != wantPath {
		t.Errorf("Expected path %s, got %s", wantPath, path)
	}

	rec, err := s.Load("WMJ11")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(rec.Baseline, b) {
		t.Errorf("Baseline round trip mismatch:\ngot  %+v\nwant %+v", rec.Baseline, b)
	}
	if len(rec.Cycles) != 0 {
		t.Errorf("Expected no cycles after a baseline save, got %d", len(rec.Cycles))
	}
}

func TestSaveBaselineSanitizesPath(t *testing.T) {
	s := testStore(t)

	path, err := s.SaveBaseline(testBaseline("AB/01"))
	if err != nil {
		t.Fatalf("SaveBaseline failed: %v", err)
	}

	wantPath := filepath.Join(s.Root(), "patient_AB_01", "patient_AB_01.json")
	if path != wantPath {
		t.Errorf("Expected sanitized path %s, got %s", wantPath, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected record file to exist: %v", err)
	}
}

func TestSaveCycleAppendsAndUpserts(t *testing.T) {
	s := testStore(t)
	if _, err := s.SaveBaseline(testBaseline("WMJ11")); err != nil {
		t.Fatalf("SaveBaseline failed: %v", err)
	}

	c1 := &record.Cycle{
		CycleNumber:       1,
		PatientID:         "WMJ11",
		RegimenPrescribed: "AC (Doxorubicin + Cyclophosphamide)",
		PrescriptionDate:  "2017-04-01",
		Medications:       []record.Medication{{Name: "Doxorubicin", Dose: "60", Unit: "mg"}},
	}
	c2 := &record.Cycle{
		CycleNumber:       2,
		PatientID:         "WMJ11",
		RegimenPrescribed: "AC (Doxorubicin + Cyclophosphamide)",
		PrescriptionDate:  "2017-04-22",
		Medications:       []record.Medication{{Name: "Doxorubicin", Dose: "60", Unit: "mg"}},
	}

	for _, c := range []*record.Cycle{c1, c2} {
		if _, err := s.SaveCycle(c); err != nil {
			t.Fatalf("SaveCycle %d failed: %v", c.CycleNumber, err)
		}
	}

	// Re-saving an existing number replaces in place, not appends.
	c1bis := *c1
	c1bis.PrescriptionDate = "2017-04-02"
	if _, err := s.SaveCycle(&c1bis); err != nil {
		t.Fatalf("SaveCycle upsert failed: %v", err)
	}

	rec, err := s.Load("WMJ11")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rec.Cycles) != 2 {
		t.Fatalf("Expected 2 cycles, got %d", len(rec.Cycles))
	}
	got := rec.CycleByNumber(1)
	if got == nil || got.PrescriptionDate != "2017-04-02" {
		t.Errorf("Expected upserted cycle 1 with date 2017-04-02, got %+v", got)
	}
	if rec.Baseline == nil {
		t.Error("Expected the baseline to survive cycle saves")
	}
}

func TestSaveCycleOutOfOrderNumbers(t *testing.T) {
	s := testStore(t)

	c3 := &record.Cycle{CycleNumber: 3, PatientID: "WMJ11", Medications: []record.Medication{}}
	c1 := &record.Cycle{CycleNumber: 1, PatientID: "WMJ11", Medications: []record.Medication{}}
	for _, c := range []*record.Cycle{c3, c1} {
		if _, err := s.SaveCycle(c); err != nil {
			t.Fatalf("SaveCycle failed: %v", err)
		}
	}

	rec, err := s.Load("WMJ11")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rec.Cycles) != 2 {
		t.Fatalf("Expected 2 cycles, got %d", len(rec.Cycles))
	}
	if rec.CycleByNumber(3) == nil || rec.CycleByNumber(1) == nil {
		t.Error("Expected lookup by cycle number regardless of save order")
	}
}

func TestSaveFinalFollowup(t *testing.T) {
	s := testStore(t)
	if _, err := s.SaveBaseline(testBaseline("WMJ11")); err != nil {
		t.Fatalf("SaveBaseline failed: %v", err)
	}

	f := &record.FinalFollowup{
		PatientID:              "WMJ11",
		LastReviewDate:         "2018-02-01",
		GeneralCondition:       "Stable",
		FollowupAttendance:     record.Yes,
		ComorbiditiesDeveloped: []string{},
		Recurrence:             record.No,
		PatientStatus:          record.StatusAlive,
	}
	if _, err := s.SaveFinalFollowup(f); err != nil {
		t.Fatalf("SaveFinalFollowup failed: %v", err)
	}

	rec, err := s.Load("WMJ11")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(rec.FinalFollowup, f) {
		t.Errorf("Final follow-up mismatch:\ngot  %+v\nwant %+v", rec.FinalFollowup, f)
	}
}

func TestPersistedLayout(t *testing.T) {
	s := testStore(t)
	path, err := s.SaveBaseline(testBaseline("WMJ11"))
	if err != nil {
		t.Fatalf("SaveBaseline failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading record failed: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Record is not valid JSON: %v", err)
	}
	for _, key := range []string{"patient_id", "baseline_data", "treatment_cycles", "final_followup"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("Expected top-level key %q in the persisted document", key)
		}
	}
	// Unanswered conditionals persist as explicit nulls.
	if string(doc["final_followup"]) != "null" {
		t.Errorf("Expected final_followup to be null, got %s", doc["final_followup"])
	}
}

func TestCycleCount(t *testing.T) {
	s := testStore(t)

	n, err := s.CycleCount("WMJ11")
	if err != nil {
		t.Fatalf("CycleCount failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 cycles for an unknown patient, got %d", n)
	}

	c := &record.Cycle{CycleNumber: 1, PatientID: "WMJ11", Medications: []record.Medication{}}
	if _, err := s.SaveCycle(c); err != nil {
		t.Fatalf("SaveCycle failed: %v", err)
	}

	n, err = s.CycleCount("WMJ11")
	if err != nil {
		t.Fatalf("CycleCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 cycle, got %d", n)
	}
}

func TestPatients(t *testing.T) {
	s := testStore(t)

	ids, err := s.Patients()
	if err != nil {
		t.Fatalf("Patients failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no patients in an empty store, got %v", ids)
	}

	for _, id := range []string{"ZZZ9", "AAA1"} {
		if _, err := s.SaveBaseline(testBaseline(id)); err != nil {
			t.Fatalf("SaveBaseline %s failed: %v", id, err)
		}
	}

	ids, err = s.Patients()
	if err != nil {
		t.Fatalf("Patients failed: %v", err)
	}
	want := []string{"AAA1", "ZZZ9"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected %v, got %v", want, ids)
	}
}
