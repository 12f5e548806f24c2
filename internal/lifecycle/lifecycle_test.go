package lifecycle

import (
	"errors"
	"testing"
)

// fakeCounter implements CycleCounter over an in-memory map.
type fakeCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeCounter) CycleCount(patientID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[patientID], nil
}

func TestFullPatientFlow(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{}}
	m := New(counter)

	if m.State() != Idle {
		t.Fatalf("Expected Idle at start, got %s", m.State())
	}

	if err := m.BaselineSaved("WMJ11", true); err != nil {
		t.Fatalf("BaselineSaved failed: %v", err)
	}
	if m.State() != CycleIdle {
		t.Fatalf("Expected CycleIdle after baseline, got %s", m.State())
	}
	if m.NextCycle() != 1 {
		t.Errorf("Expected next cycle 1, got %d", m.NextCycle())
	}

	n, err := m.OpenCycle()
	if err != nil {
		t.Fatalf("OpenCycle failed: %v", err)
	}
	if n != 1 || m.ActiveCycle() != 1 {
		t.Errorf("Expected active cycle 1, got %d", m.ActiveCycle())
	}

	counter.counts["WMJ11"] = 1
	if err := m.CycleSaved(); err != nil {
		t.Fatalf("CycleSaved failed: %v", err)
	}
	if m.State() != CycleIdle || m.NextCycle() != 2 {
		t.Errorf("Expected CycleIdle with next cycle 2, got %s/%d", m.State(), m.NextCycle())
	}

	if err := m.OpenFinalFollowup(); err != nil {
		t.Fatalf("OpenFinalFollowup failed: %v", err)
	}
	if m.State() != FinalFollowup {
		t.Fatalf("Expected FinalFollowup, got %s", m.State())
	}

	if err := m.FollowupSaved(); err != nil {
		t.Fatalf("FollowupSaved failed: %v", err)
	}
	if m.State() != Idle || m.PatientID() != "" {
		t.Errorf("Expected a reset machine after the record closed, got %s/%q", m.State(), m.PatientID())
	}
}

func TestTreatmentNotStartedClosesRecord(t *testing.T) {
	m := New(&fakeCounter{counts: map[string]int{}})

	if err := m.BaselineSaved("WMJ11", false); err != nil {
		t.Fatalf("BaselineSaved failed: %v", err)
	}
	if m.State() != Idle {
		t.Errorf("Expected Idle when treatment was not started, got %s", m.State())
	}
	if m.PatientID() != "" {
		t.Errorf("Expected no open patient, got %q", m.PatientID())
	}
}

func TestCancelCycleKeepsNextNumber(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{"WMJ11": 2}}
	m := New(counter)

	if err := m.BaselineSaved("WMJ11", true); err != nil {
		t.Fatalf("BaselineSaved failed: %v", err)
	}
	if m.NextCycle() != 3 {
		t.Fatalf("Expected next cycle 3 from storage, got %d", m.NextCycle())
	}

	if _, err := m.OpenCycle(); err != nil {
		t.Fatalf("OpenCycle failed: %v", err)
	}
	if err := m.CancelCycle(); err != nil {
		t.Fatalf("CancelCycle failed: %v", err)
	}
	if m.State() != CycleIdle || m.NextCycle() != 3 {
		t.Errorf("Expected CycleIdle with next cycle still 3, got %s/%d", m.State(), m.NextCycle())
	}
}

func TestNextCycleRecomputedFromStorage(t *testing.T) {
	// A fresh machine over a patient with persisted cycles offers count+1, as
	// if the session was restarted mid-record.
	counter := &fakeCounter{counts: map[string]int{"WMJ11": 4}}
	m := New(counter)

	if err := m.BaselineSaved("WMJ11", true); err != nil {
		t.Fatalf("BaselineSaved failed: %v", err)
	}
	if m.NextCycle() != 5 {
		t.Errorf("Expected next cycle 5 after restart, got %d", m.NextCycle())
	}
}

func TestBackToCycles(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{"WMJ11": 1}}
	m := New(counter)

	if err := m.BaselineSaved("WMJ11", true); err != nil {
		t.Fatalf("BaselineSaved failed: %v", err)
	}
	if err := m.OpenFinalFollowup(); err != nil {
		t.Fatalf("OpenFinalFollowup failed: %v", err)
	}
	if err := m.BackToCycles(); err != nil {
		t.Fatalf("BackToCycles failed: %v", err)
	}
	if m.State() != CycleIdle || m.NextCycle() != 2 {
		t.Errorf("Expected CycleIdle with next cycle 2, got %s/%d", m.State(), m.NextCycle())
	}
}

func TestInvalidTransitions(t *testing.T) {
	m := New(&fakeCounter{counts: map[string]int{}})

	if _, err := m.OpenCycle(); err == nil {
		t.Error("Expected OpenCycle to fail in Idle")
	}
	if err := m.CycleSaved(); err == nil {
		t.Error("Expected CycleSaved to fail in Idle")
	}
	if err := m.OpenFinalFollowup(); err == nil {
		t.Error("Expected OpenFinalFollowup to fail in Idle")
	}
	if err := m.FollowupSaved(); err == nil {
		t.Error("Expected FollowupSaved to fail in Idle")
	}

	if err := m.BaselineSaved("WMJ11", true); err != nil {
		t.Fatalf("BaselineSaved failed: %v", err)
	}
	if err := m.BaselineSaved("WMJ12", true); err == nil {
		t.Error("Expected a second BaselineSaved to fail outside Idle")
	}
	if err := m.CancelCycle(); err == nil {
		t.Error("Expected CancelCycle to fail in CycleIdle")
	}
	if err := m.BackToCycles(); err == nil {
		t.Error("Expected BackToCycles to fail in CycleIdle")
	}
}

func TestNewPatientResetsFromAnyState(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{}}
	m := New(counter)

	if err := m.BaselineSaved("WMJ11", true); err != nil {
		t.Fatalf("BaselineSaved failed: %v", err)
	}
	if _, err := m.OpenCycle(); err != nil {
		t.Fatalf("OpenCycle failed: %v", err)
	}

	m.NewPatient()
	if m.State() != Idle || m.PatientID() != "" || m.ActiveCycle() != 0 {
		t.Errorf("Expected a fully reset machine, got %s/%q/%d",
			m.State(), m.PatientID(), m.ActiveCycle())
	}
}

func TestCounterErrorSurfaces(t *testing.T) {
	counter := &fakeCounter{err: errors.New("disk gone")}
	m := New(counter)

	if err := m.BaselineSaved("WMJ11", true); err == nil {
		t.Error("Expected a counter failure to surface from BaselineSaved")
	}
}
