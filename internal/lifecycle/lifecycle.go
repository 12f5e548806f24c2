// Package lifecycle tracks which stage of the data-entry sequence the operator
// is in and the transitions triggered by save, cancel and new-patient actions.
// The machine is a disposable view over persisted storage: it can be reset to
// Idle at any time without losing data, and the next cycle number it offers is
// recomputed from storage on every entry into CycleIdle.
package lifecycle

import "fmt"

// State is a stage of the patient-record lifecycle.
type State int

const (
	// Idle means no patient is open; the baseline form is offered.
	Idle State = iota
	// CycleIdle means the baseline is saved and no cycle form is open; the
	// operator decides between the next cycle and the final follow-up.
	CycleIdle
	// CycleActive means a cycle form is open for ActiveCycle().
	CycleActive
	// FinalFollowup means the final follow-up form is open.
	FinalFollowup
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CycleIdle:
		return "cycle-idle"
	case CycleActive:
		return "cycle-active"
	case FinalFollowup:
		return "final-followup"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// CycleCounter reports how many cycles are persisted for a patient. The store
// implements it; the machine never tracks the count in memory.
type CycleCounter interface {
	CycleCount(patientID string) (int, error)
}

// Machine is the lifecycle state machine. It runs indefinitely across
// patients; Idle is re-entered after every completed (or closed) record.
type Machine struct {
	counter CycleCounter

	state     State
	patientID string
	active    int // open cycle number while CycleActive
	next      int // next cycle number offered while CycleIdle
}

// New returns a machine in Idle.
func New(counter CycleCounter) *Machine {
	return &Machine{counter: counter, state: Idle}
}

// State returns the current stage.
func (m *Machine) State() State { return m.state }

// PatientID returns the open patient identifier, or "" in Idle.
func (m *Machine) PatientID() string { return m.patientID }

// ActiveCycle returns the open cycle number while CycleActive.
func (m *Machine) ActiveCycle() int { return m.active }

// NextCycle returns the cycle number CycleIdle offers, always the persisted
// cycle count plus one.
func (m *Machine) NextCycle() int { return m.next }

func (m *Machine) reset() {
	m.state = Idle
	m.patientID = ""
	m.active = 0
	m.next = 0
}

// enterCycleIdle recomputes the next cycle number from storage so the machine
// stays consistent even if the session was reset mid-flow.
func (m *Machine) enterCycleIdle() error {
	count, err := m.counter.CycleCount(m.patientID)
	if err != nil {
		return fmt.Errorf("counting cycles for %s: %w", m.patientID, err)
	}
	m.next = count + 1
	m.active = 0
	m.state = CycleIdle
	return nil
}

// BaselineSaved records a successful baseline save. When treatment started
// (or the question is treated as open), the machine moves to CycleIdle for the
// patient; when treatment was not started the record is closed and the machine
// returns to Idle for a new patient.
func (m *Machine) BaselineSaved(patientID string, treatmentStarted bool) error {
	if m.state != Idle {
		return fmt.Errorf("baseline saved in %s state", m.state)
	}
	if !treatmentStarted {
		m.reset()
		return nil
	}
	m.patientID = patientID
	return m.enterCycleIdle()
}

// OpenCycle opens the next cycle form and returns its number.
func (m *Machine) OpenCycle() (int, error) {
	if m.state != CycleIdle {
		return 0, fmt.Errorf("cannot open a cycle in %s state", m.state)
	}
	m.active = m.next
	m.state = CycleActive
	return m.active, nil
}

// CycleSaved records a successful cycle save and returns to CycleIdle with the
// next number recomputed from storage.
func (m *Machine) CycleSaved() error {
	if m.state != CycleActive {
		return fmt.Errorf("cycle saved in %s state", m.state)
	}
	return m.enterCycleIdle()
}

// CancelCycle discards the open cycle form without touching storage.
func (m *Machine) CancelCycle() error {
	if m.state != CycleActive {
		return fmt.Errorf("cannot cancel a cycle in %s state", m.state)
	}
	return m.enterCycleIdle()
}

// OpenFinalFollowup opens the final follow-up form.
func (m *Machine) OpenFinalFollowup() error {
	if m.state != CycleIdle {
		return fmt.Errorf("cannot open final follow-up in %s state", m.state)
	}
	m.state = FinalFollowup
	return nil
}

// BackToCycles returns from the final follow-up form to the cycle menu.
func (m *Machine) BackToCycles() error {
	if m.state != FinalFollowup {
		return fmt.Errorf("cannot go back to cycles in %s state", m.state)
	}
	return m.enterCycleIdle()
}

// FollowupSaved records a successful final follow-up save; the record is
// complete and the machine returns to Idle for a new patient.
func (m *Machine) FollowupSaved() error {
	if m.state != FinalFollowup {
		return fmt.Errorf("final follow-up saved in %s state", m.state)
	}
	m.reset()
	return nil
}

// NewPatient abandons any transient state and returns to Idle. Persisted
// records are never touched.
func (m *Machine) NewPatient() {
	m.reset()
}
