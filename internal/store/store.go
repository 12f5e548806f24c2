// Package store persists patient records as one JSON document per patient
// under the data directory. Every save is a whole-document read-modify-write:
// load the existing record (or start an empty shell), merge the section, write
// the full document back. Safe for a single operator only; concurrent saves to
// the same patient are not supported.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"oncoentry/internal/record"
)

// Store reads and writes patient records under a root directory.
type Store struct {
	root string
	log  zerolog.Logger
}

// New returns a store rooted at dir. The directory is created by
// config.Validate before the first save.
func New(dir string, log zerolog.Logger) *Store {
	return &Store{root: dir, log: log}
}

// Root returns the data directory the store writes under.
func (s *Store) Root() string { return s.root }

func (s *Store) patientDir(patientID string) string {
	return filepath.Join(s.root, "patient_"+record.SanitizeID(patientID))
}

func (s *Store) recordPath(patientID string) string {
	id := record.SanitizeID(patientID)
	return filepath.Join(s.root, "patient_"+id, "patient_"+id+".json")
}

// Load returns the persisted record for the patient, or an empty shell if no
// record exists yet. A missing record is not an error; only I/O and decode
// failures are.
func (s *Store) Load(patientID string) (*record.PatientRecord, error) {
	path := s.recordPath(patientID)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return record.NewShell(patientID), nil
		}
		return nil, fmt.Errorf("reading record %s: %w", path, err)
	}

	rec := &record.PatientRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", path, err)
	}
	if rec.Cycles == nil {
		rec.Cycles = []record.Cycle{}
	}
	return rec, nil
}

// SaveBaseline writes the baseline section, replacing any previous baseline in
// full. Returns the path of the written document.
func (s *Store) SaveBaseline(b *record.Baseline) (string, error) {
	return s.save(b.PatientID, func(rec *record.PatientRecord) {
		rec.Baseline = b
	})
}

// SaveCycle upserts a treatment cycle by cycle number: an existing cycle with
// the same number is replaced in place, otherwise the cycle is appended. Save
// order does not matter; lookup is always keyed by cycle_number.
func (s *Store) SaveCycle(c *record.Cycle) (string, error) {
	return s.save(c.PatientID, func(rec *record.PatientRecord) {
		for i := range rec.Cycles {
			if rec.Cycles[i].CycleNumber == c.CycleNumber {
				rec.Cycles[i] = *c
				return
			}
		}
		rec.Cycles = append(rec.Cycles, *c)
	})
}

// SaveFinalFollowup writes the final follow-up section, replacing any previous
// one in full.
func (s *Store) SaveFinalFollowup(f *record.FinalFollowup) (string, error) {
	return s.save(f.PatientID, func(rec *record.PatientRecord) {
		rec.FinalFollowup = f
	})
}

func (s *Store) save(patientID string, merge func(*record.PatientRecord)) (string, error) {
	if err := os.MkdirAll(s.patientDir(patientID), 0o755); err != nil {
		return "", fmt.Errorf("creating patient directory: %w", err)
	}

	rec, err := s.Load(patientID)
	if err != nil {
		return "", err
	}
	merge(rec)

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	path := s.recordPath(patientID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing record %s: %w", path, err)
	}

	s.log.Info().
		Str("patient_id", patientID).
		Str("path", path).
		Int("cycles", len(rec.Cycles)).
		Msg("record saved")

	return path, nil
}

// CycleCount returns the number of persisted cycles for the patient. Unknown
// patients have zero cycles. The lifecycle machine calls this on every entry
// into the cycle menu so the next cycle number always reflects storage.
func (s *Store) CycleCount(patientID string) (int, error) {
	rec, err := s.Load(patientID)
	if err != nil {
		return 0, err
	}
	return len(rec.Cycles), nil
}

// Patients lists the sanitized identifiers of all recorded patients, sorted.
func (s *Store) Patients() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "patient_") {
			ids = append(ids, strings.TrimPrefix(e.Name(), "patient_"))
		}
	}
	sort.Strings(ids)
	return ids, nil
}
