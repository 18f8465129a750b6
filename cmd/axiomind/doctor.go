package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/axiomind/internal/config"
)

// DoctorCmd is the ambient-tooling supplement restored from
// SPEC_FULL.md §6.3: it checks that the configured hand-log directory
// is writable and that the resolved Settings pass validation, printing
// one ok/fail line per check.
type DoctorCmd struct {
	HandLogDir string `default:"." help:"Directory the hand log is written to"`
}

func (c *DoctorCmd) Run() error {
	ok := true

	if err := checkWritable(c.HandLogDir); err != nil {
		fmt.Printf("fail: hand log directory %q is not writable: %v\n", c.HandLogDir, err)
		ok = false
	} else {
		fmt.Printf("ok: hand log directory %q is writable\n", c.HandLogDir)
	}

	if _, err := config.Load(); err != nil {
		fmt.Printf("fail: configuration: %v\n", err)
		ok = false
	} else {
		fmt.Println("ok: configuration resolves and validates")
	}

	if !ok {
		return fmt.Errorf("doctor: one or more checks failed")
	}
	return nil
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".axiomind-doctor-probe")
	f, err := os.Create(probe)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(probe)
}
