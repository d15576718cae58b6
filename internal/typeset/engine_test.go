// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package typeset

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/book-engine/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runFunc       func(name string, args []string, stdout io.Writer) error
	runCalls      [][]string // recorded Run invocations: [bin, args...]
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) Run(name string, args []string, stdout io.Writer) error {
	m.runCalls = append(m.runCalls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout)
	}
	return nil
}

func TestDetectEngine(t *testing.T) {
	tests := []struct {
		name      string
		requested types.TypesetEngine
		exec      *mockExecutor
		wantName  string
		wantErr   string
	}{
		{
			name: "pdflatex preferred when unspecified",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdflatex": true, "xelatex": true},
				runnableCmds:  map[string]bool{"pdflatex --version": true, "xelatex --version": true},
			},
			wantName: "pdflatex",
		},
		{
			name: "xelatex fallback when pdflatex missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"xelatex": true},
				runnableCmds:  map[string]bool{"xelatex --version": true},
			},
			wantName: "xelatex",
		},
		{
			name: "pdflatex on PATH but version check fails",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdflatex": true, "xelatex": true},
				runnableCmds:  map[string]bool{"xelatex --version": true},
			},
			wantName: "xelatex",
		},
		{
			name: "neither engine available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: "no typesetting engine available",
		},
		{
			name:      "requested engine honored",
			requested: types.EngineXelatex,
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdflatex": true, "xelatex": true},
				runnableCmds:  map[string]bool{"pdflatex --version": true, "xelatex --version": true},
			},
			wantName: "xelatex",
		},
		{
			name:      "requested engine missing is an error",
			requested: types.EngineXelatex,
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdflatex": true},
				runnableCmds:  map[string]bool{"pdflatex --version": true},
			},
			wantErr: "xelatex not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := detectEngine(tt.requested, tt.exec)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Name() != tt.wantName {
				t.Errorf("engine = %q, want %q", e.Name(), tt.wantName)
			}
		})
	}
}

func TestEngineTypeset(t *testing.T) {
	exec := &mockExecutor{}
	e := &engine{bin: "pdflatex", exec: exec}

	if err := e.Typeset("build/expanded.tex", "build", io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(exec.runCalls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(exec.runCalls))
	}
	call := strings.Join(exec.runCalls[0], " ")
	want := "pdflatex -interaction=nonstopmode -halt-on-error -output-directory build build/expanded.tex"
	if call != want {
		t.Errorf("invocation = %q, want %q", call, want)
	}
}

func TestEngineTypesetFailure(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(string, []string, io.Writer) error {
			return errors.New("Emergency stop")
		},
	}
	e := &engine{bin: "pdflatex", exec: exec}

	err := e.Typeset("build/expanded.tex", "build", io.Discard)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "pdflatex") {
		t.Errorf("error should name the engine, got: %v", err)
	}
}

func TestTypesetPDF(t *testing.T) {
	tests := []struct {
		name       string
		passes     int
		failOnCall int // 1-based Run call that fails; 0 means none
		wantCalls  int
		wantErr    bool
	}{
		{name: "default two passes", passes: 0, wantCalls: 2},
		{name: "configured passes", passes: 3, wantCalls: 3},
		{name: "first pass failure stops the run", passes: 2, failOnCall: 1, wantCalls: 1, wantErr: true},
		{name: "second pass failure reported", passes: 2, failOnCall: 2, wantCalls: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			exec := &mockExecutor{
				runFunc: func(string, []string, io.Writer) error {
					calls++
					if calls == tt.failOnCall {
						return errors.New("engine failed")
					}
					return nil
				},
			}
			e := &engine{bin: "pdflatex", exec: exec}
			cfg := types.TypesetConfig{BuildDir: "build", Passes: tt.passes}

			var status bytes.Buffer
			err := TypesetPDF(e, "build/expanded.tex", cfg, &status)

			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("engine invoked %d times, want %d", calls, tt.wantCalls)
			}
			if !tt.wantErr && !strings.Contains(status.String(), "pass 1/") {
				t.Errorf("status output should report passes, got %q", status.String())
			}
		})
	}
}
