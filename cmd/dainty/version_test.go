package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	tests := []struct {
		name          string
		version       string
		build         string
		buildTime     string
		expectContain []string
		expectMissing []string
	}{
		{
			name:          "dev build",
			version:       "dev",
			build:         "unknown",
			expectContain: []string{"dainty version dev\n", "Go version:", "OS/Arch:"},
			expectMissing: []string{"(build:"},
		},
		{
			name:          "release build",
			version:       "0.3.0",
			build:         "abc1234",
			buildTime:     "2026-01-12_09:30:00",
			expectContain: []string{"dainty version 0.3.0 (build: abc1234) [2026-01-12_09:30:00]", "Go version:"},
			expectMissing: []string{"Commit:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origBuild, origBuildTime := Version, Build, BuildTime
			defer func() {
				Version, Build, BuildTime = origVersion, origBuild, origBuildTime
			}()
			Version, Build, BuildTime = tt.version, tt.build, tt.buildTime

			var buf bytes.Buffer
			printVersion(&buf)
			output := buf.String()

			for _, expected := range tt.expectContain {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain %q, but got:\n%s", expected, output)
				}
			}
			for _, unexpected := range tt.expectMissing {
				if strings.Contains(output, unexpected) {
					t.Errorf("Expected output to omit %q, but got:\n%s", unexpected, output)
				}
			}
		})
	}
}

func TestVersionCommandSkipsConfiguration(t *testing.T) {
	// A broken preset would fail setup; version must not load configuration.
	stdout, _, err := runCLI(t, "version", "--preset", "does-not-exist")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "dainty version ") {
		t.Fatalf("unexpected version output %q", stdout)
	}
}
