package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"topoconf/internal/codec"
	"topoconf/internal/domain"
)

type recordingReplacer struct {
	calls   int
	action  domain.RevisionAction
	applied *domain.TopologyRecord
}

func (r *recordingReplacer) Replace(_ context.Context, action domain.RevisionAction, record *domain.TopologyRecord) {
	r.calls++
	r.action = action
	r.applied = record
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		upfs    int
		dns     string
	}{
		{"json", "seed.json", `{"numUPFs":2,"dnsName":"Edge"}`, 2, "Edge"},
		{"yaml", "seed.yaml", "numUPFs: 5\nnumGNBs: 1\n", 5, domain.DefaultDNSName},
		{"yml", "seed.yml", "numUPFs: 1\nlinks:\n  - nodeA: upf0\n    nodeB: dns\n", 1, domain.DefaultDNSName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := LoadFile(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if record.UPFCount != tt.upfs {
				t.Errorf("UPFCount = %d, want %d", record.UPFCount, tt.upfs)
			}
			if record.DNSName != tt.dns {
				t.Errorf("DNSName = %q, want %q", record.DNSName, tt.dns)
			}
			if record.GNBAssignments == nil {
				t.Error("GNBAssignments should be normalized to an empty map")
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(writeFile(t, "seed.txt", "numUPFs: 1")); !errors.Is(err, codec.ErrUnknownFormat) {
		t.Errorf("LoadFile(.txt) error = %v, want ErrUnknownFormat", err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}

	if _, err := LoadFile(writeFile(t, "empty.yaml", "")); !errors.Is(err, codec.ErrEmptyDocument) {
		t.Errorf("LoadFile(empty) error = %v, want ErrEmptyDocument", err)
	}
}

func TestApply(t *testing.T) {
	r := &recordingReplacer{}

	record, err := Apply(context.Background(), r, writeFile(t, "seed.json", `{"numUPFs":3}`))
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if r.calls != 1 || r.action != domain.RevisionSeed || r.applied != record {
		t.Errorf("Replace called %d times with %s", r.calls, r.action)
	}

	if _, err := Apply(context.Background(), r, writeFile(t, "bad.json", `{`)); err == nil {
		t.Error("Apply() should fail for malformed JSON")
	}
	if r.calls != 1 {
		t.Errorf("Replace called on failure, calls = %d", r.calls)
	}
}
