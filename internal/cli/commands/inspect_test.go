package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/lmread/pkg/packet"
)

func runInspectCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewInspectCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRunInspect_ValidPacket(t *testing.T) {
	ExitCode = 0
	path := writeFile(t, t.TempDir(), "10.bin", packetBytes("hello"))

	out, err := runInspectCommand(t, "-v", path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	for _, want := range []string{
		"[PASS] Header",
		"pid=0x0000000000000010",
		"severity:     Info",
		"[PASS] Chunk 0 @0x0018 TextLog (5 bytes)",
		"'hello'",
		"body: 68 65 6c 6c 6f",
		"Summary: 3 passed, 0 errors",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestRunInspect_InvalidChunkKind(t *testing.T) {
	ExitCode = 0
	raw := packetBytes("ok")
	raw = append(raw, 200, 0)
	// Grow the declared payload to cover the bad chunk.
	raw[0x14] += 2
	path := writeFile(t, t.TempDir(), "1.bin", raw)

	out, err := runInspectCommand(t, path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "[PASS] Chunk 0") {
		t.Errorf("Expected the first chunk to be listed:\n%s", out)
	}
	if !strings.Contains(out, "[FAIL] Structure") || !strings.Contains(out, "InvalidChunkKind") {
		t.Errorf("Expected structure failure:\n%s", out)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}

func TestRunInspect_MalformedChunk(t *testing.T) {
	ExitCode = 0
	h := packet.Header{Severity: packet.SeverityWarn, PayloadSize: 4}
	raw := append(h.AppendBinary(nil), byte(packet.KindLineNumber), 2, 1, 0)
	path := writeFile(t, t.TempDir(), "1.bin", raw)

	out, err := runInspectCommand(t, path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "[FAIL] Chunk 0 @0x0018 LineNumber (2 bytes)") {
		t.Errorf("Expected chunk failure:\n%s", out)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}

func TestRunInspect_TruncatedHeader(t *testing.T) {
	ExitCode = 0
	path := writeFile(t, t.TempDir(), "1.bin", []byte{1, 2, 3})

	out, err := runInspectCommand(t, path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "[FAIL] Header") || !strings.Contains(out, "TruncatedHeader") {
		t.Errorf("Expected header failure:\n%s", out)
	}
	if strings.Contains(out, "Chunk") {
		t.Error("No chunks expected after a header failure")
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}

func TestRunInspect_MissingFile(t *testing.T) {
	_, err := runInspectCommand(t, filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
