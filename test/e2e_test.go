package test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/ccollicutt/lmread/internal/cli"
	"github.com/ccollicutt/lmread/pkg/config"
	"github.com/ccollicutt/lmread/pkg/discovery"
	"github.com/ccollicutt/lmread/pkg/output"
	"github.com/ccollicutt/lmread/pkg/reader"
)

var (
	projectRoot string
	rootOnce    sync.Once
)

// testdata returns the absolute path of a file under test/testdata.
func testdata(t *testing.T, elem ...string) string {
	t.Helper()
	rootOnce.Do(func() {
		// Get the directory containing this test file, then go up one level
		_, filename, _, _ := runtime.Caller(0)
		projectRoot = filepath.Dir(filepath.Dir(filename))
	})
	path := filepath.Join(append([]string{projectRoot, "test", "testdata"}, elem...)...)
	requireFile(t, path)
	return path
}

// requireFile fails the test if the required test file doesn't exist.
// We never skip tests - missing test data is a test failure.
func requireFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Required test file not found: %s", path)
	}
}

const wantPackets = `LogPacket {
  FileName: 'src/main.rs',
  FunctionName: 'main',
  LineNumber: '12',
  ProcessName: 'sample.nro',
  ThreadName: 'MainThread',
  ModuleName: 'sample',
  TextLog: 'starting up',
  UserSystemClock: '1700000000',
}

LogPacket {
  SessionBegin: '<unknown-data>',
  ThreadName: 'Worker',
  TextLog: 'worker started',
}

LogPacket {
  FileName: 'src/net.rs',
  FunctionName: 'connect',
  LineNumber: '88',
  TextLog: 'retrying connection',
  LogPacketDropCount: '3',
}

`

// runPipeline decodes every packet under dirs with cfg and returns the output.
func runPipeline(t *testing.T, cfg *config.Config, dirs ...string) (string, output.Summary) {
	t.Helper()
	ctx := context.Background()

	entries, err := discovery.Discover(ctx, dirs, discovery.WithExtensions(cfg.Extensions))
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}

	formatter, err := output.New(cfg.Output, output.FormatOptions{ShowHeader: cfg.ShowHeader})
	if err != nil {
		t.Fatalf("Failed to create formatter: %v", err)
	}

	var buf bytes.Buffer
	r := reader.New(formatter,
		reader.WithMismatchPolicy(cfg.OnMismatch),
		reader.WithMaxFileSize(cfg.EffectiveMaxFileSize()),
	)
	summary, err := r.Run(ctx, entries, &buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return buf.String(), summary
}

// TestE2E_Packets decodes the fixture packets in file name order.
func TestE2E_Packets(t *testing.T) {
	out, summary := runPipeline(t, config.DefaultConfig(), testdata(t, "packets"))

	if out != wantPackets {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", out, wantPackets)
	}
	if summary.Files != 3 || summary.Decoded != 3 || summary.HasFailures() {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}

// TestE2E_Idempotent checks that two runs over the same tree are identical.
func TestE2E_Idempotent(t *testing.T) {
	dir := testdata(t, "packets")
	first, _ := runPipeline(t, config.DefaultConfig(), dir)
	second, _ := runPipeline(t, config.DefaultConfig(), dir)
	if first != second {
		t.Error("Two runs over the same directory produced different output")
	}
}

// TestE2E_Broken reports every damaged packet and keeps going.
func TestE2E_Broken(t *testing.T) {
	dir := testdata(t, "broken")
	out, summary := runPipeline(t, config.DefaultConfig(), dir)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"Error with " + filepath.Join(dir, "0x0000000000000001.bin") + ": TruncatedHeader",
		"Error with " + filepath.Join(dir, "0x0000000000000002.bin") + ": InvalidChunkKind",
		"LogPacket {",
		"  TextLog: 'abc',",
		"}",
		"",
		"Error with " + filepath.Join(dir, "0x0000000000000003.bin") + ": PayloadSizeMismatch",
		"Error with " + filepath.Join(dir, "0x0000000000000004.bin") + ": TruncatedChunkBody",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(want), len(lines), out)
	}
	for i := range want {
		if !strings.HasPrefix(lines[i], want[i]) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want[i])
		}
	}

	if summary.Files != 4 || summary.Failed != 4 || summary.Partial != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}

// TestE2E_YAMLConfig runs with the YAML fixture config.
func TestE2E_YAMLConfig(t *testing.T) {
	cfg, err := config.Load(context.Background(), testdata(t, "configs", "lmread.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	out, _ := runPipeline(t, cfg, testdata(t, "packets"))
	if !strings.Contains(out, "  Header: pid=0x0100000000001234 tid=0x0000000000000042 severity=Info verbosity=0 flags=Head|Tail|LittleEndian payload=") {
		t.Errorf("Expected header line in output:\n%s", out)
	}
}

// TestE2E_TOMLConfig runs with the TOML fixture config over both trees.
func TestE2E_TOMLConfig(t *testing.T) {
	cfg, err := config.Load(context.Background(), testdata(t, "configs", "lmread.toml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	out, summary := runPipeline(t, cfg, testdata(t, "broken"))

	var doc struct {
		Files []struct {
			Path    string `json:"path"`
			Status  string `json:"status"`
			Reason  string `json:"reason"`
			Entries []struct {
				Kind  string `json:"kind"`
				Value string `json:"value"`
			} `json:"entries"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Invalid JSON output: %v\n%s", err, out)
	}
	if len(doc.Files) != 4 {
		t.Fatalf("Expected 4 files, got %d", len(doc.Files))
	}

	// The discard policy drops the chunks read before the mismatch.
	mismatch := doc.Files[2]
	if mismatch.Reason != "PayloadSizeMismatch" || len(mismatch.Entries) != 0 {
		t.Errorf("Unexpected mismatch record: %+v", mismatch)
	}
	if summary.Partial != 0 {
		t.Errorf("Expected no partial results with discard policy, got %d", summary.Partial)
	}
}

// TestE2E_CLI drives the whole command line over both fixture trees.
func TestE2E_CLI(t *testing.T) {
	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--ext", ".bin", testdata(t, "packets"), testdata(t, "broken")})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("CLI failed: %v", err)
	}

	// Keys interleave across the two directories.
	got := out.String()
	first := strings.Index(got, "starting up")
	broken := strings.Index(got, "0x0000000000000001.bin: TruncatedHeader")
	last := strings.Index(got, "retrying connection")
	if first < 0 || broken < 0 || last < 0 || !(broken < last) {
		t.Errorf("Unexpected ordering:\n%s", got)
	}
}
