package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-world/internal/testutil"
	"github.com/cwbudde/algo-world/vocoder/container"
	"github.com/cwbudde/algo-world/vocoder/pcm"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("worldtool %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s := pcm.Stream{Format: pcm.Mono16(16000), Data: pcm.EncodeSamples(testutil.Vowel(150, 16000, 4000))}
	if err := container.WriteWAV(f, s); err != nil {
		t.Fatal(err)
	}
	return path
}

func readOutput(t *testing.T, path string) pcm.Stream {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, err := container.ReadWAV(f)
	if err != nil {
		t.Fatalf("ReadWAV(%s): %v", path, err)
	}
	return s
}

func TestAnalyzeSynthesize(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	prefix := filepath.Join(dir, "utt")

	run(t, "analyze", in, "-o", prefix)
	for _, ext := range []string{".f0", ".sp", ".ap"} {
		if _, err := os.Stat(prefix + ext); err != nil {
			t.Fatalf("missing %s: %v", ext, err)
		}
	}

	out := filepath.Join(dir, "out.wav")
	run(t, "synthesize", prefix, "-o", out)
	s := readOutput(t, out)
	// 51 frames at 5 ms, 16 kHz.
	if s.Format.SampleRate != 16000 || s.Samples() != 4001 {
		t.Fatalf("output %v with %d samples", s.Format, s.Samples())
	}
}

func TestBundleAndResynth(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	bundle := filepath.Join(dir, "utt.msgpack")

	run(t, "analyze", "--bundle", in, "-o", bundle)
	analyzeBundle = false
	out := filepath.Join(dir, "bundle.wav")
	run(t, "synthesize", bundle, "-o", out)
	if s := readOutput(t, out); s.Samples() == 0 {
		t.Fatal("empty output")
	}

	cfg := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(cfg, []byte("frame_period: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	re := filepath.Join(dir, "re.wav")
	run(t, "--config", cfg, "resynth", in, "-o", re)
	cfgFile = ""
	// 26 frames at 10 ms.
	if s := readOutput(t, re); s.Samples() != 4001 {
		t.Fatalf("resynth samples = %d", s.Samples())
	}
}

func TestInfo(t *testing.T) {
	out := run(t, "info")
	for _, want := range []string{"engines: ", "world", "frame_period: 5", "16000", "cpu: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("info output missing %q:\n%s", want, out)
		}
	}
}
