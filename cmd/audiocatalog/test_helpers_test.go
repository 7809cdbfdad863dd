package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	musicDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "config.toml")
	content := "[scan]\nconcurrency = 2\n\n[logging]\nlevel = \"error\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	musicDir := filepath.Join(base, "music")
	if err := os.MkdirAll(musicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}
	return &cliTestEnv{configPath: configPath, musicDir: musicDir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, root, rel string, data []byte) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// createFLAC builds a minimal FLAC stream holding one Vorbis comment block.
func createFLAC(comments ...string) []byte {
	body := &bytes.Buffer{}
	vendor := "test"
	binary.Write(body, binary.LittleEndian, uint32(len(vendor)))
	body.WriteString(vendor)
	binary.Write(body, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(body, binary.LittleEndian, uint32(len(c)))
		body.WriteString(c)
	}

	buf := &bytes.Buffer{}
	buf.WriteString("fLaC")
	n := body.Len()
	buf.Write([]byte{0x80 | 4, byte(n >> 16), byte(n >> 8), byte(n)})
	buf.Write(body.Bytes())
	return buf.Bytes()
}

func atom(typ string, children ...[]byte) []byte {
	size := 8
	for _, c := range children {
		size += len(c)
	}
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(size))
	buf.WriteString(typ)
	for _, c := range children {
		buf.Write(c)
	}
	return buf.Bytes()
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
