package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSPIRVWords(t *testing.T) {
	raw := []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}
	words, err := SPIRVWords(raw)
	if err != nil {
		t.Fatalf("SPIRVWords: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("word 0 = %#x, want SPIR-V magic", words[0])
	}
	if words[1] != 0x00010000 {
		t.Errorf("word 1 = %#x", words[1])
	}
}

func TestSPIRVWordsUnaligned(t *testing.T) {
	if _, err := SPIRVWords([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for unaligned byte length")
	}
}

func TestWGSLPairFromFiles(t *testing.T) {
	dir := t.TempDir()
	vertPath := filepath.Join(dir, "vert.wgsl")
	fragPath := filepath.Join(dir, "frag.wgsl")
	if err := os.WriteFile(vertPath, []byte("// vert"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fragPath, []byte("// frag"), 0o644); err != nil {
		t.Fatal(err)
	}

	pair, err := WGSLPairFromFiles(vertPath, fragPath)
	if err != nil {
		t.Fatalf("WGSLPairFromFiles: %v", err)
	}
	if pair.Lang != ShaderWGSL {
		t.Errorf("Lang = %v, want ShaderWGSL", pair.Lang)
	}
	if pair.VertWGSL != "// vert" || pair.FragWGSL != "// frag" {
		t.Errorf("sources not read back: %q %q", pair.VertWGSL, pair.FragWGSL)
	}

	if _, err := WGSLPairFromFiles(filepath.Join(dir, "missing.wgsl"), fragPath); err == nil {
		t.Error("expected error for missing vertex file")
	}
}
