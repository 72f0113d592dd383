package render

import (
	"fmt"
	"os"
)

// ShaderLang identifies a shader source language.
type ShaderLang int

const (
	// ShaderWGSL is WebGPU Shading Language source text.
	ShaderWGSL ShaderLang = iota

	// ShaderSPIRV is precompiled SPIR-V, little-endian 32-bit words.
	ShaderSPIRV
)

// ShaderPair carries vertex and fragment shader sources for one pass.
// Set either the WGSL text fields or the SPIR-V word fields, matching
// Lang.
type ShaderPair struct {
	Lang ShaderLang

	// VertWGSL and FragWGSL hold source when Lang is ShaderWGSL.
	VertWGSL string
	FragWGSL string

	// VertSPIRV and FragSPIRV hold words when Lang is ShaderSPIRV.
	VertSPIRV []uint32
	FragSPIRV []uint32
}

// WGSLPair builds a ShaderPair from WGSL vertex and fragment source.
func WGSLPair(vert, frag string) ShaderPair {
	return ShaderPair{Lang: ShaderWGSL, VertWGSL: vert, FragWGSL: frag}
}

// SPIRVPair builds a ShaderPair from precompiled SPIR-V words.
func SPIRVPair(vert, frag []uint32) ShaderPair {
	return ShaderPair{Lang: ShaderSPIRV, VertSPIRV: vert, FragSPIRV: frag}
}

// WGSLPairFromFiles reads WGSL vertex and fragment source from disk.
func WGSLPairFromFiles(vertPath, fragPath string) (ShaderPair, error) {
	vert, err := os.ReadFile(vertPath)
	if err != nil {
		return ShaderPair{}, fmt.Errorf("read vertex shader %s: %w", vertPath, err)
	}
	frag, err := os.ReadFile(fragPath)
	if err != nil {
		return ShaderPair{}, fmt.Errorf("read fragment shader %s: %w", fragPath, err)
	}
	return WGSLPair(string(vert), string(frag)), nil
}

// SPIRVWords reassembles raw little-endian SPIR-V bytes into 32-bit
// words as shader module creation expects.
func SPIRVWords(raw []byte) ([]uint32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("spir-v byte length %d is not word aligned", len(raw))
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = uint32(raw[i*4]) |
			uint32(raw[i*4+1])<<8 |
			uint32(raw[i*4+2])<<16 |
			uint32(raw[i*4+3])<<24
	}
	return words, nil
}

// GraphicsShader is an opaque compiled vertex+fragment module pair.
type GraphicsShader interface {
	// Destroy releases both modules.
	Destroy()
}
