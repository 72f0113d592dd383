package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/ToothlessBrush/maple/internal/cache"
	"github.com/ToothlessBrush/maple/render"
)

// Shader entry point names. WGSL sources use the wgpu convention;
// SPIR-V produced by external compilers uses "main".
const (
	wgslVertexEntry   = "vs_main"
	wgslFragmentEntry = "fs_main"
	spirvEntry        = "main"
)

// gpuShader holds the compiled vertex and fragment modules of one pass.
type gpuShader struct {
	device     hal.Device
	vertModule hal.ShaderModule
	fragModule hal.ShaderModule
	vertEntry  string
	fragEntry  string
}

func (s *gpuShader) Destroy() {
	if s.fragModule != nil {
		if s.fragModule != s.vertModule {
			s.device.DestroyShaderModule(s.fragModule)
		}
		s.fragModule = nil
	}
	if s.vertModule != nil {
		s.device.DestroyShaderModule(s.vertModule)
		s.vertModule = nil
	}
}

// CreateShaderPair compiles a vertex/fragment source pair into shader
// modules. WGSL sources are compiled to SPIR-V through naga before
// module creation; when the pair's vertex and fragment sources are
// identical a single module is shared. SPIR-V pairs are passed through
// as precompiled words.
func (b *Backend) CreateShaderPair(pair render.ShaderPair) (render.GraphicsShader, error) {
	switch pair.Lang {
	case render.ShaderWGSL:
		return b.createWGSLPair(pair)
	case render.ShaderSPIRV:
		return b.createSPIRVPair(pair)
	}
	return nil, fmt.Errorf("create shader pair: unknown shader language %d", pair.Lang)
}

func (b *Backend) createWGSLPair(pair render.ShaderPair) (render.GraphicsShader, error) {
	if pair.VertWGSL == "" || pair.FragWGSL == "" {
		return nil, fmt.Errorf("create shader pair: empty WGSL source")
	}

	vertWords, err := CompileWGSL(pair.VertWGSL)
	if err != nil {
		return nil, fmt.Errorf("compile vertex shader: %w", err)
	}
	vert, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vertex_shader",
		Source: hal.ShaderSource{SPIRV: vertWords},
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex module: %w", err)
	}

	// naga preserves WGSL entry point names, so the compiled SPIR-V
	// still exposes vs_main/fs_main.
	frag := vert
	if pair.FragWGSL != pair.VertWGSL {
		fragWords, err := CompileWGSL(pair.FragWGSL)
		if err != nil {
			b.device.DestroyShaderModule(vert)
			return nil, fmt.Errorf("compile fragment shader: %w", err)
		}
		frag, err = b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  "fragment_shader",
			Source: hal.ShaderSource{SPIRV: fragWords},
		})
		if err != nil {
			b.device.DestroyShaderModule(vert)
			return nil, fmt.Errorf("create fragment module: %w", err)
		}
	}

	return &gpuShader{
		device:     b.device,
		vertModule: vert,
		fragModule: frag,
		vertEntry:  wgslVertexEntry,
		fragEntry:  wgslFragmentEntry,
	}, nil
}

func (b *Backend) createSPIRVPair(pair render.ShaderPair) (render.GraphicsShader, error) {
	if len(pair.VertSPIRV) == 0 || len(pair.FragSPIRV) == 0 {
		return nil, fmt.Errorf("create shader pair: empty SPIR-V words")
	}

	vert, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vertex_shader",
		Source: hal.ShaderSource{SPIRV: pair.VertSPIRV},
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex module: %w", err)
	}
	frag, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fragment_shader",
		Source: hal.ShaderSource{SPIRV: pair.FragSPIRV},
	})
	if err != nil {
		b.device.DestroyShaderModule(vert)
		return nil, fmt.Errorf("create fragment module: %w", err)
	}

	return &gpuShader{
		device:     b.device,
		vertModule: vert,
		fragModule: frag,
		vertEntry:  spirvEntry,
		fragEntry:  spirvEntry,
	}, nil
}

// spirvCache memoizes WGSL compilation keyed by source text. Passes
// often share shader sources; recompiling through naga on every
// registration is the expensive part.
var spirvCache = cache.New[string, []uint32](64)

// CompileWGSL compiles WGSL source to SPIR-V words via naga, memoizing
// results per source. The WGSL shader-pair path goes through here; it
// is exported for ahead-of-time validation of shader source.
func CompileWGSL(source string) ([]uint32, error) {
	return spirvCache.GetOrCreate(source, func() ([]uint32, error) {
		spirvBytes, err := naga.Compile(source)
		if err != nil {
			return nil, fmt.Errorf("compile wgsl: %w", err)
		}
		return render.SPIRVWords(spirvBytes)
	})
}
