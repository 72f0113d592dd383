// Package maple provides a render graph execution engine for Go.
//
// # Overview
//
// maple schedules named render passes over a directed acyclic graph.
// Each pass is a RenderNode with a three-phase lifecycle: Setup runs
// once at registration and declares the pass's pipeline, Draw runs once
// per frame in an order derived from the declared edges, and Resize is
// forwarded to every pass when the surface changes.
//
// # Quick Start
//
//	import (
//	    "github.com/ToothlessBrush/maple"
//	    _ "github.com/ToothlessBrush/maple/backend/wgpu"
//	)
//
//	r, err := maple.New(maple.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	g := r.Graph().
//	    AddNode("main pass", mainPass).
//	    AddNode("composite", compositePass).
//	    AddEdge("main pass", "composite")
//	if err := g.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
//	for running {
//	    if err := r.BeginDraw(world); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Passes exchange intermediate results through the graph's shared
// resource store; an edge between producer and consumer is what
// guarantees the consumer sees the producer's output for the current
// frame.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Renderer, GraphBuilder, Config
//   - rendergraph: node registry, edge scheduling, shared resources
//   - render: backend interface, resource handles, pass recording
//   - backend: registry; backend/wgpu: the GPU implementation
package maple
