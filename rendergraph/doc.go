// Package rendergraph schedules render passes.
//
// A [RenderGraph] owns a registry of named [RenderNode] implementations,
// a set of directed producer→consumer edges, and a [Context] through
// which one pass publishes GPU resources by name for a later pass to
// consume. Each frame the graph derives a topological order over the
// current node/edge set (Kahn's algorithm) and drives every node's Draw
// in that order, single-threaded and frame-sequential.
//
// Edges are the only ordering mechanism: the graph performs no resource
// usage analysis, so a pass reading a shared resource must declare an
// edge from its producer or risk observing an absent or stale value.
// Cycle detection and unknown-edge-endpoint validation happen at
// ordering time and are structural errors, fatal at startup.
package rendergraph
