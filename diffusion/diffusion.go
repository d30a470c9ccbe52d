// Package diffusion implements the host-side Linear-Threshold and
// Independent-Cascade reverse walks (spec §4.1, §4.2). The batched device
// variants live in gpudev; the two are kept apart because the device
// versions' memory layout, truncation policy and overflow fallback are a
// scheduler-level concern (spec §1), while these are the plain recursive
// definitions every fallback ultimately bottoms out in.
package diffusion

import (
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/rngstream"
	"github.com/luxfi/rrrgen/rrrerr"
	"github.com/luxfi/rrrgen/rrrset"
)

// Model selects the diffusion rule a generator instance uses. The two
// models never mix within one generator (spec §6).
type Model uint8

const (
	LT Model = iota
	IC
)

func (m Model) String() string {
	if m == IC {
		return "IC"
	}
	return "LT"
}

// WalkHostLT runs one Linear-Threshold reverse walk from root, returning
// the visited set sorted ascending. Per spec §4.1: starting at cur=root,
// draw a threshold in (0,1], scan cur's out-edges in CSR order
// subtracting each edge weight; the first neighbor that drives the
// threshold <=0 is the candidate. If the candidate is already visited (a
// self-loop included), the walk stops; otherwise it continues from there.
// A vertex with no out-edges, or no neighbor ever reducing the threshold
// to <=0, also stops the walk.
func WalkHostLT(g *graph.Graph, root int32, s *rngstream.Stream) (rrrset.Set, error) {
	b := rrrset.NewBuilder()
	b.Add(root)

	cur := root
	for {
		nbrs, weights := g.Neighbors(cur)
		if len(nbrs) == 0 {
			break
		}

		threshold := s.UniformPos01()
		candidate := int32(-1)
		for i, dst := range nbrs {
			threshold -= weights[i]
			if threshold <= 0 {
				candidate = dst
				break
			}
		}
		if candidate < 0 {
			break
		}
		if b.Has(candidate) {
			break
		}
		b.Add(candidate)
		if b.Len() > rrrset.MaxSetSize {
			return nil, rrrerr.Fatal(rrrerr.CodeSetOverflow, "LT walk exceeded MaxSetSize")
		}
		cur = candidate
	}

	return b.Finish(), nil
}

// WalkHostIC runs one Independent-Cascade reverse walk from root. Per
// spec §4.2: each out-edge of the current frontier is kept independently
// iff a uniform draw is <= the edge weight; the walk is a frontier BFS
// over kept edges, and the returned set is every vertex reached,
// including the root.
func WalkHostIC(g *graph.Graph, root int32, s *rngstream.Stream) (rrrset.Set, error) {
	b := rrrset.NewBuilder()
	b.Add(root)

	frontier := []int32{root}
	for len(frontier) > 0 {
		var next []int32
		for _, cur := range frontier {
			nbrs, weights := g.Neighbors(cur)
			for i, dst := range nbrs {
				if b.Has(dst) {
					continue
				}
				if s.Uniform01() <= weights[i] {
					b.Add(dst)
					if b.Len() > rrrset.MaxSetSize {
						return nil, rrrerr.Fatal(rrrerr.CodeSetOverflow, "IC walk exceeded MaxSetSize")
					}
					next = append(next, dst)
				}
			}
		}
		frontier = next
	}

	return b.Finish(), nil
}

// Walk dispatches to WalkHostLT or WalkHostIC according to model.
func Walk(model Model, g *graph.Graph, root int32, s *rngstream.Stream) (rrrset.Set, error) {
	if model == IC {
		return WalkHostIC(g, root, s)
	}
	return WalkHostLT(g, root, s)
}
