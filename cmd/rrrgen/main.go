// Command rrrgen exercises the streaming RRR-set generator end to end
// against a synthetic random graph. Loading a real graph from disk, and
// deciding θ from an outer influence-maximization loop, are both out of
// scope for this repo — this binary exists to drive the generator's
// construct/generate/destroy lifecycle from the command line, not to
// replace either.
package main

import "github.com/luxfi/rrrgen/cmd/rrrgen/cmd"

func main() {
	cmd.Execute()
}
