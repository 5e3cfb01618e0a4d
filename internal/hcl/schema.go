package hcl

// fileRoot decodes all top-level blocks of a puzzle file. Unknown blocks
// and attributes are rejected by gohcl.
type fileRoot struct {
	Scans []*scanBlock `hcl:"scan,block"`
	Walks []*walkBlock `hcl:"walk,block"`
}

// scanBlock is a `scan "<name>" { ... }` block.
type scanBlock struct {
	Name    string  `hcl:"name,label"`
	Input   *string `hcl:"input,optional"`
	Grid    *string `hcl:"grid,optional"`
	Pattern string  `hcl:"pattern"`
	Anchor  *string `hcl:"anchor,optional"`
}

// walkBlock is a `walk "<name>" { ... }` block.
type walkBlock struct {
	Name     string  `hcl:"name,label"`
	Input    *string `hcl:"input,optional"`
	Grid     *string `hcl:"grid,optional"`
	Snapshot *string `hcl:"snapshot,optional"`
	MaxSteps *int    `hcl:"max_steps,optional"`
}
