package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot decodes the top level of a profile file. Unknown blocks and
// attributes are left in Remain so unrelated content does not break loading.
type fileRoot struct {
	Profiles []*profileBlock `hcl:"profile,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

// profileBlock keeps numeric fields as cty values so they may come from
// environment strings or be explicitly null.
type profileBlock struct {
	Name        string    `hcl:"name,label"`
	Description string    `hcl:"description,optional"`
	Grid        cty.Value `hcl:"grid,optional"`
	Steps       cty.Value `hcl:"steps,optional"`
	Seed        cty.Value `hcl:"seed,optional"`
	Replicates  cty.Value `hcl:"replicates,optional"`
	Out         string    `hcl:"out,optional"`
}
