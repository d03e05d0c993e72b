package yamlcfg

import "gopkg.in/yaml.v3"

// document is the union of the supported YAML shapes.
type document struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Domain      string         `yaml:"domain"`
	Parameters  []parameter    `yaml:"parameters"`
	Profiles    []profileEntry `yaml:"profiles"`
	// Equations marks a catalog index file. It carries no parameters.
	Equations []string `yaml:"equations"`
}

type parameter struct {
	Key     string    `yaml:"key"`
	Label   string    `yaml:"label"`
	Type    string    `yaml:"type"`
	Default yaml.Node `yaml:"default"`
}

type profileEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Grid        int    `yaml:"grid"`
	Steps       int    `yaml:"steps"`
	Seed        *int64 `yaml:"seed"`
	Replicates  int    `yaml:"replicates"`
	Out         string `yaml:"out"`
}

// Catalog parameter keys.
const (
	keyGridSize   = "gridSize"
	keyTimeSteps  = "timeSteps"
	keySeed       = "seed"
	keyReplicates = "replicates"
	keyOutDir     = "outDir"
)
