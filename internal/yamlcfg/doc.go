// Package yamlcfg loads run profiles from YAML. Two document shapes are
// understood: an equation catalog entry whose parameters carry defaults
// (gridSize, timeSteps, seed, replicates, outDir), and a plain profiles list.
// A file may hold several documents separated by "---".
package yamlcfg
