// Package hcl provides the HCL implementation of config.Loader. Profiles are
// declared as labelled blocks:
//
//	profile "poisson" {
//	  description = "Newtonian Poisson placeholder"
//	  grid        = 256
//	  steps       = 1000
//	  seed        = env.GRIDBENCH_SEED
//	  replicates  = 3
//	  out         = "${env.HOME}/runs"
//	}
//
// Expressions are evaluated with the process environment available as env
// and a small set of cty standard library functions.
package hcl
