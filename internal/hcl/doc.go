// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for file discovery, parsing, expression evaluation and the
// translation of `scan` and `walk` blocks into the config model.
package hcl
