// Package runlet binds command-line arguments to a plain parameters struct
// and runs a single command method.
//
// Parameter fields are declared with struct tags. Usage text is derived from
// the tags, `--name=value` arguments are coerced into the typed fields,
// required parameters are enforced, and `--prompt` asks for whatever was not
// supplied. Once bound, the command method of the runlet is called.
//
// Parameters declared on embedded structs are collected too, and a parameter
// name may be used only once across the whole embedding chain.
package runlet
