// Package engine defines the engine-agnostic contract used to compile a
// template source into a rendering function. Concrete adapters live in the
// django (pongo2) and jinja (gonja) subpackages and register themselves with
// the package registry so callers can select one by kind.
package engine
