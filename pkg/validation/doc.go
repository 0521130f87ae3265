// Package validation checks template models before they reach an engine.
// Values are first decoded into the model type with mapstructure, which
// enforces field types, and then checked against `validate` struct tags with
// go-playground/validator. Field names in issues use the json tag names the
// templates see.
package validation
