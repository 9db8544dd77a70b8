// Package validation provides input validation for piper configuration and
// blueprints.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used for settings records loaded from files; programmatic validation is
// used for blueprint shape checks where fields are computed.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    BatchSize int `mapstructure:"batch_size" validate:"gte=1"`
//	}
//	err := validation.ValidateStruct(s)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Check(len(children) > 0, "children", "container requires at least one child")
//	err := v.Error()
package validation
