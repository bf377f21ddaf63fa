package core

import "strconv"

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeString denotes free-form parameters such as cell lists.
	ParamTypeString ParamType = "string"
	// ParamTypeDuration denotes time intervals.
	ParamTypeDuration ParamType = "duration"
)

// Parameter describes a single configuration value of a running game.
type Parameter struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        ParamType `json:"type"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string      `json:"name"`
	Params []Parameter `json:"params"`
}

// ParameterSnapshot captures the effective configuration.
type ParameterSnapshot struct {
	Groups []ParameterGroup `json:"groups"`
}

// Lookup returns the parameter with the given key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, group := range s.Groups {
		for _, p := range group.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// IntParam builds an integer parameter.
func IntParam(key, label string, value int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(value)}
}

// Int64Param builds an integer parameter from an int64.
func Int64Param(key, label string, value int64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

// StringParam builds a free-form parameter.
func StringParam(key, label, value string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeString, Value: value}
}
