package config

import (
	"encoding/json"
	"reflect"
	"strings"
)

type UnknownFieldError struct {
	Field string
	Type  string
}

func (e *UnknownFieldError) Error() string {
	return "unknown field \"" + e.Field + "\" for type " + e.Type
}

type fieldValidator struct {
	fields map[string]struct{}
	typ    string
}

func (f *fieldValidator) Validate(bs []byte) error {
	var m map[string]any

	if err := json.Unmarshal(bs, &m); err != nil {
		return err
	}

	return f.ValidateKeys(m)
}

// ValidateKeys matches case-insensitively, like encoding/json does.
func (f *fieldValidator) ValidateKeys(m map[string]any) error {
	for k := range m {
		if _, ok := f.fields[strings.ToLower(k)]; !ok {
			return &UnknownFieldError{Field: k, Type: f.typ}
		}
	}

	return nil
}

func newFieldValidator(example any) *fieldValidator {
	t := reflect.TypeOf(example)
	fields := make(map[string]struct{}, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name

		tag := f.Tag.Get("json")
		parts := strings.SplitN(tag, ",", 2)

		if parts[0] == "-" {
			continue
		}

		if parts[0] != "" {
			name = parts[0]
		}

		fields[strings.ToLower(name)] = struct{}{}
	}

	return &fieldValidator{fields: fields, typ: t.Name()}
}
