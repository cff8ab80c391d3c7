package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rotisserie/eris"
)

// numberField binds a huh text input to a float or int field. The text is
// parsed back into the target only when the form completes.
type numberField struct {
	title string
	desc  string
	f     *float64
	i     *int
	text  string
}

func floatField(title, desc string, target *float64) *numberField {
	return &numberField{title: title, desc: desc, f: target}
}

func intField(title, desc string, target *int) *numberField {
	return &numberField{title: title, desc: desc, i: target}
}

func (n *numberField) field() huh.Field {
	switch {
	case n.f != nil:
		n.text = strconv.FormatFloat(*n.f, 'f', -1, 64)
	case n.i != nil:
		n.text = strconv.Itoa(*n.i)
	}

	validate := validateNumber
	if n.i != nil {
		validate = validateWhole
	}

	return huh.NewInput().
		Title(n.title).
		Description(n.desc).
		Value(&n.text).
		Validate(validate)
}

func (n *numberField) apply() error {
	v, err := parseNumber(n.text)
	if err != nil {
		return eris.Wrapf(err, "%s", n.title)
	}
	switch {
	case n.f != nil:
		*n.f = v
	case n.i != nil:
		*n.i = int(v)
	}
	return nil
}

// group builds a form group from number fields.
func group(title string, fields ...*numberField) *huh.Group {
	hf := make([]huh.Field, len(fields))
	for i, f := range fields {
		hf[i] = f.field()
	}
	return huh.NewGroup(hf...).Title(title)
}

func applyAll(fields []*numberField) error {
	for _, f := range fields {
		if err := f.apply(); err != nil {
			return err
		}
	}
	return nil
}

// parseNumber accepts plain numbers plus the "$", "," and "%" people type
// into money and rate fields.
func parseNumber(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(s)
	if clean == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, eris.Errorf("%q is not a number", s)
	}
	return v, nil
}

func validateNumber(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return eris.New("must not be negative")
	}
	return nil
}

func validateWhole(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v < 1 || v != float64(int(v)) {
		return eris.New("must be a whole number of at least 1")
	}
	return nil
}
