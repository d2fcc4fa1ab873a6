// Package roundtripreport collects the outcome of comparing several roots of two descriptor documents.
package roundtripreport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptorcompare"
)

// RootMismatch is the first mismatch found while comparing the root named Root.
type RootMismatch struct {
	Root     string
	Mismatch *descriptorcompare.Mismatch
}

type Report struct {
	InternalErrors []error
	Mismatches     []RootMismatch
	// Passed lists the roots compared without a mismatch.
	Passed []string
}

func (r Report) Error() string {
	out := ""
	for i := range r.InternalErrors {
		if i != 0 {
			out += "\n"
		}
		out += fmt.Sprintf("internal: %s", r.InternalErrors[i].Error())
	}
	if len(out) > 0 && len(r.Mismatches) > 0 {
		out += "\n"
	}
	for i := range r.Mismatches {
		if i != 0 {
			out += "\n"
		}
		mismatch := r.Mismatches[i].Mismatch
		out += fmt.Sprintf("mismatch: %s, kind: %s, path: %s, left: %s, right: %s",
			r.Mismatches[i].Root, mismatch.Kind, mismatch.Path.DotDelimitedString(), mismatch.Left, mismatch.Right)
	}
	return out
}

func (r *Report) HasErrors() bool {
	return len(r.InternalErrors) > 0 || len(r.Mismatches) > 0
}

func (r *Report) AddInternalError(err error) {
	r.InternalErrors = append(r.InternalErrors, err)
}

func (r *Report) AddMismatch(root string, mismatch *descriptorcompare.Mismatch) {
	r.Mismatches = append(r.Mismatches, RootMismatch{Root: root, Mismatch: mismatch})
}

// AddResult records the error returned by comparing root. Mismatches and other errors are kept apart.
func (r *Report) AddResult(root string, err error) {
	if err == nil {
		r.Passed = append(r.Passed, root)
		return
	}
	if mismatch, ok := descriptorcompare.AsMismatch(err); ok {
		r.AddMismatch(root, mismatch)
		return
	}
	r.AddInternalError(fmt.Errorf("%s: %w", root, err))
}

// MarshalJSON renders the report as
//
//	{"ok":false,"passed":["empty"],"mismatches":[{"root":"test","kind":"NAME_MISMATCH",...}],"internalErrors":[]}
func (r Report) MarshalJSON() ([]byte, error) {
	out := []byte(`{"ok":true,"passed":[],"mismatches":[],"internalErrors":[]}`)
	var err error
	if out, err = sjson.SetBytes(out, "ok", !r.HasErrors()); err != nil {
		return nil, err
	}
	for i := range r.Passed {
		if out, err = sjson.SetBytes(out, "passed.-1", r.Passed[i]); err != nil {
			return nil, err
		}
	}
	for i := range r.Mismatches {
		if out, err = r.Mismatches[i].appendJSON(out, "mismatches."+strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	for i := range r.InternalErrors {
		if out, err = sjson.SetBytes(out, "internalErrors.-1", r.InternalErrors[i].Error()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m RootMismatch) appendJSON(out []byte, prefix string) ([]byte, error) {
	path, err := json.Marshal(m.Mismatch.Path)
	if err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, prefix+".path", path); err != nil {
		return nil, err
	}
	fields := []struct {
		key   string
		value string
	}{
		{"root", m.Root},
		{"kind", string(m.Mismatch.Kind)},
		{"at", m.Mismatch.Path.DotDelimitedString()},
		{"leftKind", m.Mismatch.LeftKind.String()},
		{"rightKind", m.Mismatch.RightKind.String()},
		{"property", m.Mismatch.Property},
		{"left", m.Mismatch.Left},
		{"right", m.Mismatch.Right},
	}
	for _, field := range fields {
		if out, err = sjson.SetBytes(out, prefix+"."+field.key, field.value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type FormatMismatchMessage func(report *Report) string

// MismatchMessage formats the report wrapped in err.
func MismatchMessage(err error, formatFunction FormatMismatchMessage) (message string, ok bool) {
	var report Report
	if errors.As(err, &report) {
		msg := formatFunction(&report)
		return msg, true
	}
	return "", false
}

func UnwrappedErrorMessage(err error) string {
	for result := err; result != nil; result = errors.Unwrap(result) {
		err = result
	}
	return err.Error()
}
