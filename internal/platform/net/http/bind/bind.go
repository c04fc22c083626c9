// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "bulkdate/internal/platform/errors"

	json "github.com/goccy/go-json"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps request bodies; larger bodies fail to decode
const MaxBody = 1 << 20

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

func setup() {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		valid = validator.New(validator.WithRequiredStructEnabled())
		valid.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(valid, trans)
		short(valid, "max", "{0} must be at most {1}")
		short(valid, "oneof", "{0} must be one of [{1}]")
	})
}

func short(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON decodes one JSON object into T, rejecting unknown fields and trailing data, then
// validates it. Decode failures are JSON errors; rule failures are Validation errors naming the field.
// GET and DELETE tolerate an empty body
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	setup()
	defer r.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBody+1))
	switch {
	case err != nil:
		return dst, perr.Wrap(err, perr.ErrorCodeJSON, "cannot read body")
	case len(raw) > MaxBody:
		return dst, perr.JSONErrf("body exceeds %d bytes", MaxBody)
	case len(bytes.TrimSpace(raw)) == 0:
		if r.Method == http.MethodGet || r.Method == http.MethodDelete {
			return dst, nil
		}
		return dst, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}

	if err := valid.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return dst, perr.Wrap(err, perr.ErrorCodeJSON, "cannot validate body")
		}
		fe := verrs[0]
		return dst, perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(trans)), fe.Field())
	}
	return dst, nil
}
