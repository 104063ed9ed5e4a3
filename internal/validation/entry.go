// Package validation checks untrusted request input and turns it into
// normalized values for the service layer.
//
// Every function returns either a clean value or an apperr BadRequest whose
// message names the first violated constraint, in field declaration order.
// Text fields are trimmed and NFC-normalized the same way on every path, so a
// body accepted on create is accepted unchanged on update.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
	"github.com/jewelnotes/jewelnotes-api/internal/domain"
)

// MaxBodyRunes caps the length of an entry body.
const MaxBodyRunes = 10000

// maxSafeID is the largest integer a JSON number can carry without loss.
const maxSafeID = 1<<53 - 1

var bodyRules = "required,max=" + strconv.Itoa(MaxBodyRunes)

// patchField describes one field recognized by a partial update.
type patchField struct {
	name  string
	rules string
}

// patchFields lists recognized partial-update fields in declaration order.
var patchFields = []patchField{
	{name: "body", rules: bodyRules},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseID coerces a path identifier to a positive integer. Surrounding spaces
// are ignored. Numeric notation such as "12.0" or "1e3" is accepted, as are
// unsigned hex, octal and binary literals ("0x10", "0o20", "0b10000"), as long
// as the value is an integer in [1, 2^53-1]. Everything else fails with
// "Invalid id".
func ParseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, apperr.BadRequest("Invalid id")
	}
	if base := radixBase(s); base != 0 {
		u, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil || u < 1 || u > maxSafeID {
			return 0, apperr.BadRequest("Invalid id")
		}
		return int64(u), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) ||
		f != math.Trunc(f) || f < 1 || f > maxSafeID {
		return 0, apperr.BadRequest("Invalid id")
	}
	return int64(f), nil
}

// radixBase returns the base named by a 0x, 0o or 0b prefix, or 0.
func radixBase(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// EntryCreate validates the payload of a create request. Unknown fields are
// ignored.
func EntryCreate(raw []byte) (domain.EntryInput, error) {
	return entryInput(raw)
}

// EntryUpdateFull validates the payload of a full replacement. It applies the
// same rules as EntryCreate: a full update needs a complete representation.
func EntryUpdateFull(raw []byte) (domain.EntryInput, error) {
	return entryInput(raw)
}

// EntryUpdatePartial validates the payload of a partial update. Each
// recognized field is optional but must be valid when present. An empty
// object passes; rejecting it is a service-level rule. Unrecognized keys are
// passed through unchanged.
func EntryUpdatePartial(raw []byte) (domain.EntryPatch, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	patch := make(domain.EntryPatch, len(obj))
	known := make(map[string]struct{}, len(patchFields))
	for _, f := range patchFields {
		known[f.name] = struct{}{}
		v, present, err := stringField(obj, f.name)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		v = normalizeText(v)
		if err := validate.Var(v, f.rules); err != nil {
			return nil, firstViolation(err, f.name)
		}
		patch[f.name] = v
	}
	for k, v := range obj {
		if _, ok := known[k]; !ok {
			patch[k] = v
		}
	}
	return patch, nil
}

func entryInput(raw []byte) (domain.EntryInput, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return domain.EntryInput{}, err
	}
	body, _, err := stringField(obj, "body")
	if err != nil {
		return domain.EntryInput{}, err
	}

	body = normalizeText(body)
	if err := validate.Var(body, bodyRules); err != nil {
		return domain.EntryInput{}, firstViolation(err, "body")
	}
	return domain.EntryInput{Body: body}, nil
}

// decodeObject parses raw as a JSON object. An empty payload is treated as
// an empty object.
func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	if !json.Valid(raw) {
		return nil, apperr.BadRequest("invalid JSON body")
	}
	if raw[0] != '{' {
		return nil, apperr.BadRequest("request body must be a JSON object")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, apperr.BadRequest("invalid JSON body")
	}
	return obj, nil
}

// stringField extracts a string member. A present member that is not a JSON
// string (including null) is a type violation.
func stringField(obj map[string]json.RawMessage, name string) (string, bool, error) {
	rv, ok := obj[name]
	if !ok {
		return "", false, nil
	}
	var s string
	if bytes.Equal(bytes.TrimSpace(rv), []byte("null")) || json.Unmarshal(rv, &s) != nil {
		return "", true, apperr.BadRequest(name + " must be a string")
	}
	return s, true, nil
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// firstViolation converts the first validator failure on field into a
// BadRequest.
func firstViolation(err error, name string) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperr.Wrap(apperr.KindBadRequest, "invalid input", err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.BadRequest(name + " is required")
	case "max":
		return apperr.BadRequest(fmt.Sprintf("%s must be at most %s characters", name, fe.Param()))
	case "min":
		return apperr.BadRequest(fmt.Sprintf("%s must be at least %s characters", name, fe.Param()))
	default:
		return apperr.BadRequest(name + " is invalid")
	}
}
