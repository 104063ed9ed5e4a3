package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
)

func requireBadRequest(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T", err)
	assert.Equal(t, apperr.KindBadRequest, ae.Kind())
	assert.True(t, ae.Expected())
	if msg != "" {
		assert.Equal(t, msg, ae.Message())
	}
}

func TestParseID_Invalid(t *testing.T) {
	for _, raw := range []string{
		"", " ", "abc", "12abc", "0", "-1", "-0", "1.5", "0.1", "NaN", "Infinity",
		"-Infinity", "1e309", "9007199254740992", "1_000", "0x", "0x1p4", "-0x10", "+0x10",
		"0x0", "0b102", "0o8", "0x20000000000000",
	} {
		t.Run(raw, func(t *testing.T) {
			id, err := ParseID(raw)
			requireBadRequest(t, err, "Invalid id")
			assert.Zero(t, id)
		})
	}
}

func TestParseID_Valid(t *testing.T) {
	cases := map[string]int64{
		"1":                1,
		" 42 ":             42,
		"12.0":             12,
		"1e3":              1000,
		"+7":               7,
		"0x10":             16,
		"0X1f":             31,
		"0o17":             15,
		"0b101":            5,
		" 0x10 ":           16,
		"9007199254740991": 9007199254740991,
	}
	for raw, want := range cases {
		got, err := ParseID(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestEntryCreate_BodyRules(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		msg  string
	}{
		{"empty payload", ``, "body is required"},
		{"empty object", `{}`, "body is required"},
		{"empty string", `{"body":""}`, "body is required"},
		{"whitespace only", `{"body":"   \n\t"}`, "body is required"},
		{"number", `{"body":42}`, "body must be a string"},
		{"null", `{"body":null}`, "body must be a string"},
		{"array payload", `["body"]`, "request body must be a JSON object"},
		{"string payload", `"hello"`, "request body must be a JSON object"},
		{"malformed", `{"body":`, "invalid JSON body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EntryCreate([]byte(tc.raw))
			requireBadRequest(t, err, tc.msg)
		})
	}
}

func TestEntryCreate_TooLong(t *testing.T) {
	raw, _ := json.Marshal(map[string]string{"body": strings.Repeat("あ", MaxBodyRunes+1)})
	_, err := EntryCreate(raw)
	requireBadRequest(t, err, "body must be at most 10000 characters")

	// exactly at the limit, counted in runes not bytes
	raw, _ = json.Marshal(map[string]string{"body": strings.Repeat("あ", MaxBodyRunes)})
	in, err := EntryCreate(raw)
	require.NoError(t, err)
	assert.Equal(t, MaxBodyRunes, len([]rune(in.Body)))
}

func TestEntryCreate_NormalizesAndIgnoresUnknown(t *testing.T) {
	// "e" + combining acute accent composes to U+00E9 under NFC
	in, err := EntryCreate([]byte(`{"body":"  cafe\u0301 \n","mood":"great","user_id":99}`))
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", in.Body)
}

func TestEntryUpdateFull_SameRulesAsCreate(t *testing.T) {
	_, err := EntryUpdateFull([]byte(`{}`))
	requireBadRequest(t, err, "body is required")

	in, err := EntryUpdateFull([]byte(`{"body":" updated "}`))
	require.NoError(t, err)
	assert.Equal(t, "updated", in.Body)
}

func TestEntryUpdatePartial(t *testing.T) {
	t.Run("empty object is valid", func(t *testing.T) {
		p, err := EntryUpdatePartial([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("empty payload is valid", func(t *testing.T) {
		p, err := EntryUpdatePartial(nil)
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("body normalized", func(t *testing.T) {
		p, err := EntryUpdatePartial([]byte(`{"body":"  new text "}`))
		require.NoError(t, err)
		assert.Equal(t, "new text", p["body"])
	})

	t.Run("body wrong type", func(t *testing.T) {
		_, err := EntryUpdatePartial([]byte(`{"body":true}`))
		requireBadRequest(t, err, "body must be a string")
	})

	t.Run("body blank", func(t *testing.T) {
		_, err := EntryUpdatePartial([]byte(`{"body":"  "}`))
		requireBadRequest(t, err, "body is required")
	})

	t.Run("unknown keys pass through", func(t *testing.T) {
		p, err := EntryUpdatePartial([]byte(`{"entry_id":5,"body":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, "x", p["body"])
		raw, ok := p["entry_id"].(json.RawMessage)
		require.True(t, ok)
		assert.JSONEq(t, `5`, string(raw))
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := EntryUpdatePartial([]byte(`[1]`))
		requireBadRequest(t, err, "request body must be a JSON object")
	})
}
