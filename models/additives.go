package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// AdditivesKind discriminates the shapes the additives column may hold.
type AdditivesKind int

const (
	// AdditivesNone marks an absent value; it stores and serializes as null.
	AdditivesNone AdditivesKind = iota
	// AdditivesList holds an ordered list of additive names.
	AdditivesList
	// AdditivesText holds a single free-text description.
	AdditivesText
	// AdditivesRaw preserves any other JSON value verbatim.
	AdditivesRaw
)

// Additives is the loosely-typed additives value carried by a DES formula.
// Historically the column held either a JSON array of strings or an object
// with a single "text" field; this type makes the variants explicit while
// still round-tripping anything else it encounters.
type Additives struct {
	Kind AdditivesKind
	List []string
	Text string
	Raw  json.RawMessage
}

// AdditiveList builds a list-variant value.
func AdditiveList(items ...string) Additives {
	return Additives{Kind: AdditivesList, List: items}
}

// AdditiveText builds a free-text variant value.
func AdditiveText(text string) Additives {
	return Additives{Kind: AdditivesText, Text: text}
}

// IsZero reports whether no additives value is present.
func (a Additives) IsZero() bool {
	return a.Kind == AdditivesNone
}

// Display renders the value for listings and exports: lists are joined with
// "; ", free text is returned as-is, and unknown payloads fall back to their
// compact JSON form.
func (a Additives) Display() string {
	switch a.Kind {
	case AdditivesList:
		return strings.Join(a.List, "; ")
	case AdditivesText:
		return a.Text
	case AdditivesRaw:
		return string(a.Raw)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
func (a Additives) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AdditivesList:
		if a.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.List)
	case AdditivesText:
		return json.Marshal(map[string]string{"text": a.Text})
	case AdditivesRaw:
		return append([]byte(nil), a.Raw...), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Additives) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*a = Additives{}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = Additives{Kind: AdditivesList, List: list}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		if rawText, ok := obj["text"]; ok && len(obj) == 1 {
			var text string
			if err := json.Unmarshal(rawText, &text); err == nil {
				*a = Additives{Kind: AdditivesText, Text: text}
				return nil
			}
		}
		*a = Additives{Kind: AdditivesRaw, Raw: append([]byte(nil), data...)}
		return nil
	}

	if !json.Valid(data) {
		return fmt.Errorf("additives: invalid JSON payload")
	}
	*a = Additives{Kind: AdditivesRaw, Raw: append([]byte(nil), data...)}
	return nil
}

// Value implements driver.Valuer so the union can live in a text column.
func (a Additives) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	encoded, err := a.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (a *Additives) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*a = Additives{}
		return nil
	case []byte:
		return a.UnmarshalJSON(v)
	case string:
		return a.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("additives: unsupported column type %T", value)
	}
}
