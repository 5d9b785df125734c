package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StringList is a list of strings that decodes a lone string as a one-item list
// and always encodes as a JSON array.
type StringList []string

// MarshalJSON encodes a nil list as [].
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return marshalNoEscape([]string(l))
}

// UnmarshalJSON accepts null, a scalar, or an array of scalars.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*l = StringList{}
		return nil
	case data[0] == '[':
		var items []flexText
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, item := range items {
			out = append(out, string(item))
		}
		*l = out
		return nil
	default:
		var single flexText
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*l = StringList{string(single)}
		return nil
	}
}

// FeedbackList holds feedback strings. Items given as objects collapse to their
// "feedback" member; anything other than an array decodes as an empty list.
type FeedbackList []string

// MarshalJSON encodes a nil list as [].
func (l FeedbackList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return marshalNoEscape([]string(l))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *FeedbackList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*l = FeedbackList{}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(FeedbackList, 0, len(items))
	for _, raw := range items {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '{' {
			var obj struct {
				Feedback flexText `json:"feedback"`
			}
			if err := json.Unmarshal(raw, &obj); err != nil {
				return err
			}
			out = append(out, string(obj.Feedback))
			continue
		}
		var text flexText
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		out = append(out, string(text))
	}
	*l = out
	return nil
}

// flexText decodes any JSON scalar (and arrays of scalars) into text.
type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = flexText(s)
	case '[':
		var parts []flexText
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		strs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p != "" {
				strs = append(strs, string(p))
			}
		}
		*t = flexText(strings.Join(strs, ", "))
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = flexText(buf.String())
	default:
		// numbers and booleans keep their literal spelling
		*t = flexText(data)
	}
	return nil
}

// Score is a numeric score that also accepts numeric strings. Anything else decodes as 0.
type Score float64

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	text := strings.Trim(strings.TrimSpace(string(data)), `"`)
	text = strings.TrimSuffix(strings.TrimSpace(text), "%")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*s = 0
		return nil
	}
	*s = Score(f)
	return nil
}

// marshalNoEscape encodes v without HTML escaping so category names like
// "Frameworks & Libraries" survive verbatim.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
