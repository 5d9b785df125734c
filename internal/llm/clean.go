package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	leadingFence  = regexp.MustCompile("^```\\w*\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
	leadingLabel  = regexp.MustCompile(`^JSON\s*`)

	invisibleChars = strings.NewReplacer("\u200b", "", "\ufeff", "", "\u200e", "")
	lineBreaks     = strings.NewReplacer("\n", "", "\r", "")
	literalRepairs = strings.NewReplacer(`\`, `\\`, "None", "null", "True", "true", "False", "false")
)

// CleanError reports a response that is not valid JSON even after repair.
type CleanError struct {
	Message string
	Cause   error
}

func (e *CleanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid JSON response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid JSON response: %s", e.Message)
}

func (e *CleanError) Unwrap() error {
	return e.Cause
}

// CleanJSONResponse turns a raw model response into compact JSON. It strips code
// fences, a leading "JSON" label, zero-width and byte-order-mark characters and line
// breaks. Text that still does not parse gets one repair pass: backslashes are
// doubled and Python-style None/True/False become JSON literals. Already clean JSON
// comes back compacted and unchanged in content, so the function is idempotent.
func CleanJSONResponse(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	text = leadingLabel.ReplaceAllString(text, "")
	text = invisibleChars.Replace(text)
	text = lineBreaks.Replace(text)

	if compacted, err := compactJSON(text); err == nil {
		return compacted, nil
	}

	repaired := literalRepairs.Replace(text)
	compacted, err := compactJSON(repaired)
	if err != nil {
		return "", &CleanError{Message: "repair did not produce valid JSON", Cause: err}
	}
	return compacted, nil
}

// DecodeJSONResponse cleans text and unmarshals it into v.
func DecodeJSONResponse(text string, v any) error {
	cleaned, err := CleanJSONResponse(text)
	if err != nil {
		return err
	}
	if cleaned == "null" {
		return &CleanError{Message: "response is null"}
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &CleanError{Message: "unexpected JSON shape", Cause: err}
	}
	return nil
}

func compactJSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
