package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Subsystem tags accepted in the requiredSystems answer.
const (
	SystemDisplay             = "display"
	SystemVideoConferencing   = "video_conferencing"
	SystemAudio               = "audio"
	SystemConnectivityControl = "connectivity_control"
	SystemInfrastructure      = "infrastructure"
	SystemAcoustics           = "acoustics"
)

// RequiredSystemsKey is the one answer key with reserved semantics: its value
// selects which AV subsystems are in scope for generation.
const RequiredSystemsKey = "requiredSystems"

type answerKind int

const (
	answerNone answerKind = iota
	answerString
	answerNumber
	answerBool
	answerList
)

// AnswerValue is a single questionnaire answer: a scalar (string, number,
// boolean) or an ordered list of strings.
type AnswerValue struct {
	kind answerKind
	str  string
	num  float64
	b    bool
	list []string
}

func StringAnswer(s string) AnswerValue { return AnswerValue{kind: answerString, str: s} }
func NumberAnswer(n float64) AnswerValue { return AnswerValue{kind: answerNumber, num: n} }
func BoolAnswer(b bool) AnswerValue { return AnswerValue{kind: answerBool, b: b} }
func ListAnswer(items ...string) AnswerValue { return AnswerValue{kind: answerList, list: items} }

// IsEmpty reports whether the answer carries no usable content: an empty list,
// an empty string, a zero number, a false boolean, or no value at all.
func (v AnswerValue) IsEmpty() bool {
	switch v.kind {
	case answerString:
		return v.str == ""
	case answerNumber:
		return v.num == 0
	case answerBool:
		return !v.b
	case answerList:
		return len(v.list) == 0
	default:
		return true
	}
}

// List returns the answer as a list of strings. A scalar answer is projected
// to a single-element list when non-empty.
func (v AnswerValue) List() []string {
	switch v.kind {
	case answerList:
		return v.list
	case answerString:
		if v.str == "" {
			return nil
		}
		return []string{v.str}
	default:
		return nil
	}
}

// String renders the answer for prompt text. Lists are comma-joined.
func (v AnswerValue) String() string {
	switch v.kind {
	case answerString:
		return v.str
	case answerNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case answerBool:
		return strconv.FormatBool(v.b)
	case answerList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case answerString:
		return json.Marshal(v.str)
	case answerNumber:
		return json.Marshal(v.num)
	case answerBool:
		return json.Marshal(v.b)
	case answerList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*v = AnswerValue{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("answer list: %w", err)
		}
		*v = ListAnswer(list...)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("answer string: %w", err)
		}
		*v = StringAnswer(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return fmt.Errorf("answer bool: %w", err)
		}
		*v = BoolAnswer(b)
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("answer number: %w", err)
		}
		*v = NumberAnswer(n)
	}
	return nil
}

// RequirementAnswer is one question/answer pair from the questionnaire.
type RequirementAnswer struct {
	Key   string
	Value AnswerValue
}

// RequirementAnswers maps question keys to answers. The slice form preserves
// the questionnaire's insertion order, which the encoder must keep.
type RequirementAnswers []RequirementAnswer

// Get returns the answer for a key.
func (ra RequirementAnswers) Get(key string) (AnswerValue, bool) {
	for _, a := range ra {
		if a.Key == key {
			return a.Value, true
		}
	}
	return AnswerValue{}, false
}

// RequiredSystems returns the subsystem tags in scope. Absent or empty
// defaults to all known subsystems.
func (ra RequirementAnswers) RequiredSystems() []string {
	if v, ok := ra.Get(RequiredSystemsKey); ok && !v.IsEmpty() {
		return v.List()
	}
	return []string{
		SystemDisplay,
		SystemVideoConferencing,
		SystemAudio,
		SystemConnectivityControl,
		SystemInfrastructure,
		SystemAcoustics,
	}
}

// MarshalJSON renders the answers as a JSON object in insertion order.
func (ra RequirementAnswers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range ra {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(a.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object while preserving key order, which a
// plain map cannot do.
func (ra *RequirementAnswers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("answers: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answers: expected JSON object, got %v", tok)
	}

	var out RequirementAnswers
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("answers key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("answers key: expected string, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("answer %q: %w", key, err)
		}
		var value AnswerValue
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("answer %q: %w", key, err)
		}
		out = append(out, RequirementAnswer{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("answers: %w", err)
	}

	*ra = out
	return nil
}
