package applications

import (
	"bytes"
	"encoding/json"
	"errors"

	"careers-backend/internal/shared/util"
)

// optionIDPrefix marks submitted strings as option references rather than
// free text. Option identifiers are minted with this prefix (util.NewID).
const optionIDPrefix = "opt"

// answerValue is one submitted value: a single string or a list of strings.
type answerValue struct {
	text   string
	list   []string
	isList bool
}

func (v *answerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		v.isList = true
		return json.Unmarshal(trimmed, &v.list)
	}
	v.isList = false
	return json.Unmarshal(trimmed, &v.text)
}

// RawAnswer is one record of the array-shaped submission body.
type RawAnswer struct {
	QuestionID       string      `json:"questionId"`
	Value            answerValue `json:"value"`
	QuestionOptionID string      `json:"questionOptionId"`
}

// MapEntry is one entry of the object-shaped submission body, in document
// order.
type MapEntry struct {
	QuestionID string
	Value      answerValue
}

// AnswerInput is the submitted answers payload. Candidates send either an
// array of records or an object keyed by question id; both decode into this
// tagged union.
type AnswerInput struct {
	Records []RawAnswer
	Entries []MapEntry
}

func (in *AnswerInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty answers payload")
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, &in.Records)
	case '{':
		// Walk tokens by hand so the document order of keys survives;
		// a plain map would shuffle it.
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return err
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := keyTok.(string)
			if !ok {
				return errors.New("answers object key must be a string")
			}
			var v answerValue
			if err := dec.Decode(&v); err != nil {
				return err
			}
			in.Entries = append(in.Entries, MapEntry{QuestionID: key, Value: v})
		}
		return nil
	default:
		return errors.New("answers must be an array or an object")
	}
}

// IsEmpty reports whether the payload carries no answers at all.
func (in AnswerInput) IsEmpty() bool {
	return len(in.Records) == 0 && len(in.Entries) == 0
}

// Normalize flattens a submitted payload into canonical tuples. List values
// fan out into one option tuple per element; single strings become an option
// tuple when they carry the option id prefix and a text tuple otherwise.
// Pure: no I/O, input order preserved.
func Normalize(in AnswerInput) []AnswerTuple {
	var out []AnswerTuple

	appendValue := func(questionID string, v answerValue) {
		if v.isList {
			for _, optionID := range v.list {
				out = append(out, optionTuple(questionID, optionID))
			}
			return
		}
		if util.HasIDPrefix(v.text, optionIDPrefix) {
			out = append(out, optionTuple(questionID, v.text))
			return
		}
		out = append(out, textTuple(questionID, v.text))
	}

	for _, rec := range in.Records {
		if rec.QuestionOptionID != "" {
			out = append(out, optionTuple(rec.QuestionID, rec.QuestionOptionID))
			continue
		}
		appendValue(rec.QuestionID, rec.Value)
	}
	for _, entry := range in.Entries {
		appendValue(entry.QuestionID, entry.Value)
	}
	return out
}

func optionTuple(questionID, optionID string) AnswerTuple {
	return AnswerTuple{QuestionID: questionID, QuestionOptionID: &optionID}
}

func textTuple(questionID, text string) AnswerTuple {
	return AnswerTuple{QuestionID: questionID, TextValue: &text}
}
