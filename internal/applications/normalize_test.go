package applications

import (
	"encoding/json"
	"testing"
)

func str(s string) *string { return &s }

func TestAnswerInputDecodesArrayForm(t *testing.T) {
	payload := `[
		{"questionId": "qst_1", "value": "free text"},
		{"questionId": "qst_2", "questionOptionId": "opt_aa11"},
		{"questionId": "qst_3", "value": ["opt_bb22", "opt_cc33"]}
	]`
	var in AnswerInput
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(in.Records) != 3 || len(in.Entries) != 0 {
		t.Fatalf("records = %d, entries = %d, want 3/0", len(in.Records), len(in.Entries))
	}

	tuples := Normalize(in)
	want := []AnswerTuple{
		{QuestionID: "qst_1", TextValue: str("free text")},
		{QuestionID: "qst_2", QuestionOptionID: str("opt_aa11")},
		{QuestionID: "qst_3", QuestionOptionID: str("opt_bb22")},
		{QuestionID: "qst_3", QuestionOptionID: str("opt_cc33")},
	}
	assertTuples(t, tuples, want)
}

func TestAnswerInputDecodesMapFormInDocumentOrder(t *testing.T) {
	payload := `{
		"qst_z": "last name first",
		"qst_a": ["opt_11ff", "opt_22ee"],
		"qst_m": "opt_33dd"
	}`
	var in AnswerInput
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(in.Entries) != 3 || len(in.Records) != 0 {
		t.Fatalf("entries = %d, records = %d, want 3/0", len(in.Entries), len(in.Records))
	}

	tuples := Normalize(in)
	want := []AnswerTuple{
		{QuestionID: "qst_z", TextValue: str("last name first")},
		{QuestionID: "qst_a", QuestionOptionID: str("opt_11ff")},
		{QuestionID: "qst_a", QuestionOptionID: str("opt_22ee")},
		{QuestionID: "qst_m", QuestionOptionID: str("opt_33dd")},
	}
	assertTuples(t, tuples, want)
}

func TestNormalizeMultiSelectFanOut(t *testing.T) {
	var in AnswerInput
	payload := `{"qst_1": ["opt_a1", "opt_b2", "opt_c3", "opt_d4"]}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tuples := Normalize(in)
	if len(tuples) != 4 {
		t.Fatalf("tuples = %d, want 4", len(tuples))
	}
	for i, tu := range tuples {
		if tu.QuestionID != "qst_1" {
			t.Errorf("tuple %d questionId = %s, want qst_1", i, tu.QuestionID)
		}
		if tu.QuestionOptionID == nil || tu.TextValue != nil {
			t.Errorf("tuple %d should be an option reference", i)
		}
	}
}

func TestNormalizeOptionPrefixDetection(t *testing.T) {
	cases := []struct {
		value    string
		isOption bool
	}{
		{"opt_8f14e45fceea", true},
		{"optimistic about this role", false},
		{"opt_", false},
		{"opt_XYZ", false},
		{"plain text", false},
		{"", false},
	}
	for _, tc := range cases {
		tuples := Normalize(AnswerInput{Entries: []MapEntry{
			{QuestionID: "qst_1", Value: answerValue{text: tc.value}},
		}})
		if len(tuples) != 1 {
			t.Fatalf("%q: tuples = %d, want 1", tc.value, len(tuples))
		}
		gotOption := tuples[0].QuestionOptionID != nil
		if gotOption != tc.isOption {
			t.Errorf("%q: option = %v, want %v", tc.value, gotOption, tc.isOption)
		}
	}
}

func TestNormalizeIsPure(t *testing.T) {
	in := AnswerInput{Entries: []MapEntry{
		{QuestionID: "qst_1", Value: answerValue{text: "hello"}},
		{QuestionID: "qst_2", Value: answerValue{list: []string{"opt_1a", "opt_2b"}, isList: true}},
	}}
	first := Normalize(in)
	second := Normalize(in)
	assertTuples(t, second, first)
}

func TestAnswerInputRejectsScalarPayload(t *testing.T) {
	for _, payload := range []string{`"just a string"`, `42`, `true`, ``} {
		var in AnswerInput
		if err := json.Unmarshal([]byte(payload), &in); err == nil {
			t.Errorf("payload %q: expected decode error", payload)
		}
	}
}

func assertTuples(t *testing.T, got, want []AnswerTuple) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("tuples = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].QuestionID != want[i].QuestionID {
			t.Errorf("tuple %d questionId = %s, want %s", i, got[i].QuestionID, want[i].QuestionID)
		}
		if !ptrEq(got[i].TextValue, want[i].TextValue) {
			t.Errorf("tuple %d textValue = %v, want %v", i, deref(got[i].TextValue), deref(want[i].TextValue))
		}
		if !ptrEq(got[i].QuestionOptionID, want[i].QuestionOptionID) {
			t.Errorf("tuple %d questionOptionId = %v, want %v", i, deref(got[i].QuestionOptionID), deref(want[i].QuestionOptionID))
		}
	}
}

func ptrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
