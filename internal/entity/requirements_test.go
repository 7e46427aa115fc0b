package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementAnswers_UnmarshalPreservesOrder(t *testing.T) {
	payload := `{"zebra":"z","alpha":["a","b"],"seats":12,"vc":true}`

	var answers RequirementAnswers
	require.NoError(t, json.Unmarshal([]byte(payload), &answers))

	require.Len(t, answers, 4)
	assert.Equal(t, "zebra", answers[0].Key)
	assert.Equal(t, "alpha", answers[1].Key)
	assert.Equal(t, "seats", answers[2].Key)
	assert.Equal(t, "vc", answers[3].Key)

	assert.Equal(t, "z", answers[0].Value.String())
	assert.Equal(t, []string{"a", "b"}, answers[1].Value.List())
	assert.Equal(t, "12", answers[2].Value.String())
	assert.Equal(t, "true", answers[3].Value.String())
}

func TestRequirementAnswers_MarshalRoundTrip(t *testing.T) {
	answers := RequirementAnswers{
		{Key: "roomType", Value: StringAnswer("boardroom")},
		{Key: "displayBrands", Value: ListAnswer("Samsung")},
	}

	data, err := json.Marshal(answers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"roomType":"boardroom","displayBrands":["Samsung"]}`, string(data))

	var decoded RequirementAnswers
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, answers, decoded)
}

func TestRequirementAnswers_UnmarshalRejectsNonObject(t *testing.T) {
	var answers RequirementAnswers
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &answers))
}

func TestAnswerValue_IsEmpty(t *testing.T) {
	assert.True(t, StringAnswer("").IsEmpty())
	assert.True(t, NumberAnswer(0).IsEmpty())
	assert.True(t, BoolAnswer(false).IsEmpty())
	assert.True(t, ListAnswer().IsEmpty())
	assert.True(t, AnswerValue{}.IsEmpty())

	assert.False(t, StringAnswer("x").IsEmpty())
	assert.False(t, NumberAnswer(3).IsEmpty())
	assert.False(t, BoolAnswer(true).IsEmpty())
	assert.False(t, ListAnswer("a").IsEmpty())
}

func TestRequiredSystems_DefaultsWhenAbsentOrEmpty(t *testing.T) {
	all := []string{
		SystemDisplay, SystemVideoConferencing, SystemAudio,
		SystemConnectivityControl, SystemInfrastructure, SystemAcoustics,
	}

	absent := RequirementAnswers{{Key: "roomType", Value: StringAnswer("x")}}
	assert.Equal(t, all, absent.RequiredSystems())

	empty := RequirementAnswers{{Key: RequiredSystemsKey, Value: ListAnswer()}}
	assert.Equal(t, all, empty.RequiredSystems())

	selected := RequirementAnswers{{Key: RequiredSystemsKey, Value: ListAnswer("audio")}}
	assert.Equal(t, []string{"audio"}, selected.RequiredSystems())
}
