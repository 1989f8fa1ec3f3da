package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSONPlain(t *testing.T) {
	result, err := ParseJSON[payload](`{"name": "alpha", "count": 3}`)

	assert.NoError(t, err)
	assert.Equal(t, "alpha", result.Name)
	assert.Equal(t, 3, result.Count)
}

func TestParseJSONMarkdownFences(t *testing.T) {
	response := "```json\n{\"name\": \"beta\", \"count\": 1}\n```"

	result, err := ParseJSON[payload](response)

	assert.NoError(t, err)
	assert.Equal(t, "beta", result.Name)
}

func TestParseJSONSurroundingChatter(t *testing.T) {
	response := `Sure! Here is the JSON you asked for:
{"name": "gamma", "count": 7}
Let me know if you need anything else.`

	result, err := ParseJSON[payload](response)

	assert.NoError(t, err)
	assert.Equal(t, "gamma", result.Name)
	assert.Equal(t, 7, result.Count)
}

func TestParseJSONNoObject(t *testing.T) {
	_, err := ParseJSON[payload]("I could not produce the requested output.")

	assert.Error(t, err)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON[payload](`{"name": "delta", "count": }`)

	assert.Error(t, err)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "cognitive_load", Slug("Cognitive Load"))
	assert.Equal(t, "reaction_time", Slug("  reaction time "))
	assert.Equal(t, "ph", Slug("pH"))
}
