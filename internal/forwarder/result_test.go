package forwarder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPretty(t *testing.T) {
	res := Result{
		StatusCode: 200,
		Body: map[string]any{
			"username": "Trần",
			"id":       json.Number("42"),
		},
	}

	want := "{\n    \"id\": 42,\n    \"username\": \"Trần\"\n}"
	assert.Equal(t, want, res.Pretty())
}

func TestPrettyDoesNotEscapeHTML(t *testing.T) {
	res := ErrorResult(400, "<b>&</b>")

	assert.Equal(t, "{\n    \"error\": \"<b>&</b>\"\n}", res.Pretty())
}

func TestSucceeded(t *testing.T) {
	assert.True(t, Result{StatusCode: 201}.Succeeded())
	assert.False(t, Result{StatusCode: 400}.Succeeded())
	assert.False(t, Result{StatusCode: 500}.Succeeded())
}
