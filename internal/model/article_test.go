package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListAcceptsScalarAndList(t *testing.T) {
	var req ProfileRecommendRequest
	payload := `{"prefs": {"field": ["machine_learning", "finance"], "type": "empirical"}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.Equal(t, StringList{"machine_learning", "finance"}, req.Prefs["field"])
	assert.Equal(t, StringList{"empirical"}, req.Prefs["type"])
}

func TestStringListRejectsOtherTypes(t *testing.T) {
	var list StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &list))
}

func TestArticleFullText(t *testing.T) {
	a := Article{Title: "T", Abstract: "A", Field: "F"}
	assert.Equal(t, "T A F", a.FullText())

	a.Text = "precomputed"
	assert.Equal(t, "precomputed", a.FullText())
}
