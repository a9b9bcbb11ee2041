package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequest_WithDefaults(t *testing.T) {
	req := SearchRequest{TargetID: 1, Keyword: "socks"}.WithDefaults()

	assert.Equal(t, DefaultPageBound, req.PageBound)
	assert.Equal(t, DefaultUpdateInterval, req.UpdateInterval)
	assert.Equal(t, 1, req.KeywordIndex)
	assert.Equal(t, 1, req.KeywordCount)
}

func TestSearchRequest_WithDefaults_KeepsExplicitValues(t *testing.T) {
	req := SearchRequest{TargetID: 1, Keyword: "socks", PageBound: 3, UpdateInterval: 2, KeywordIndex: 2, KeywordCount: 4}.WithDefaults()

	assert.Equal(t, 3, req.PageBound)
	assert.Equal(t, 2, req.UpdateInterval)
	assert.Equal(t, 2, req.KeywordIndex)
	assert.Equal(t, 4, req.KeywordCount)
}

func TestSearchRequest_Validate(t *testing.T) {
	valid := SearchRequest{TargetID: 1, Keyword: "socks", PageBound: 1, UpdateInterval: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  SearchRequest
	}{
		{"missing target", SearchRequest{Keyword: "socks", PageBound: 1, UpdateInterval: 1}},
		{"missing keyword", SearchRequest{TargetID: 1, PageBound: 1, UpdateInterval: 1}},
		{"zero page bound", SearchRequest{TargetID: 1, Keyword: "socks", UpdateInterval: 1}},
		{"zero interval", SearchRequest{TargetID: 1, Keyword: "socks", PageBound: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.req.Validate(), ErrInvalidInput)
		})
	}
}

func TestOutcomeConstructors(t *testing.T) {
	found := Found(2, 1, 50)
	assert.Equal(t, OutcomeFound, found.Kind)
	assert.Equal(t, StopMatched, found.Reason)
	assert.Equal(t, 2, found.Rank)
	assert.False(t, found.IsError())

	exhausted := NotFound(7, StopExhausted)
	assert.Equal(t, OutcomeNotFound, exhausted.Kind)
	assert.Equal(t, StopExhausted, exhausted.Reason)
	assert.False(t, exhausted.IsError())

	bounded := NotFound(7, StopPageBound)
	assert.NotEqual(t, exhausted.Reason, bounded.Reason)

	assert.True(t, Cancelled().IsError())

	cause := errors.New("boom")
	failed := Failed(cause)
	assert.True(t, failed.IsError())
	assert.Equal(t, cause, failed.Err)
}

func TestFailed_KeepsCauseInJSON(t *testing.T) {
	failed := Failed(fmt.Errorf("fetch page 3: %w", ErrParse))
	failed.Keyword = "kw"

	data, err := json.Marshal(failed)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"error":"fetch page 3: parse failure"`)

	data, err = json.Marshal(NotFound(5, StopExhausted))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
}
