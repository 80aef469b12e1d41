package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validRequest() GenerateRequest {
	return GenerateRequest{
		TargetName:  "Ada Lovelace",
		TargetRole:  "Engineering Manager",
		LinkedInURL: "https://www.linkedin.com/in/ada",
		Company:     strPtr("Analytical Engines"),
		GoalPrompt:  "Ask for a 15 minute chat about the backend team",
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestGenerateRequest_Valid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestGenerateRequest_OptionalFieldsMayBeAbsent(t *testing.T) {
	req := validRequest()
	req.Company = nil
	assert.NoError(t, req.Validate())
}

func TestGenerateRequest_LengthLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *GenerateRequest)
		field  string
	}{
		{"target_name 101", func(r *GenerateRequest) { r.TargetName = strings.Repeat("a", 101) }, "target_name"},
		{"target_role 101", func(r *GenerateRequest) { r.TargetRole = strings.Repeat("a", 101) }, "target_role"},
		{"company 201", func(r *GenerateRequest) { r.Company = strPtr(strings.Repeat("a", 201)) }, "company"},
		{"experiences 2001", func(r *GenerateRequest) { r.Experiences = strPtr(strings.Repeat("a", 2001)) }, "experiences"},
		{"recent_post 2001", func(r *GenerateRequest) { r.RecentPost = strPtr(strings.Repeat("a", 2001)) }, "recent_post"},
		{"education 1001", func(r *GenerateRequest) { r.Education = strPtr(strings.Repeat("a", 1001)) }, "education"},
		{"other_notes 1001", func(r *GenerateRequest) { r.OtherNotes = strPtr(strings.Repeat("a", 1001)) }, "other_notes"},
		{"goal_prompt 1001", func(r *GenerateRequest) { r.GoalPrompt = strings.Repeat("a", 1001) }, "goal_prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assert.Equal(t, []string{tt.field}, fieldNames(t, req.Validate()))
		})
	}
}

func TestGenerateRequest_BoundaryLengthAccepted(t *testing.T) {
	req := validRequest()
	req.TargetName = strings.Repeat("a", 100)
	req.GoalPrompt = strings.Repeat("é", 1000)
	assert.NoError(t, req.Validate())
}

func TestGenerateRequest_InvalidURL(t *testing.T) {
	for _, u := range []string{"not a url", "ftp://linkedin.com/in/x", "linkedin.com/in/x"} {
		req := validRequest()
		req.LinkedInURL = u
		assert.Equal(t, []string{"linkedin_url"}, fieldNames(t, req.Validate()), u)
	}
}

func TestGenerateRequest_MissingRequired(t *testing.T) {
	req := GenerateRequest{}
	assert.ElementsMatch(t,
		[]string{"target_name", "target_role", "linkedin_url", "goal_prompt"},
		fieldNames(t, req.Validate()))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "target_name", Message: "must be at most 100 characters"}}}
	assert.Equal(t, "validation failed: target_name: must be at most 100 characters", err.Error())
}
