package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProfileInput() ProfileInput {
	return ProfileInput{
		Handle: "johndoe",
		Status: "Developer",
		Skills: "Go,SQL",
	}
}

func TestValidateProfile(t *testing.T) {
	t.Run("valid minimal", func(t *testing.T) {
		errs, ok := ValidateProfile(validProfileInput())
		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("required fields", func(t *testing.T) {
		errs, ok := ValidateProfile(ProfileInput{})
		assert.False(t, ok)
		assert.Equal(t, "Profile handle is required", errs["handle"])
		assert.Equal(t, "Status field is required", errs["status"])
		assert.Equal(t, "Skills field is required", errs["skills"])
	})

	t.Run("handle too long", func(t *testing.T) {
		in := validProfileInput()
		in.Handle = strings.Repeat("a", 41)
		errs, ok := ValidateProfile(in)
		assert.False(t, ok)
		assert.Equal(t, "Handle needs to be between 2 and 40 characters", errs["handle"])
	})

	t.Run("bad website URL", func(t *testing.T) {
		in := validProfileInput()
		in.Website = "not a url"
		errs, ok := ValidateProfile(in)
		assert.False(t, ok)
		assert.Equal(t, "Not a valid URL", errs["website"])
	})

	t.Run("bad social URLs report per field", func(t *testing.T) {
		in := validProfileInput()
		in.Twitter = "twitter.com/john"
		in.Youtube = "ftp://youtube.com/john"
		errs, ok := ValidateProfile(in)
		assert.False(t, ok)
		assert.Equal(t, "Not a valid URL", errs["twitter"])
		assert.Equal(t, "Not a valid URL", errs["youtube"])
		assert.NotContains(t, errs, "facebook")
	})

	t.Run("valid social URLs pass", func(t *testing.T) {
		in := validProfileInput()
		in.Website = "https://johndoe.dev"
		in.Linkedin = "https://linkedin.com/in/johndoe"
		errs, ok := ValidateProfile(in)
		assert.True(t, ok)
		assert.Empty(t, errs)
	})
}

func TestValidateExperience(t *testing.T) {
	errs, ok := ValidateExperience(ExperienceInput{Title: "Engineer", Company: "Acme", From: "2020-01-01"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidateExperience(ExperienceInput{})
	assert.False(t, ok)
	assert.Equal(t, "Job title field is required", errs["title"])
	assert.Equal(t, "Company field is required", errs["company"])
	assert.Equal(t, "From date field is required", errs["from"])
}

func TestValidateEducation(t *testing.T) {
	errs, ok := ValidateEducation(EducationInput{
		School: "State University", Degree: "B.Sc.", FieldOfStudy: "CS", From: "2016-09-01",
	})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidateEducation(EducationInput{School: "State University"})
	assert.False(t, ok)
	assert.Equal(t, "Degree field is required", errs["degree"])
	assert.Equal(t, "Field of study field is required", errs["field_of_study"])
	assert.Equal(t, "From date field is required", errs["from"])
	assert.NotContains(t, errs, "school")
}

func TestValidatePost(t *testing.T) {
	errs, ok := ValidatePost(PostInput{Text: "This is a long enough post"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidatePost(PostInput{Text: "short"})
	assert.False(t, ok)
	assert.Equal(t, "Post must be between 10 and 300 characters", errs["text"])

	errs, ok = ValidatePost(PostInput{})
	assert.False(t, ok)
	assert.Equal(t, "Text field is required", errs["text"])
}
