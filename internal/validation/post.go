package validation

import "github.com/andomorphia/devconnector/internal/models"

// PostInput is the payload for creating a post or a comment.
type PostInput struct {
	Text string `json:"text"`
}

// ValidatePost checks a post or comment payload. Text must be present and
// between 10 and 300 characters.
func ValidatePost(in PostInput) (models.ValidationErrors, bool) {
	errs := models.ValidationErrors{}

	if !lengthBetween(in.Text, 10, 300) {
		errs["text"] = "Post must be between 10 and 300 characters"
	}
	if isEmpty(in.Text) {
		errs["text"] = "Text field is required"
	}

	return errs, len(errs) == 0
}
