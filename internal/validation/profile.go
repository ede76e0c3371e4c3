package validation

import "github.com/andomorphia/devconnector/internal/models"

// ProfileInput is the create-or-update profile payload. Skills arrives as a
// comma-separated string and is split by the service after validation.
type ProfileInput struct {
	Handle         string `json:"handle"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ValidateProfile checks a profile payload. Handle, status, and skills are
// required; website and social links must be well-formed URLs when present.
func ValidateProfile(in ProfileInput) (models.ValidationErrors, bool) {
	errs := models.ValidationErrors{}

	if !lengthBetween(in.Handle, 2, 40) {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}
	if isEmpty(in.Handle) {
		errs["handle"] = "Profile handle is required"
	}
	if isEmpty(in.Status) {
		errs["status"] = "Status field is required"
	}
	if isEmpty(in.Skills) {
		errs["skills"] = "Skills field is required"
	}

	if !isEmpty(in.Website) && !isURL(in.Website) {
		errs["website"] = "Not a valid URL"
	}
	social := map[string]string{
		"youtube":   in.Youtube,
		"twitter":   in.Twitter,
		"facebook":  in.Facebook,
		"linkedin":  in.Linkedin,
		"instagram": in.Instagram,
	}
	for field, link := range social {
		if !isEmpty(link) && !isURL(link) {
			errs[field] = "Not a valid URL"
		}
	}

	return errs, len(errs) == 0
}

// ExperienceInput is the add-experience payload.
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ValidateExperience checks an experience payload.
func ValidateExperience(in ExperienceInput) (models.ValidationErrors, bool) {
	errs := models.ValidationErrors{}

	if isEmpty(in.Title) {
		errs["title"] = "Job title field is required"
	}
	if isEmpty(in.Company) {
		errs["company"] = "Company field is required"
	}
	if isEmpty(in.From) {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}

// EducationInput is the add-education payload.
type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// ValidateEducation checks an education payload.
func ValidateEducation(in EducationInput) (models.ValidationErrors, bool) {
	errs := models.ValidationErrors{}

	if isEmpty(in.School) {
		errs["school"] = "School field is required"
	}
	if isEmpty(in.Degree) {
		errs["degree"] = "Degree field is required"
	}
	if isEmpty(in.FieldOfStudy) {
		errs["field_of_study"] = "Field of study field is required"
	}
	if isEmpty(in.From) {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}
