package validation

import "github.com/andomorphia/devconnector/internal/models"

// RegisterInput is the registration request payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"password2"`
}

// ValidateRegister checks a registration payload.
func ValidateRegister(in RegisterInput) (models.ValidationErrors, bool) {
	errs := models.ValidationErrors{}

	if !lengthBetween(in.Name, 2, 30) {
		errs["name"] = "Name must be between 2 and 30 characters"
	}
	if isEmpty(in.Name) {
		errs["name"] = "Name field is required"
	}

	if isEmpty(in.Email) {
		errs["email"] = "Email field is required"
	} else if !isEmail(in.Email) {
		errs["email"] = "Email is invalid"
	}

	if !lengthBetween(in.Password, 6, 30) {
		errs["password"] = "Password must be between 6 and 30 characters"
	}
	if isEmpty(in.Password) {
		errs["password"] = "Password field is required"
	}

	if isEmpty(in.Confirm) {
		errs["password2"] = "Confirm password field is required"
	} else if in.Password != in.Confirm {
		errs["password2"] = "Passwords must match"
	}

	return errs, len(errs) == 0
}

// LoginInput is the login request payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateLogin checks a login payload.
func ValidateLogin(in LoginInput) (models.ValidationErrors, bool) {
	errs := models.ValidationErrors{}

	if isEmpty(in.Email) {
		errs["email"] = "Email field is required"
	} else if !isEmail(in.Email) {
		errs["email"] = "Email is invalid"
	}

	if isEmpty(in.Password) {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}
