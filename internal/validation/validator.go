package validation

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/news-portal-api/internal/models"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// notBlank rejects text made only of whitespace, which Required lets through
var notBlank = validation.By(func(value interface{}) error {
	if s, ok := value.(string); ok && s != "" && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// Field length limits, matching the column sizes
const (
	maxTitleLength   = 255
	maxNameLength    = 100
	maxSubjectLength = 200
	maxEmailLength   = 254
	maxCategoryName  = 100
	maxUsername      = 150
)

// ValidateContact checks a contact form; every field is required
func ValidateContact(form *models.ContactForm) error {
	return toValidationError(validation.ValidateStruct(form,
		validation.Field(&form.Name, validation.Required, notBlank, validation.RuneLength(0, maxNameLength)),
		validation.Field(&form.Email, validation.Required, validation.RuneLength(0, maxEmailLength), is.EmailFormat),
		validation.Field(&form.Subject, validation.Required, notBlank, validation.RuneLength(0, maxSubjectLength)),
		validation.Field(&form.Message, validation.Required, notBlank),
	))
}

// ValidateComment checks a reader comment; name, email and message are required
func ValidateComment(form *models.CommentForm) error {
	return toValidationError(validation.ValidateStruct(form,
		validation.Field(&form.Name, validation.Required, notBlank, validation.RuneLength(0, maxNameLength)),
		validation.Field(&form.Email, validation.Required, validation.RuneLength(0, maxEmailLength), is.EmailFormat),
		validation.Field(&form.Message, validation.Required, notBlank),
	))
}

// ValidateArticle checks editor input. On create title and category are
// mandatory; on update zero values keep the stored ones.
func ValidateArticle(input *models.ArticleInput, creating bool) error {
	return toValidationError(validation.ValidateStruct(input,
		validation.Field(&input.Title, validation.When(creating, validation.Required), validation.RuneLength(0, maxTitleLength)),
		validation.Field(&input.Slug, validation.RuneLength(0, maxTitleLength), validation.Match(slugRegex).Error("must be lowercase letters, digits and hyphens")),
		validation.Field(&input.CategoryID, validation.When(creating, validation.Required), validation.Min(int64(0))),
		validation.Field(&input.AuthorID, validation.NilOrNotEmpty, is.UUID),
	))
}

// ValidateCategory checks a category name
func ValidateCategory(category *models.Category) error {
	return toValidationError(validation.ValidateStruct(category,
		validation.Field(&category.Name, validation.Required, validation.RuneLength(0, maxCategoryName)),
	))
}

// ValidateUser checks an author record
func ValidateUser(user *models.User) error {
	return toValidationError(validation.ValidateStruct(user,
		validation.Field(&user.Username, validation.Required, validation.RuneLength(0, maxUsername)),
		validation.Field(&user.Email, validation.RuneLength(0, maxEmailLength), is.EmailFormat),
	))
}

// ValidateIDs checks a bulk action selection
func ValidateIDs(ids []string) error {
	if err := validation.Validate(ids, validation.Required, validation.Each(is.UUID)); err != nil {
		return &models.ValidationError{Fields: map[string]string{"ids": err.Error()}}
	}
	return nil
}

// toValidationError converts ozzo field errors into the models error type
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := &models.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for field, fieldErr := range fieldErrs {
		ve.Fields[field] = fieldErr.Error()
	}
	return ve
}
