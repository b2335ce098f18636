// Package forms validates and binds user-submitted post and comment fields.
// Validation either yields a bound value whose strings are normalized, or a
// set of field-level error messages; invalid input never reaches the db layer.
package forms

import (
	"log"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
)

// PostInput is the submitted shape for post create/edit. Image is filled in
// by the media service after a successful upload, not bound from the form.
type PostInput struct {
	Text    string `form:"text" conform:"trim" validate:"required"`
	GroupID *uint  `form:"group_id" validate:"-"`
	Image   string `form:"-" validate:"-"`
}

// GroupSelected reports whether id matches the chosen group, for rebuilding
// the group dropdown on a failed submission.
func (p *PostInput) GroupSelected(id uint) bool {
	return p.GroupID != nil && *p.GroupID == id
}

// CommentInput is the submitted shape for a new comment.
type CommentInput struct {
	Text string `form:"text" conform:"trim" validate:"required"`
}

// FieldErrors maps a field name to its translated validation message.
type FieldErrors map[string]string

func (f FieldErrors) Any() bool {
	return len(f) > 0
}

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		log.Printf("couldn't register validator translations: %v", err)
	}
}

// ValidatePost normalizes the input in place and returns field errors, empty
// on success.
func ValidatePost(in *PostInput) FieldErrors {
	return run(in)
}

// ValidateComment normalizes the input in place and returns field errors,
// empty on success.
func ValidateComment(in *CommentInput) FieldErrors {
	return run(in)
}

func run(in interface{}) FieldErrors {
	errs := FieldErrors{}
	if err := conform.Strings(in); err != nil {
		errs["form"] = err.Error()
		return errs
	}
	err := validate.Struct(in)
	if err == nil {
		return errs
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range validatorErrs {
		errs[strings.ToLower(fe.Field())] = fe.Translate(trans)
	}
	return errs
}
