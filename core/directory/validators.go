package directory

import (
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/placement/core"
)

var (
	phone10Tag   = "phone10"
	phone10Text  = "phone number must be 10 digits"
	phone10Regex = regexp.MustCompile(`^\d{10}$`)

	roleTag  = "role"
	roleText = "role must be one of admin or student"
)

// InitValidators registers the directory validators. core.InitValidators must be called first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(phone10Tag, phone10Validation)
	core.RegisterCustomTranslation(validate, translator, phone10Tag, phone10Text)

	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

// NewValidator returns a validator ready for every form of the directory.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate, translator
}

// Custom Validators

func phone10Validation(fl validator.FieldLevel) bool {
	return phone10Regex.MatchString(fl.Field().String())
}

func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}
