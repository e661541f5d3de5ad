package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

var twitchLoginPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("twitch_login", func(fl validator.FieldLevel) bool {
		return twitchLoginPattern.MatchString(fl.Field().String())
	})
	return v
}

// NormalizeLogin turns user input ("@Foo", "https://www.twitch.tv/Foo") into a Twitch login.
func NormalizeLogin(input string) string {
	login := strings.TrimSpace(input)
	login = strings.TrimPrefix(login, "@")
	for _, prefix := range []string{"https://www.twitch.tv/", "https://twitch.tv/", "www.twitch.tv/", "twitch.tv/"} {
		if len(login) >= len(prefix) && strings.EqualFold(login[:len(prefix)], prefix) {
			login = login[len(prefix):]
			break
		}
	}
	login = strings.TrimSuffix(login, "/")
	return cases.Lower(language.Und).String(login)
}

// ValidateLogin checks a normalized login against Twitch's rules.
func ValidateLogin(login string) error {
	tag := fmt.Sprintf("required,max=%d,twitch_login", MaxTwitchLoginLength)
	if err := validate.Var(login, tag); err != nil {
		return fmt.Errorf("%w: %q is not a valid twitch username", domain.ErrInvalidInput, login)
	}
	return nil
}
