package handlers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the "notblank" tag to gin's validator so
// whitespace-only fields count as missing. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			registerErr = fmt.Errorf("failed to register notblank validator: %w", err)
		}
	})
	return registerErr
}

// bindingMessage turns a bind failure into the message sent to the client.
func bindingMessage(err error, missing string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return missing
	}
	return "Invalid JSON payload"
}
