package service

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	e := newError(ErrValidation, validation.Errors{
		"password":     errors.New("the length must be between 8 and 128"),
		"email":        errors.New("has already been taken"),
		"display_name": errors.New("the length must be no more than 255"),
		BaseField:      errors.New("something global"),
	})

	require.Equal(t, []string{
		"something global",
		"display name the length must be no more than 255",
		"email has already been taken",
		"password the length must be between 8 and 128",
	}, e.Messages())
	require.Equal(t, "has already been taken", e.Field("email"))
	require.Empty(t, e.Field("nope"))
	require.ErrorIs(t, e, ErrValidation)
	require.Contains(t, e.Error(), "email has already been taken")
}

func TestErrorRelatedKinds(t *testing.T) {
	e := quotaOrLabel(5, true)
	require.ErrorIs(t, e, ErrQuotaExceeded)
	require.ErrorIs(t, e, ErrDuplicateLabel)
	require.Len(t, e.Messages(), 2)

	require.Nil(t, quotaOrLabel(4, false))

	e = quotaOrLabel(4, true)
	require.ErrorIs(t, e, ErrDuplicateLabel)
	require.NotErrorIs(t, e, ErrQuotaExceeded)
}

func TestValidationErrorPassesThroughOthers(t *testing.T) {
	require.Nil(t, validationError(nil))

	boom := errors.New("boom")
	require.Equal(t, boom, validationError(boom))

	err := validationError(validation.Errors{"email": errors.New("cannot be blank")})
	require.ErrorIs(t, err, ErrValidation)
}
