package validator_test

import (
	"errors"
	"testing"

	"go-pos-console/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string    `validate:"required"`
	Price float64   `validate:"gte=0"`
	Ref   uuid.UUID `validate:"uuid_required"`
}

func TestCheck_FirstFailure(t *testing.T) {
	err := validator.Check(&sample{Name: "", Price: 1, Ref: uuid.New()})
	require.Error(t, err)

	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sample.Name", verr.Field)
	assert.Contains(t, err.Error(), "required")
}

func TestCheck_UUIDRequired(t *testing.T) {
	errs := validator.ValidateStruct(&sample{Name: "x"})
	require.Len(t, errs, 1)
	assert.Equal(t, "uuid_required", errs[0].Tag)
}

func TestCheck_Valid(t *testing.T) {
	assert.NoError(t, validator.Check(&sample{Name: "x", Price: 0, Ref: uuid.New()}))
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "validation failed: percent must be below 100", validator.Invalid("percent", "must be below 100").Error())
	assert.Equal(t, "validation failed: no fields", (&validator.ValidationError{Reason: "no fields"}).Error())
}
