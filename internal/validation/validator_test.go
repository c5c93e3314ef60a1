package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/spindleapp/spindle-server/internal/errors"
)

type reviewInput struct {
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string  `json:"text" validate:"max=2000"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(reviewInput{Rating: 4, Text: "solid"}))
	assert.NoError(t, v.Validate(reviewInput{Rating: 1}))
	assert.NoError(t, v.Validate(reviewInput{Rating: 5}))
}

func TestValidate_RatingBounds(t *testing.T) {
	v := New()

	for _, rating := range []float64{0, 0.5, 5.5, 6} {
		err := v.Validate(reviewInput{Rating: rating})
		require.Error(t, err, "rating %v", rating)

		var domainErr *domainerrors.Error
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(reviewInput{Rating: 10})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "rating")
	assert.Equal(t, "must be less than or equal to 5", details["rating"])
}
