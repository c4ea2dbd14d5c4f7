package validation_test

import (
	"testing"

	domainerrors "github.com/kitboardapp/kitboard-server/internal/errors"
	"github.com/kitboardapp/kitboard-server/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overrideRequest struct {
	AssetName string `json:"assetName" validate:"required,min=1,max=200"`
	Category  string `json:"category" validate:"required,oneof=video sound lighting grip uncategorised"`
}

func TestValidate_OK(t *testing.T) {
	v := validation.New()

	err := v.Validate(overrideRequest{AssetName: "Sony A7IV", Category: "video"})
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(overrideRequest{AssetName: "", Category: "catering"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["assetName"])
	assert.Contains(t, details["category"], "must be one of")
}

func TestValidate_HTTPStatus(t *testing.T) {
	v := validation.New()

	err := v.Validate(overrideRequest{})
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus())
}
