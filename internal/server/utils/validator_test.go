package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coords struct {
	Lat *float64 `form:"lat" validate:"required,latitude"`
	Lon *float64 `form:"lon" validate:"required,longitude"`
}

type search struct {
	Query string `form:"q" validate:"required,notblank,max=10"`
}

func f(v float64) *float64 { return &v }

func TestValidateStruct_Coordinates(t *testing.T) {
	assert.Empty(t, ValidateStruct(coords{Lat: f(0), Lon: f(0)}))
	assert.Empty(t, ValidateStruct(coords{Lat: f(-90), Lon: f(180)}))

	errs := ValidateStruct(coords{Lat: f(91), Lon: f(-42.8)})
	require.Len(t, errs, 1)
	assert.Equal(t, "lat", errs[0].Field)
	assert.Equal(t, "latitude", errs[0].Tag)

	errs = ValidateStruct(coords{Lat: f(10)})
	require.Len(t, errs, 1)
	assert.Equal(t, "lon", errs[0].Field)
	assert.Equal(t, "lon is required", errs[0].Message)
}

func TestValidateStruct_Query(t *testing.T) {
	assert.Empty(t, ValidateStruct(search{Query: "Maricá"}))

	errs := ValidateStruct(search{Query: "   "})
	require.Len(t, errs, 1)
	assert.Equal(t, "notblank", errs[0].Tag)

	errs = ValidateStruct(search{Query: "Campos dos Goytacazes"})
	require.Len(t, errs, 1)
	assert.Equal(t, "q must be at most 10 characters long", errs[0].Message)
}

func TestValidateStruct_BlankQueryIsAFieldError(t *testing.T) {
	var errs []ValidationError
	require.NotPanics(t, func() {
		errs = ValidateStruct(search{Query: "\t \n"})
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "q", errs[0].Field)
	assert.Equal(t, "q must not be blank", errs[0].Message)
}
