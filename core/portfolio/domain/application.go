package domain

import (
	"reflect"
	"strings"

	"portfolio/modules/clock"

	"github.com/go-playground/validator/v10"
)

func NewApp(stores Stores, dispatcher ContactDispatcher, clk clock.Clock) *Application {
	if clk == nil {
		clk = clock.RealClockProvider()
	}
	return &Application{
		works:      stores.Works,
		skills:     stores.Skills,
		about:      stores.About,
		hero:       stores.Hero,
		dispatcher: dispatcher,
		clock:      clk,
		validate:   newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
