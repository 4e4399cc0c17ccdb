package web

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"StockScope/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
		_, err := model.ParsePreset(fl.Field().String())
		return err == nil
	})
	return v
}

// queryForm is the dashboard selection as submitted by the form.
type queryForm struct {
	Symbol   string `query:"symbol" validate:"required"`
	Start    string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End      string `query:"end" validate:"omitempty,datetime=2006-01-02"`
	Preset   string `query:"preset" default:"none" validate:"preset"`
	Intraday bool   `query:"intraday"`
}

// bindForm reads, defaults and validates the query string. The bound form is
// returned with validation errors so the page can redisplay it.
func bindForm(c echo.Context) (*queryForm, error) {
	f := new(queryForm)
	if err := c.Bind(f); err != nil {
		return nil, err
	}
	if err := defaults.Set(f); err != nil {
		return nil, err
	}
	if err := validate.StructCtx(c.Request().Context(), f); err != nil {
		return f, formError(err)
	}
	return f, nil
}

// selection converts the form, defaulting missing dates to today.
func (f *queryForm) selection(today time.Time) (model.Selection, error) {
	sel := model.Selection{Symbol: f.Symbol, Start: today, End: today, Intraday: f.Intraday}
	var err error
	if f.Start != "" {
		if sel.Start, err = model.ParseDate(f.Start); err != nil {
			return sel, err
		}
	}
	if f.End != "" {
		if sel.End, err = model.ParseDate(f.End); err != nil {
			return sel, err
		}
	}
	sel.Preset, err = model.ParsePreset(f.Preset)
	return sel, err
}

func formError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date in %s form", field, e.Param()))
		case "preset":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, presetNames()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation: %s", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func presetNames() string {
	names := make([]string, len(model.Presets))
	for i, p := range model.Presets {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
