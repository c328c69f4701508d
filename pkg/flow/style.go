package flow

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/prismaflow/pkg/errors"
)

// Default style values, matching the published PRISMA 2020 figure.
const (
	DefaultFont          = "Helvetica"
	DefaultFontSize      = 10.0
	DefaultTitleColour   = "Goldenrod1"
	DefaultGreyBoxColour = "Gainsboro"
	DefaultMainColour    = "Black"
	DefaultArrowColour   = "Black"
	DefaultArrowHead     = "normal"
	DefaultArrowTail     = "none"
)

// Style holds the presentation parameters of a render. Style never changes
// node ids, positions or rank groups.
type Style struct {
	Font          string  `json:"font" toml:"font" yaml:"font" validate:"required,max=64,fontname"`
	FontSize      float64 `json:"font_size" toml:"font_size" yaml:"font_size" validate:"gt=0,lte=72"`
	TitleColour   string  `json:"title_colour" toml:"title_colour" yaml:"title_colour" validate:"required,colour"`
	GreyBoxColour string  `json:"greybox_colour" toml:"greybox_colour" yaml:"greybox_colour" validate:"required,colour"`
	MainColour    string  `json:"main_colour" toml:"main_colour" yaml:"main_colour" validate:"required,colour"`
	ArrowColour   string  `json:"arrow_colour" toml:"arrow_colour" yaml:"arrow_colour" validate:"required,colour"`
	ArrowHead     string  `json:"arrow_head" toml:"arrow_head" yaml:"arrow_head" validate:"required,arrow"`
	ArrowTail     string  `json:"arrow_tail" toml:"arrow_tail" yaml:"arrow_tail" validate:"required,arrow"`
}

// DefaultStyle returns the template style.
func DefaultStyle() Style {
	return Style{
		Font:          DefaultFont,
		FontSize:      DefaultFontSize,
		TitleColour:   DefaultTitleColour,
		GreyBoxColour: DefaultGreyBoxColour,
		MainColour:    DefaultMainColour,
		ArrowColour:   DefaultArrowColour,
		ArrowHead:     DefaultArrowHead,
		ArrowTail:     DefaultArrowTail,
	}
}

// WithDefaults fills zero fields from [DefaultStyle].
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.Font == "" {
		s.Font = d.Font
	}
	if s.FontSize == 0 {
		s.FontSize = d.FontSize
	}
	if s.TitleColour == "" {
		s.TitleColour = d.TitleColour
	}
	if s.GreyBoxColour == "" {
		s.GreyBoxColour = d.GreyBoxColour
	}
	if s.MainColour == "" {
		s.MainColour = d.MainColour
	}
	if s.ArrowColour == "" {
		s.ArrowColour = d.ArrowColour
	}
	if s.ArrowHead == "" {
		s.ArrowHead = d.ArrowHead
	}
	if s.ArrowTail == "" {
		s.ArrowTail = d.ArrowTail
	}
	return s
}

// arrowShapes are the Graphviz primitive arrow shapes accepted for heads and tails.
var arrowShapes = map[string]bool{
	"normal": true, "inv": true, "dot": true, "invdot": true, "odot": true,
	"invodot": true, "none": true, "tee": true, "empty": true, "invempty": true,
	"diamond": true, "odiamond": true, "ediamond": true, "crow": true,
	"box": true, "obox": true, "open": true, "halfopen": true, "vee": true,
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func styleValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("arrow", func(fl validator.FieldLevel) bool {
			return arrowShapes[fl.Field().String()]
		})
		_ = validate.RegisterValidation("colour", func(fl validator.FieldLevel) bool {
			return validColour(fl.Field().String())
		})
		_ = validate.RegisterValidation("fontname", func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), "\"\\<>&;")
		})
	})
	return validate
}

// validColour accepts Graphviz colour names and #rgb/#rrggbb/#rrggbbaa values.
// Quotes and backslashes are rejected because they would escape the DOT
// attribute they are written into.
func validColour(s string) bool {
	if s == "" || strings.ContainsAny(s, "\"\\;{}") {
		return false
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 6, 8:
		default:
			return false
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return false
			}
		}
		return true
	}
	return true
}

// Validate checks the style with struct tags.
func (s Style) Validate() error {
	if err := styleValidator().Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "%s", formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid style"
	}
	fe := verrs[0]
	return fmt.Sprintf("invalid style field %s: %q fails %q", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag())
}
