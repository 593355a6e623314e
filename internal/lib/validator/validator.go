package validator

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/PIRSON21/scissors/internal/lib/api/request"
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/go-playground/validator/v10"
)

// CreateNewValidator создает объект типа *validator.Validate, в котором название поля берется из json тега.
// Сразу регистрирует проверки, которые не выражаются тегами.
func CreateNewValidator() *validator.Validate {
	valid := validator.New()

	valid.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	valid.RegisterStructValidation(CostGridStructLevelValidation, models.CostGrid{})
	valid.RegisterStructValidation(OutlineStructLevelValidation, models.Outline{})
	valid.RegisterStructValidation(CommandStructLevelValidation, request.Command{})

	return valid
}

// CostGridStructLevelValidation проверяет, что весов ровно width*height.
func CostGridStructLevelValidation(sl validator.StructLevel) {
	g := sl.Current().Interface().(models.CostGrid)

	if g.Width > 0 && g.Height > 0 && len(g.Weights) != g.Width*g.Height {
		sl.ReportError(g.Weights, "weights", "Weights", "len", strconv.Itoa(g.Width*g.Height))
	}
}

// OutlineStructLevelValidation проверяет, что сегменты идут подряд от start,
// возвращаются в start и не выходят за изображение.
func OutlineStructLevelValidation(sl validator.StructLevel) {
	o := sl.Current().Interface().(models.Outline)

	if len(o.Segments) == 0 {
		return
	}

	if !o.Closed() {
		sl.ReportError(o.Segments, "segments", "Segments", "closed", "")
		return
	}

	bounds := models.Bounds{Width: o.Width, Height: o.Height}
	for _, seg := range o.Segments {
		for _, p := range seg.Points {
			if !bounds.Contains(p) {
				sl.ReportError(o.Segments, "segments", "Segments", "inside", p.String())
				return
			}
		}
	}
}

// CommandStructLevelValidation проверяет поля, обязательные для конкретной операции.
func CommandStructLevelValidation(sl validator.StructLevel) {
	c := sl.Current().Interface().(request.Command)

	switch c.Op {
	case request.OpAdd, request.OpLive:
		if c.Point == nil {
			sl.ReportError(c.Point, "point", "Point", "required_with_op", c.Op)
		}
	case request.OpMove:
		if c.Point == nil {
			sl.ReportError(c.Point, "point", "Point", "required_with_op", c.Op)
		}
		if c.Index == nil {
			sl.ReportError(c.Index, "index", "Index", "required_with_op", c.Op)
		}
	case request.OpTool:
		if c.Tool == "" {
			sl.ReportError(c.Tool, "tool", "Tool", "required_with_op", c.Op)
		}
	case request.OpSave:
		if c.Name == "" {
			sl.ReportError(c.Name, "name", "Name", "required_with_op", c.Op)
		}
	}
}
