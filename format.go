package mathsolve

import (
	"errors"

	"go.uber.org/zap"
)

// Formatter renders a solution as numeric, LaTeX and pretty text.
type Formatter struct {
	engine Engine
	logger *zap.Logger
}

// NewFormatter returns a Formatter over engine. A nil logger discards
// logs.
func NewFormatter(engine Engine, logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{engine: engine, logger: logger}
}

// Format renders sol. A field that fails to render falls back to the
// plain string form and records a FormatError. A nil solution or a
// renderer panic leaves every field empty and the stage unsuccessful.
func (f *Formatter) Format(sol Solution, category Category) (st *FormatStage) {
	st = &FormatStage{Category: category}
	if sol == nil {
		st.Errors = append(st.Errors, (&FormatError{Field: "solution", Cause: errors.New("no solution to format")}).Error())
		return st
	}
	defer func() {
		if r := recover(); r != nil {
			err := &FormatError{Field: "solution", Cause: recovered(r)}
			f.logger.Warn("formatting failed", zap.Error(err))
			*st = FormatStage{Category: category, Errors: append(st.Errors, err.Error())}
		}
	}()

	plain := sol.String()
	field := func(name string, render func(Engine) (string, error)) string {
		out, err := render(f.engine)
		if err != nil {
			st.Errors = append(st.Errors, (&FormatError{Field: name, Cause: err}).Error())
			return plain
		}
		return out
	}
	st.Numeric = field("numeric", sol.Numeric)
	st.Markup = field("markup", sol.Markup)
	st.Pretty = field("pretty", sol.Pretty)
	st.Success = true
	return st
}
