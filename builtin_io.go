package mylang

import (
	"fmt"
)

// ---- output --------------------------------------------------------------

func registerIOBuiltins(r *registry) {
	r.native("println", []string{"item"}, "Writes the formatted item and a newline to standard output. Returns no value.",
		func(ip *Interpreter, ctx CallCtx) (Value, error) {
			if _, err := fmt.Fprintln(ip.stdout, FormatValue(ctx.MustArg("item"))); err != nil {
				return Absent, fmt.Errorf("println: %w", err)
			}
			return Absent, nil
		})
}
