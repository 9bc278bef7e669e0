package mylang

// ---- type predicates -----------------------------------------------------

func registerTypeBuiltins(r *registry) {
	predicates := []struct {
		name string
		doc  string
		fn   func(Value) bool
	}{
		{"nil?", "Reports whether a is nil.", isNil},
		{"int?", "Reports whether a is an int.", isInt},
		{"float?", "Reports whether a is a float.", isFloat},
		{"true?", "Reports whether a is the boolean true.", isTrue},
		{"false?", "Reports whether a is the boolean false.", isFalse},
		{"string?", "Reports whether a is a string.", isString},
		{"function?", "Reports whether a is a function.", isFunction},
		{"list?", "Reports whether a is a list.", isList},
		{"set?", "Reports whether a is a set.", isSet},
		{"dict?", "Reports whether a is a dict.", isDict},
	}
	for _, p := range predicates {
		pred := p.fn
		r.native(p.name, []string{"a"}, p.doc,
			func(_ *Interpreter, ctx CallCtx) (Value, error) {
				return Bool(pred(ctx.MustArg("a"))), nil
			})
	}
}
