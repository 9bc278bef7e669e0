package mylang

// ---- collection constructors ---------------------------------------------

func registerCollectionBuiltins(r *registry) {
	r.native("list", []string{"@items"}, "Ordered list of the arguments.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			return List(restItems(ctx, "items")), nil
		})

	r.native("set", []string{"@items"}, "Set of the arguments. Duplicates (by =) are dropped; first occurrence order is kept.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			return NewSet(restItems(ctx, "items")), nil
		})

	r.native("dict", []string{"@items"}, `Dict from alternating keys and values: (dict k1 v1 k2 v2 ...).
An odd trailing key maps to nil. A repeated key keeps its first position and takes the last value.`,
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			items := restItems(ctx, "items")
			d := NewDict()
			obj := d.Data.(*DictObject)
			for i := 0; i < len(items); i += 2 {
				v := Nil
				if i+1 < len(items) {
					v = items[i+1]
				}
				obj.Set(items[i], v)
			}
			return d, nil
		})
}
