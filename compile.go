package scalarfl

// CompileExpression parses, optimizes, and lowers text against bindings,
// per spec.md §6. On success the handle owns its image and address table.
// On failure it returns a *CompileError whose Position follows the
// spec's signed-offset convention (positive = syntax, negative = semantic).
func CompileExpression(text string, bindings []Binding, cfg EngineConfig) (*CompiledExpression, error) {
	lookup := lookupTable(bindings)

	root, err := parseExpression(text, lookup, cfg)
	if err != nil {
		compileLogger.Debugw("expression compile failed", "text", text, "err", err)
		return nil, err
	}
	root = optimize(root)

	table := &AddressTable{}
	image, err := lower(root, table)
	if err != nil {
		return nil, semanticErrorf("%s", err)
	}

	compiledCount.Inc()
	compileLogger.Debugw("expression compiled", "text", text, "bytes", len(image))
	return &CompiledExpression{image: image, table: table}, nil
}

// Interpret compiles text with no host bindings and the default engine
// config, evaluates it once, and discards the handle.
func Interpret(text string) Scalar {
	c, err := CompileExpression(text, nil, DefaultConfig())
	if err != nil {
		return NaN()
	}
	return c.Evaluate()
}
