package mapping

// DefaultRegistry returns the built-in registry for bulk agent import.
// Adding an importable field means adding an entry here (or shipping a
// registry YAML file), never changing the matcher.
func DefaultRegistry() *Registry {
	fields := []CanonicalField{
		{
			Key:      "name",
			Aliases:  []string{"agent", "agent name", "title", "identifier"},
			Required: true,
			Shape:    ShapeText,
		},
		{
			Key:      "model",
			Aliases:  []string{"ai model", "llm", "model name", "model id"},
			Required: true,
			Shape:    ShapeText,
		},
		{
			Key:     "workspace",
			Aliases: []string{"directory", "working directory", "workdir", "folder", "path"},
			Shape:   ShapeText,
		},
		{
			Key:     "tags",
			Aliases: []string{"labels", "tag list", "categories"},
			Shape:   ShapeList,
		},
		{
			Key:     "memoryLimit",
			Aliases: []string{"memory limit", "memory", "max memory", "ram"},
			Shape:   ShapeNumeric,
		},
		{
			Key:     "cpuCores",
			Aliases: []string{"cpu cores", "cpu", "cores", "vcpus"},
			Shape:   ShapeNumeric,
		},
		{
			Key:     "autoStart",
			Aliases: []string{"auto start", "autostart", "start on boot"},
			Shape:   ShapeBoolean,
		},
	}

	// Curated business phrasings seen in real import files. Wildcard
	// entries match against the whole normalized header.
	synonyms := map[string]string{
		"labels":            "tags",
		"ai model":          "model",
		"memory mb":         "memoryLimit",
		"memory gb":         "memoryLimit",
		"cpu count":         "cpuCores",
		"processor *":       "cpuCores",
		"auto start":        "autoStart",
		"boot":              "autoStart",
		"launch at startup": "autoStart",
		"directory path":    "workspace",
		"work dir":          "workspace",
		"project *":         "workspace",
		"display name":      "name",
		"full name":         "name",
	}

	reg, err := NewRegistry(fields, synonyms)
	if err != nil {
		// Built-in tables are validated by tests; reaching this is a bug.
		panic(err)
	}
	return reg
}
