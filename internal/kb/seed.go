package kb

// Seed returns the built-in template collection. It ships with the binary
// so diagnosis works offline even when no external template file is
// configured. The solution data intentionally uses all three authored
// shapes (nested, flat, plain list) because external collections do too.
func Seed() *Collection {
	return &Collection{Version: "2026.2", Templates: seedTemplates}
}

var seedTemplates = []Template{
	{
		ID:        "py-module-not-found",
		ErrorType: "ModuleNotFoundError",
		Patterns: []string{
			`modulenotfounderror`,
			`no module named`,
			`import\s*error`,
		},
		Keywords:        []string{"module", "import", "not found", "install"},
		ConfidenceBoost: 0.15,
		Solutions: map[string]any{
			"linux": map[string]any{
				"pip":    []any{"Run: {pm} install {module}", "Check the active virtualenv: which python"},
				"conda":  []any{"Run: conda install {module}", "Verify the environment: conda env list"},
				"poetry": []any{"Run: poetry add {module}", "Then: poetry install"},
			},
			"windows": map[string]any{
				"pip":   []any{"Run: py -m pip install {module}", "Check PATH includes the Python Scripts folder"},
				"conda": []any{"Open the Anaconda Prompt and run: conda install {module}"},
			},
			"macos": map[string]any{
				"pip":   []any{"Run: {pm} install {module}", "If you use Homebrew Python, try: python3 -m pip install {module}"},
				"conda": []any{"Run: conda install {module}"},
			},
		},
		Explanation:   "Python could not locate the named package in the active environment. It is either not installed or installed into a different interpreter.",
		CommonCauses:  []string{"Package never installed", "Wrong virtual environment active", "Typo in the module name"},
		RelatedErrors: []string{"ImportError"},
		Category:      "dependencies",
		Severity:      "medium",
	},
	{
		ID:        "py-syntax-error",
		ErrorType: "SyntaxError",
		Patterns: []string{
			`syntax\s*error`,
			`invalid syntax`,
			`unexpected (?:eof|indent|token)`,
		},
		Keywords:        []string{"syntax", "invalid", "parsing", "unexpected"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Check the line reported in the traceback, and the line just above it",
			"Look for a missing colon, bracket, or closing quote",
			"Enable syntax highlighting in {editor} to spot the unbalanced pair",
		},
		Explanation:  "The interpreter could not parse the source. Syntax errors are often caused by the line before the one reported.",
		CommonCauses: []string{"Missing colon after def/if/for", "Unbalanced parentheses or quotes"},
		Category:     "syntax",
		Severity:     "low",
	},
	{
		ID:        "py-name-error",
		ErrorType: "NameError",
		Patterns: []string{
			`name\s*error`,
			`name '.+' is not defined`,
			`is not defined`,
		},
		Keywords:        []string{"not defined", "name", "undefined", "variable"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Check the spelling of the variable or function name",
			"Make sure the name is defined before the line that uses it",
			"If it comes from another module, add the missing import",
		},
		Explanation:   "A name was used before being assigned or imported. Python resolves names at runtime, so definition order matters.",
		CommonCauses:  []string{"Typo in a variable name", "Use before assignment", "Missing import"},
		RelatedErrors: []string{"UnboundLocalError"},
		Category:      "runtime",
		Severity:      "low",
	},
	{
		ID:        "py-type-error",
		ErrorType: "TypeError",
		Patterns: []string{
			`type\s*error`,
			`unsupported operand`,
			`object is not (?:callable|subscriptable|iterable)`,
		},
		Keywords:        []string{"type", "operand", "callable", "argument"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Print the types of the values involved: print(type(x))",
			"Convert explicitly where needed, e.g. int(value) or str(value)",
			"Check the function signature for the expected argument types",
		},
		Explanation:  "An operation was applied to a value of the wrong type, such as adding a string to an integer or calling a non-function.",
		CommonCauses: []string{"Mixing strings and numbers", "Calling a value that is not a function", "Wrong argument order"},
		Category:     "runtime",
		Severity:     "medium",
	},
	{
		ID:        "py-attribute-error",
		ErrorType: "AttributeError",
		Patterns: []string{
			`attribute\s*error`,
			`has no attribute`,
			`'nonetype' object`,
		},
		Keywords:        []string{"attribute", "has no", "nonetype", "object"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Check the object is not None before accessing the attribute",
			"Use dir(obj) to list the attributes that actually exist",
			"Verify the method name against the library documentation",
		},
		Explanation:  "The object does not expose the requested attribute or method. A frequent special case is calling a method on None returned by a previous step.",
		CommonCauses: []string{"Function returned None", "Typo in the attribute name", "Wrong object type"},
		Category:     "runtime",
		Severity:     "medium",
	},
	{
		ID:        "py-indentation-error",
		ErrorType: "IndentationError",
		Patterns: []string{
			`indentation\s*error`,
			`expected an indented block`,
			`unindent does not match`,
		},
		Keywords:        []string{"indent", "indentation", "tab", "space"},
		ConfidenceBoost: 0.15,
		Solutions: map[string]any{
			"linux":   []any{"Convert tabs to spaces: expand -t 4 file.py", "Configure {editor} to insert 4 spaces per tab"},
			"windows": []any{"In {editor}, enable 'insert spaces' and re-indent the file"},
			"macos":   []any{"Configure {editor} to insert 4 spaces per tab and re-indent"},
		},
		Explanation:  "Python uses indentation for block structure. Mixing tabs and spaces, or misaligned blocks, produces this error.",
		CommonCauses: []string{"Mixed tabs and spaces", "Copy-pasted code with different indentation"},
		Category:     "syntax",
		Severity:     "low",
	},
	{
		ID:        "py-index-error",
		ErrorType: "IndexError",
		Patterns: []string{
			`index\s*error`,
			`list index out of range`,
			`out of range`,
		},
		Keywords:        []string{"index", "out of range", "list"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Check the list length before indexing: len(items)",
			"Remember indices start at 0, so the last element is len(items) - 1",
			"If iterating, prefer 'for item in items' over manual indices",
		},
		Explanation:  "The code accessed a sequence position that does not exist.",
		CommonCauses: []string{"Off-by-one loop bound", "Empty list"},
		Category:     "runtime",
		Severity:     "low",
	},
	{
		ID:        "py-key-error",
		ErrorType: "KeyError",
		Patterns: []string{
			`key\s*error`,
			`keyerror: '.+'`,
		},
		Keywords:        []string{"key", "dict", "dictionary", "missing"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Use dict.get(key) with a default instead of direct indexing",
			"Check membership first: if key in data",
			"Print the available keys: print(data.keys())",
		},
		Explanation:  "A dictionary lookup used a key that is not present.",
		CommonCauses: []string{"Typo in the key", "Data missing an expected field"},
		Category:     "runtime",
		Severity:     "low",
	},
	{
		ID:        "file-not-found",
		ErrorType: "FileNotFoundError",
		Patterns: []string{
			`filenotfounderror`,
			`no such file or directory`,
			`file not found`,
		},
		Keywords:        []string{"file", "directory", "path", "no such"},
		ConfidenceBoost: 0.15,
		Solutions: map[string]any{
			"linux":   []any{"Check the path: ls -la <path>", "Use an absolute path or os.path.join", "Check the working directory: pwd"},
			"windows": []any{"Check the path in Explorer and watch for backslash escaping", "Use raw strings for Windows paths: r\"C:\\data\\file.csv\""},
			"macos":   []any{"Check the path: ls -la <path>", "Check the working directory: pwd"},
		},
		Explanation:  "The file path does not exist from the process's working directory. Relative paths resolve against where the program runs, not where the script lives.",
		CommonCauses: []string{"Wrong working directory", "Typo in the file name", "File not yet created"},
		Category:     "filesystem",
		Severity:     "medium",
	},
	{
		ID:        "permission-denied",
		ErrorType: "PermissionError",
		Patterns: []string{
			`permission\s*(?:denied|error)`,
			`errno 13`,
			`access is denied`,
		},
		Keywords:        []string{"permission", "denied", "access", "sudo"},
		ConfidenceBoost: 0.15,
		Solutions: map[string]any{
			"linux": map[string]any{
				"pip":   []any{"Install into user site-packages: {pm} install --user {module}", "Fix file ownership: sudo chown $USER <path>"},
				"conda": []any{"Avoid sudo with conda; fix the env ownership instead"},
			},
			"windows": map[string]any{
				"pip": []any{"Run the terminal as Administrator, or use: py -m pip install --user {module}"},
			},
			"macos": map[string]any{
				"pip": []any{"Install into user site-packages: {pm} install --user {module}"},
			},
		},
		Explanation:  "The operating system refused the operation for the current user. On package installs this usually means writing into a system-owned directory.",
		CommonCauses: []string{"Installing into system Python without --user", "File owned by another user"},
		Category:     "permissions",
		Severity:     "high",
	},
	{
		ID:        "py-zero-division",
		ErrorType: "ZeroDivisionError",
		Patterns: []string{
			`zerodivisionerror`,
			`division by zero`,
		},
		Keywords:        []string{"division", "zero", "divide"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Guard the division: if divisor != 0",
			"Check where the divisor is computed; it is unexpectedly zero",
		},
		Explanation:  "A division or modulo used zero as the divisor.",
		CommonCauses: []string{"Empty input producing a zero count", "Uninitialized accumulator"},
		Category:     "runtime",
		Severity:     "low",
	},
	{
		ID:        "py-value-error",
		ErrorType: "ValueError",
		Patterns: []string{
			`value\s*error`,
			`invalid literal`,
			`could not convert`,
		},
		Keywords:        []string{"value", "invalid literal", "convert"},
		ConfidenceBoost: 0.1,
		Solutions: []any{
			"Validate the input before converting: value.strip().isdigit()",
			"Wrap the conversion in try/except ValueError",
			"Print the offending value to see what is actually being parsed",
		},
		Explanation:  "A function received an argument of the right type but an unusable value, such as int(\"abc\").",
		CommonCauses: []string{"User input not numeric", "Unexpected file format"},
		Category:     "runtime",
		Severity:     "low",
	},
}
