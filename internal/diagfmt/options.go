package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows paths relative to BaseDir when they live under it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of grouped diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	Width    int // максимальная ширина текста сообщения, 0 - не ограничено
	// ShowEmpty prints headings for groups without messages.
	ShowEmpty    bool
	ShowProvider bool
}

// JSONOpts configures JSON and YAML output.
type JSONOpts struct {
	PathMode  PathMode
	BaseDir   string
	Max       int // обрезка вывода, не Bag
	ShowEmpty bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	PathMode       PathMode
	BaseDir        string
}
