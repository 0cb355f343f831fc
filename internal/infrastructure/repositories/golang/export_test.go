package golang

// ParseModuleList exports parseModuleList for testing.
var ParseModuleList = parseModuleList //nolint:gochecknoglobals // test export

// StripReplaces exports stripReplaces for testing.
var StripReplaces = stripReplaces //nolint:gochecknoglobals // test export

// LocateGo resolves the go tool from an explicit GOROOT, home directory and PATH lookup.
func LocateGo(goroot, home string, lookPath func(string) (string, error)) (string, error) {
	return locateGo(toolchainEnv{goroot: goroot, home: home, lookPath: lookPath})
}
