package cli

import "errors"

// Flag parsing errors shared by the global scanner and command arg
// validation.
var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
)
