package defs

const (
	OptionVersion    = "version"
	OptionVersionAlt = "v"
	OptionConfig     = "config"
	OptionConfigAlt  = "c"
	OptionSilent     = "silent"
	OptionSilentAlt  = "s"
	OptionDebug      = "debug"
	OptionDelimiter  = "delimiter"

	CommandRun    = "run"
	CommandExport = "export"
	CommandWatch  = "watch"
)
