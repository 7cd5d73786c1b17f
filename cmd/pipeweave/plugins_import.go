package main

// Blank imports ensure every built-in plugin's init() registration runs for
// the CLI binary.
import (
	_ "github.com/pipeweave/pipeweave/plugins/aggregators/expr"
	_ "github.com/pipeweave/pipeweave/plugins/aggregators/merge"
	_ "github.com/pipeweave/pipeweave/plugins/sinks/archive"
	_ "github.com/pipeweave/pipeweave/plugins/sinks/dashboard"
	_ "github.com/pipeweave/pipeweave/plugins/sinks/docstore"
	_ "github.com/pipeweave/pipeweave/plugins/sinks/template"
	_ "github.com/pipeweave/pipeweave/plugins/sinks/tsdb"
	_ "github.com/pipeweave/pipeweave/plugins/sources/coverage"
	_ "github.com/pipeweave/pipeweave/plugins/sources/env"
	_ "github.com/pipeweave/pipeweave/plugins/sources/gitstate"
	_ "github.com/pipeweave/pipeweave/plugins/sources/httpcheck"
	_ "github.com/pipeweave/pipeweave/plugins/sources/sysmetrics"
	_ "github.com/pipeweave/pipeweave/plugins/sources/timestamp"
)
