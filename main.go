package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/builtins"
	"github.com/antibyte/endbasic-core/pkg/configuration"
	"github.com/antibyte/endbasic-core/pkg/hostutil"
	"github.com/antibyte/endbasic-core/pkg/hostutil/cliconsole"
	"github.com/antibyte/endbasic-core/pkg/hostutil/fsstore"
	"github.com/antibyte/endbasic-core/pkg/hostutil/lineeditor"
	"github.com/antibyte/endbasic-core/pkg/interp"
	"github.com/antibyte/endbasic-core/pkg/logger"
)

func main() {
	configPath := "settings.cfg"
	if err := configuration.Initialize(configPath); err != nil {
		fmt.Printf("error initializing configuration: %v\n", err)
		return
	}

	if err := logger.Initialize(); err != nil {
		fmt.Printf("error initializing logger: %v\n", err)
		return
	}
	logger.InfoLog(logger.AreaGeneral, "endbasic-core starting up")

	storeDir := configuration.GetString("Store", "dir", "programs")
	store, err := fsstore.New(storeDir)
	if err != nil {
		logger.FatalLog(logger.AreaStore, "failed to open program store at %s: %v", storeDir, err)
	}
	logger.InfoLog(logger.AreaStore, "program store ready at %s", storeDir)

	console := cliconsole.New()
	reg := interp.NewRegistry()
	builtins.Register(reg)

	m := interp.NewMachine(reg, interp.Host{
		Console: console,
		Store:   store,
		Clock:   hostutil.SystemClock{},
		Entropy: hostutil.SystemEntropy{},
		Editor:  lineeditor.New(console),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runREPL(ctx, m)
}

// runREPL reads one line at a time from stdin. A line ending in a
// statement the language core's own parser can't finish on its own
// (a dangling IF/WHILE/FOR) is rejected with a parse error rather than
// continued on the next line: this is a one-statement-per-line shell,
// not a multi-line program editor (use EDIT, or pipe a whole program in
// with RUN, for that).
func runREPL(ctx context.Context, m *interp.Machine) {
	fmt.Println("endbasic-core interactive shell. Type HELP for a command index, EXIT to quit.")
	stdin := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("] ")
		if !stdin.Scan() {
			return
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		if err := m.Run(ctx, line); err != nil {
			fmt.Println(err)
		}
		if err := ctx.Err(); err != nil {
			return
		}
	}
}
