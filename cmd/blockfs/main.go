// Command blockfs runs a block-filesystem script against a virtual disk
// image. Usage: blockfs <script-path>. Exits nonzero if the script is
// missing or unreadable, zero otherwise.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/blockfs/blockfs/script"
	"github.com/blockfs/blockfs/session"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: blockfs <script-path>")
		return 1
	}
	scriptPath := args[0]

	f, err := os.Open(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open script %s: %v\n", scriptPath, err)
		return 1
	}
	defer f.Close()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{})

	sess := session.New(log)
	defer sess.Close()

	runner := &script.Runner{
		Dispatcher: sess,
		Stderr:     os.Stderr,
		Stdout:     os.Stdout,
		ScriptPath: scriptPath,
	}
	if err := runner.Run(f); err != nil {
		fmt.Fprintf(os.Stderr, "reading script %s: %v\n", scriptPath, err)
		return 1
	}
	return 0
}
