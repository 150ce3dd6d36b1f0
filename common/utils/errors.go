package utils

import (
	"fmt"
	"log"

	"github.com/ttacon/chalk"
)

// Check panics on unrecoverable errors; msg names the failed operation.
func Check(err error, msg string) {
	if err == nil {
		return
	}

	fmt.Print(chalk.Red)
	log.Print(msg, chalk.Reset)
	log.Panicln(err)
}

// Assert panics when a programming invariant is broken.
func Assert(ok bool, msg string) {
	if ok {
		return
	}

	fmt.Print(chalk.Red)
	log.Print(msg, chalk.Reset)
	log.Panic()
}
