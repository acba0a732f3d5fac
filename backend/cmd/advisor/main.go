// Command advisor is the console front end: an interactive recommendation
// dialogue plus one-shot knowledge base queries.
package main

import (
	"fmt"
	"os"

	"boardgame-advisor/backend/pkg/logger"
)

func main() {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
