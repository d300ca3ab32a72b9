package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	env := processEnv()
	if err := newRootCmd(env).Execute(); err != nil {
		fmt.Fprintf(env.stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
