package main

import (
	"fmt"
	"os"

	"mirrorpick/internal/config"
	"mirrorpick/internal/log"
)

var version = "dev"

func main() {
	err := NewRootCmd().Execute()
	if cerr := log.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	if err != nil {
		newPrinter(os.Stderr, config.GetTheme("default")).Error(err.Error())
		os.Exit(1)
	}
}
