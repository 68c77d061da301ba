package main

import (
	"os"

	"github.com/camiloAVN/WebSockets-Tester/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
