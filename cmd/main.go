package main

import (
	"os"
)

// @title        Irrigation Gateway API
// @version      1.0
// @description  HTTP gateway for a networked irrigation controller: start and stop zones, read controller info and live zone status.
// @BasePath     /
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
