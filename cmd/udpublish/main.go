package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
)

func main() {
	err := rootCmd.Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
