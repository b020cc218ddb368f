package main

import (
	"os"

	"github.com/golang/glog"
	"github.com/zeu5/ttt-rl/cmd"
)

func main() {
	defer glog.Flush()
	if err := cmd.RootCommand().Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
