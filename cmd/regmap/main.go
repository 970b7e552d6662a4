package main

import (
	"os"

	"k8s.io/klog/v2"

	"github.com/tsawler/regmap/cmd/regmap/app"
)

func main() {
	err := app.Run()
	klog.Flush()
	if err != nil {
		klog.Errorf("regmap: %v", err)
		klog.Flush()
		os.Exit(1)
	}
}
