package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oakwood-commons/docsite/cmd"
	"github.com/oakwood-commons/docsite/pkg/logger"
)

func main() {
	err := cmd.Execute(context.Background())
	if err != nil && !cmd.Silent(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
