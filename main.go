package main

import (
	"os"

	"github.com/PolarWolf314/theca/cmd"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(kerrors.ExitCode(err))
	}
}
