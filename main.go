package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/skillsphere/skillseed/cmd"
	"github.com/skillsphere/skillseed/internal/apperrors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		if errors.Is(err, apperrors.ErrConnect) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
