package main

import (
	"github.com/mwillard/gameroom/internal/cli"
)

func main() {
	cli.Execute()
}
