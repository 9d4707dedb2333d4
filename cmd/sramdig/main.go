package main

import (
	"github.com/sramdig/sramdig/cmd/sramdig/cmd"
	"github.com/sramdig/sramdig/pkg/di"
)

func main() {
	container := di.NewContainer()
	cmd.SetContainer(container)

	cmd.Execute()
}
