package main

import (
	"github.com/finapp-br/reciboscan/cmd/reciboscan/cmd"
	"github.com/finapp-br/reciboscan/internal/version"
)

func main() {
	cmd.SetVersion(version.String())
	cmd.Execute()
}
