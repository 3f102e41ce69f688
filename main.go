package main

import (
	"embed"

	"github.com/Koreanbadboy/AlbertBankApp/cmd"
)

//go:embed migrations
var migrationsFS embed.FS

func main() {
	cmd.Execute(migrationsFS)
}
