package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Santini10/IC/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
