package main

import (
	"context"

	"github.com/rustfs/rustfs-operator/internal/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
