package main

import "github.com/ctxkit/ctx/internal/cli"

func main() {
	cli.Execute()
}
