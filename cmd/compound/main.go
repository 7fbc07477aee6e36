package main

import "github.com/rustyeddy/compound/internal/cli"

func main() {
	cli.Execute()
}
