package main

import "github.com/rustyeddy/tradejournal/internal/cli"

func main() {
	cli.Execute()
}
