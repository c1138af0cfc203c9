// Package main is the itemdex entrypoint.
package main

import "github.com/leapstack-labs/itemdex/internal/cli"

func main() {
	cli.Execute()
}
