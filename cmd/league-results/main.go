package main

import "github.com/pfrederiksen/league-results/internal/cli"

func main() {
	cli.Execute()
}
