package main

import "github.com/deckpeek/deckpeek/cmd"

func main() {
	cmd.Execute()
}
