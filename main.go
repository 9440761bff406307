package main

import "github.com/nonexistent9/venture-scout-bot-sub000/internal/cli"

func main() {
	cli.Execute()
}
