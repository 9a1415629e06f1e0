package main

import "github.com/JakobGM/quelf/cmd/quelf-cli/cmd"

func main() {
	cmd.Execute()
}
