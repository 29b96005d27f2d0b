package main

import "github.com/facupepi/serviapp-cli/cmd"

func main() {
	cmd.Execute()
}
