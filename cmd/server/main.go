package main

import "artha/cmd/server/cmd"

func main() {
	cmd.Execute()
}
