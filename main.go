package main

import "github.com/miyamoto-hai-lab/participants-id/cmd"

func main() {
	cmd.Execute()
}
