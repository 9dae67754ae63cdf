package main

import "github.com/robalobadob/fbwordle/cmd"

func main() {
	cmd.Execute()
}
