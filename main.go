package main

import "github.com/copperfin/runway/cmd"

func main() {
	cmd.Execute()
}
