package main

import "github.com/OpenTraceLab/xnode/cmd/xnode/cmd"

func main() {
	cmd.Execute()
}
