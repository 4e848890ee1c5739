package main

import "github.com/inference-gateway/keybind/cmd"

func main() {
	cmd.Execute()
}
