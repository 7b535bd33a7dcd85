package main

import "github.com/stm32kit/go-an3155/cmd/an3155/cmd"

func main() {
	cmd.Execute()
}
