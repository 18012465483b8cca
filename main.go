package main

import "github.com/xonestonex/supervisor/cmd"

func main() {
	cmd.Execute()
}
