package main

import "github.com/shubhamdevjs/Reddit-Masterming/internal/cmd"

func main() {
	cmd.Run()
}
