package main

import "github.com/aalvaropc/skein/internal/cli"

func main() {
	cli.Execute()
}
