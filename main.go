package main

import "github.com/sadopc/screentime/internal/cli"

func main() {
	cli.Execute()
}
