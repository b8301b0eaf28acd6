package main

import "overlayns/internal/cli"

func main() {
	cli.Execute()
}
