package main

import "github.com/shaie/browze/pkg/cli"

func main() {
	cli.Execute()
}
