package main

import "github.com/labgrid-fcefyn/labnet/pkg/cli"

func main() {
	cli.Execute()
}
