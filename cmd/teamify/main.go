package main

import "github.com/jerrk000/teamify/internal/cli"

func main() {
	cli.Execute()
}
