package main

import "github.com/mmynk/budgetbook/internal/cli"

func main() {
	cli.Execute()
}
