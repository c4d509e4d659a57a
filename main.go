package main

import "github.com/theirongolddev/gastos/cmd"

func main() {
	cmd.Execute()
}
