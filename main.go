package main

import "invoicely/cmd"

func main() {
	cmd.Execute()
}
