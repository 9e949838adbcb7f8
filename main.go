package main

import "paysquare/cmd"

func main() {
	cmd.Execute()
}
