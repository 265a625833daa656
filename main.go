/*
Copyright © 2025 Oleg Shokin

This file is the entry point for the basic-api-client application.
It initializes and executes the root command defined in the cmd package.
*/
package main

import "github.com/oshokin/basic-api-client/cmd"

func main() {
	cmd.Execute()
}
