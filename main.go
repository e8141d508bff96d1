package main

import "site-settings/cmd"

func main() {
	cmd.Execute()
}
