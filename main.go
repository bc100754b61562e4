package main

import "github.com/frahmantamala/sewa-portal/cmd"

func main() {
	cmd.Execute()
}
