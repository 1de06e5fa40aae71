package main

import "github.com/frahmantamala/skill-exchange/cmd"

func main() {
	cmd.Execute()
}
