package main

import (
	"github.com/playlake/starload/cmd"
)

func main() {
	cmd.Execute()
}
