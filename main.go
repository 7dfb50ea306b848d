package main

import "github.com/Tito2912/prosperfactory.com/cmd"

func main() {
	cmd.Execute()
}
