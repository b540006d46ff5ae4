package main

import "github.com/kamal-hamza/metadesigner/cmd"

func main() {
	cmd.Execute()
}
