package main

import "github.com/Manu343726/cpx/cmd"

func main() {
	cmd.Execute()
}
