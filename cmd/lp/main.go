package main

import "limitless/cmd/lp/root"

func main() {
	root.Execute()
}
