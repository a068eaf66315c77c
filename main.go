package main

import "github.com/macrofit/macrofit-cli/cmd/macrofit"

func main() {
	macrofit.Execute()
}
